package gpu

import "github.com/gogpu/gputypes"

// OpenGL enums used by the stencil and depth entry points.
const (
	glDepthTest        = 0x0B71
	glStencilTest      = 0x0B90
	glStencilBufferBit = 0x00000400
	glNever            = 0x0200
	glLess             = 0x0201
	glEqual            = 0x0202
	glLequal           = 0x0203
	glGreater          = 0x0204
	glNotequal         = 0x0205
	glGequal           = 0x0206
	glAlways           = 0x0207
	glZero             = 0
	glKeep             = 0x1E00
	glReplace          = 0x1E01
	glIncr             = 0x1E02
	glDecr             = 0x1E03
	glInvert           = 0x150A
	glIncrWrap         = 0x8507
	glDecrWrap         = 0x8508
)

// glFuncs are the GL 1.0 entry points raylib does not wrap.
type glFuncs struct {
	enable       func(capability uint32)
	disable      func(capability uint32)
	clear        func(mask uint32)
	clearStencil func(s int32)
	depthFunc    func(fn uint32)
	stencilFunc  func(fn uint32, ref int32, mask uint32)
	stencilOp    func(sfail, dpfail, dppass uint32)
	stencilMask  func(mask uint32)
}

// glCompare maps a compare function to GL. Undefined maps to GL_ALWAYS.
func glCompare(fn gputypes.CompareFunction) uint32 {
	switch fn {
	case gputypes.CompareFunctionNever:
		return glNever
	case gputypes.CompareFunctionLess:
		return glLess
	case gputypes.CompareFunctionEqual:
		return glEqual
	case gputypes.CompareFunctionLessEqual:
		return glLequal
	case gputypes.CompareFunctionGreater:
		return glGreater
	case gputypes.CompareFunctionNotEqual:
		return glNotequal
	case gputypes.CompareFunctionGreaterEqual:
		return glGequal
	}
	return glAlways
}

// glStencilOp maps a stencil operation to GL. Undefined maps to GL_KEEP.
func glStencilOp(op gputypes.StencilOperation) uint32 {
	switch op {
	case gputypes.StencilOperationZero:
		return glZero
	case gputypes.StencilOperationReplace:
		return glReplace
	case gputypes.StencilOperationInvert:
		return glInvert
	case gputypes.StencilOperationIncrementClamp:
		return glIncr
	case gputypes.StencilOperationDecrementClamp:
		return glDecr
	case gputypes.StencilOperationIncrementWrap:
		return glIncrWrap
	case gputypes.StencilOperationDecrementWrap:
		return glDecrWrap
	}
	return glKeep
}
