package raster

import (
	"bezier-stencil/internal/render"
	"bezier-stencil/internal/shader"
	"bezier-stencil/internal/vmath"

	"github.com/gogpu/gputypes"
)

// fragmentState is the per-draw context of the fragment pipeline.
type fragmentState struct {
	dev   *Device
	state *render.PipelineState
	prog  *shader.Program
	vals  *shader.Values
	// count is the number of fragments that passed every test.
	count int
}

func (f *fragmentState) fragment(x, y int, z float32, n vmath.Vec3, front bool) {
	d := f.dev
	i := y*d.width + x
	s := f.state
	ds := &s.DepthStencil
	face := ds.StencilFront
	if !front {
		face = ds.StencilBack
	}

	if s.StencilTest {
		ref := uint32(s.StencilRef) & ds.StencilReadMask
		cur := uint32(d.stencil[i]) & ds.StencilReadMask
		if !compare(face.Compare, ref, cur) {
			f.stencilOp(i, face.FailOp)
			return
		}
	}
	if !compare(ds.DepthCompare, z, d.depth[i]) {
		if s.StencilTest {
			f.stencilOp(i, face.DepthFailOp)
		}
		return
	}
	if s.StencilTest {
		f.stencilOp(i, face.PassOp)
	}
	if ds.DepthWriteEnabled {
		d.depth[i] = z
	}
	f.count++
	if s.ColorWrite == gputypes.ColorWriteMaskNone {
		return
	}
	rgb, a := f.prog.Shade(f.vals, n)
	f.write(i, [4]float32{rgb.X, rgb.Y, rgb.Z, a})
}

// compare applies fn as "source fn destination": the stencil reference or
// fragment depth against the stored value. Undefined behaves as Always.
func compare[T uint32 | float32](fn gputypes.CompareFunction, src, dst T) bool {
	switch fn {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return src < dst
	case gputypes.CompareFunctionEqual:
		return src == dst
	case gputypes.CompareFunctionLessEqual:
		return src <= dst
	case gputypes.CompareFunctionGreater:
		return src > dst
	case gputypes.CompareFunctionNotEqual:
		return src != dst
	case gputypes.CompareFunctionGreaterEqual:
		return src >= dst
	}
	return true
}

func (f *fragmentState) stencilOp(i int, op gputypes.StencilOperation) {
	d := f.dev
	cur := d.stencil[i]
	var v uint8
	switch op {
	case gputypes.StencilOperationZero:
		v = 0
	case gputypes.StencilOperationReplace:
		v = f.state.StencilRef
	case gputypes.StencilOperationInvert:
		v = ^cur
	case gputypes.StencilOperationIncrementClamp:
		v = cur
		if cur < 0xff {
			v++
		}
	case gputypes.StencilOperationDecrementClamp:
		v = cur
		if cur > 0 {
			v--
		}
	case gputypes.StencilOperationIncrementWrap:
		v = cur + 1
	case gputypes.StencilOperationDecrementWrap:
		v = cur - 1
	default:
		return
	}
	wm := uint8(f.state.DepthStencil.StencilWriteMask)
	d.stencil[i] = cur&^wm | v&wm
}

// write blends src over the stored color and stores the channels the
// color write mask allows.
func (f *fragmentState) write(i int, src [4]float32) {
	px := f.dev.color.Pix[i*4 : i*4+4]
	out := src
	if b := f.state.Blend; b != nil {
		var dst [4]float32
		for c := range dst {
			dst[c] = float32(px[c]) / 255
		}
		for c := 0; c < 3; c++ {
			out[c] = blend(b.Color, src, dst, c)
		}
		out[3] = blend(b.Alpha, src, dst, 3)
	}
	mask := f.state.ColorWrite
	for c := 0; c < 4; c++ {
		if mask&(1<<c) != 0 {
			px[c] = to8(out[c])
		}
	}
}

func blend(bc gputypes.BlendComponent, src, dst [4]float32, c int) float32 {
	s := src[c] * factor(bc.SrcFactor, src, dst, c)
	d := dst[c] * factor(bc.DstFactor, src, dst, c)
	switch bc.Operation {
	case gputypes.BlendOperationSubtract:
		return s - d
	case gputypes.BlendOperationReverseSubtract:
		return d - s
	case gputypes.BlendOperationMin:
		return min(src[c], dst[c])
	case gputypes.BlendOperationMax:
		return max(src[c], dst[c])
	}
	return s + d
}

func factor(f gputypes.BlendFactor, src, dst [4]float32, c int) float32 {
	switch f {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorSrc:
		return src[c]
	case gputypes.BlendFactorOneMinusSrc:
		return 1 - src[c]
	case gputypes.BlendFactorSrcAlpha:
		return src[3]
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return 1 - src[3]
	case gputypes.BlendFactorDst:
		return dst[c]
	case gputypes.BlendFactorOneMinusDst:
		return 1 - dst[c]
	case gputypes.BlendFactorDstAlpha:
		return dst[3]
	case gputypes.BlendFactorOneMinusDstAlpha:
		return 1 - dst[3]
	case gputypes.BlendFactorSrcAlphaSaturated:
		if c == 3 {
			return 1
		}
		return min(src[3], 1-dst[3])
	}
	return 1
}

func to8(v float32) uint8 {
	switch {
	case v != v || v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
