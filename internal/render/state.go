// Package render holds what one draw call needs (geometry, program, uniform
// values, transform and fixed-function state) and the ordering rules a frame
// is rendered with. Devices execute drawables; this package never touches a
// graphics API.
package render

import "github.com/gogpu/gputypes"

// PipelineState is the fixed-function state of one draw. It uses the WebGPU
// vocabulary; the OpenGL device translates it to GL enums.
type PipelineState struct {
	// Primitive carries the cull mode and front face. Topology comes from the mesh.
	Primitive gputypes.PrimitiveState
	// Blend is nil for opaque draws.
	Blend      *gputypes.BlendState
	ColorWrite gputypes.ColorWriteMask
	// DepthStencil holds depth compare/write and per-face stencil operations.
	DepthStencil gputypes.DepthStencilState
	// StencilTest enables stencil testing and writing for this draw.
	StencilTest bool
	// StencilRef is the reference value compared against and written by Replace.
	StencilRef uint8
}

// DefaultState is an opaque, back-face culled draw with depth test Less,
// depth writes on and stencil disabled.
func DefaultState() PipelineState {
	return PipelineState{
		Primitive: gputypes.PrimitiveState{
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		ColorWrite:   gputypes.ColorWriteMaskAll,
		DepthStencil: gputypes.DefaultDepthStencilState(gputypes.TextureFormatDepth24PlusStencil8),
	}
}

// Transparent reports whether the draw blends and is therefore sorted after
// every opaque draw.
func (s PipelineState) Transparent() bool { return s.Blend != nil }

// SetStencil applies one stencil face state to both faces.
func (s *PipelineState) SetStencil(f gputypes.StencilFaceState) {
	s.DepthStencil.StencilFront = f
	s.DepthStencil.StencilBack = f
}
