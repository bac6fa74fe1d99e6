// Package shader describes the vertex/fragment programs the curve is drawn
// with. A Program is plain data: GLSL 330 sources for the raylib device, a
// WGSL twin, and the uniform schema both share. No device runs the WGSL; it
// is compiled by Validate and printed by the shaders command so the programs
// are checked by a second compiler. The CPU twins of the vertex and fragment
// stages (Transform and Shade) let the software device render exactly what
// the GPU would.
package shader

import (
	"bezier-stencil/internal/bezier"
	"bezier-stencil/internal/vmath"
)

// Style selects the vertex stage.
type Style int

const (
	// StyleLine places a vertex on the curve at t = position.z.
	StyleLine Style = iota
	// StyleConnector places a vertex at the control point selected by position.z.
	StyleConnector
	// StyleExtrude places a vertex on the curve at t = position.z, pushed
	// sideways along the curve normal by 2*position.x, keeping position.y.
	StyleExtrude
	// StyleMarker passes positions through; the model matrix places the marker.
	StyleMarker
	// StyleLit is the terrain program: pass-through positions with diffuse lighting.
	StyleLit
)

func (s Style) String() string {
	switch s {
	case StyleLine:
		return "line"
	case StyleConnector:
		return "connector"
	case StyleExtrude:
		return "extrude"
	case StyleMarker:
		return "marker"
	case StyleLit:
		return "lit"
	}
	return "unknown"
}

// Uniform names. The curve programs use Points, Color and Alpha; the lit
// program adds Emissive, LightDir and Ambient.
const (
	UniformPoints   = "uPoints"
	UniformColor    = "uColor"
	UniformAlpha    = "uAlpha"
	UniformEmissive = "uEmissive"
	UniformLightDir = "uLightDir"
	UniformAmbient  = "uAmbient"
)

type UniformType int

const (
	UniformFloat UniformType = iota
	UniformVec3
)

// Uniform is one entry of a program's uniform schema.
type Uniform struct {
	Name  string
	Type  UniformType
	Count int
}

// Program is one vertex/fragment pair.
type Program struct {
	Name     string
	Style    Style
	Vertex   string
	Fragment string
	WGSL     string
	Uniforms []Uniform
}

// Values are the uniform values a drawable feeds its program. Points is
// shared with the curve that owns it, so control-point edits are seen on the
// next upload without copying.
type Values struct {
	Points   *bezier.Points
	Color    vmath.Vec3
	Alpha    float32
	Emissive vmath.Vec3
	LightDir vmath.Vec3
	Ambient  float32
}

var curveUniforms = []Uniform{
	{Name: UniformPoints, Type: UniformVec3, Count: 4},
	{Name: UniformColor, Type: UniformVec3, Count: 1},
	{Name: UniformAlpha, Type: UniformFloat, Count: 1},
}

// Line draws the curve itself.
func Line() *Program {
	return &Program{
		Name:     "line",
		Style:    StyleLine,
		Vertex:   lineVS,
		Fragment: flatFS,
		WGSL:     wgslHeader + bezier.WGSL + lineWGSL + flatWGSL,
		Uniforms: curveUniforms,
	}
}

// Connector draws straight segments between control points.
func Connector() *Program {
	return &Program{
		Name:     "connector",
		Style:    StyleConnector,
		Vertex:   connectorVS,
		Fragment: flatFS,
		WGSL:     wgslHeader + connectorWGSL + flatWGSL,
		Uniforms: curveUniforms,
	}
}

// Extrude sweeps a template along the curve; used by the ribbon and the
// extrusion volume.
func Extrude() *Program {
	return &Program{
		Name:     "extrude",
		Style:    StyleExtrude,
		Vertex:   extrudeVS,
		Fragment: flatFS,
		WGSL:     wgslHeader + bezier.WGSL + extrudeWGSL + flatWGSL,
		Uniforms: curveUniforms,
	}
}

// Marker draws a handle cube at its control point.
func Marker() *Program {
	return &Program{
		Name:     "marker",
		Style:    StyleMarker,
		Vertex:   markerVS,
		Fragment: flatFS,
		WGSL:     wgslHeader + markerWGSL + flatWGSL,
		Uniforms: []Uniform{
			{Name: UniformColor, Type: UniformVec3, Count: 1},
			{Name: UniformAlpha, Type: UniformFloat, Count: 1},
		},
	}
}

// Lit is the terrain program: directional diffuse plus ambient and emissive.
func Lit() *Program {
	return &Program{
		Name:     "lit",
		Style:    StyleLit,
		Vertex:   litVS,
		Fragment: litFS,
		WGSL:     wgslHeader + litWGSL,
		Uniforms: []Uniform{
			{Name: UniformColor, Type: UniformVec3, Count: 1},
			{Name: UniformAlpha, Type: UniformFloat, Count: 1},
			{Name: UniformEmissive, Type: UniformVec3, Count: 1},
			{Name: UniformLightDir, Type: UniformVec3, Count: 1},
			{Name: UniformAmbient, Type: UniformFloat, Count: 1},
		},
	}
}

// All returns one instance of every program.
func All() []*Program {
	return []*Program{Line(), Connector(), Extrude(), Marker(), Lit()}
}

// Hex converts a 0xRRGGBB color to linear components in [0,1].
func Hex(c uint32) vmath.Vec3 {
	return vmath.V3(
		float32(c>>16&0xff)/255,
		float32(c>>8&0xff)/255,
		float32(c&0xff)/255,
	)
}
