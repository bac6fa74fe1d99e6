// Package terrain generates the bumpy ground plane the light patch is
// stenciled onto.
package terrain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"bezier-stencil/internal/geom"
	"bezier-stencil/internal/vmath"

	"github.com/gogpu/gputypes"
)

// ErrOptions is returned for terrain options that cannot produce a mesh.
var ErrOptions = errors.New("terrain: invalid options")

// Options controls terrain generation.
// Size is the world extent on X and Z, centred on the origin. Segments is the
// number of grid cells per side. Heights lie in [0, HeightScale].
// Seed == 0 picks a time-based seed.
// Octaves, Frequency, Lacunarity and Gain shape the fractal noise.
type Options struct {
	Size        float32
	Segments    int
	HeightScale float32

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// Default is a 30x30 plane with 20x20 cells and heights up to 1.
func Default() Options {
	return Options{
		Size:        30,
		Segments:    20,
		HeightScale: 1,
		Seed:        1,
		Octaves:     4,
		Frequency:   0.6,
		Lacunarity:  2.0,
		Gain:        0.5,
	}
}

// maxSegments keeps the vertex count addressable by 16-bit indices.
const maxSegments = 254

// Generate builds the terrain mesh: a (Segments+1)^2 vertex grid displaced on
// Y by fractal noise, with smooth per-vertex normals and faces looking up.
// Noise parameters left at zero fall back to Default values.
func Generate(opts Options) (*geom.Mesh, error) {
	if opts.Segments <= 0 || opts.Segments > maxSegments {
		return nil, fmt.Errorf("generate terrain: %d segments: %w", opts.Segments, ErrOptions)
	}
	if opts.Size <= 0 || opts.HeightScale < 0 {
		return nil, fmt.Errorf("generate terrain: size %v, height %v: %w", opts.Size, opts.HeightScale, ErrOptions)
	}
	def := Default()
	if opts.Octaves <= 0 {
		opts.Octaves = def.Octaves
	}
	if opts.Frequency <= 0 {
		opts.Frequency = def.Frequency
	}
	if opts.Lacunarity <= 0 {
		opts.Lacunarity = def.Lacunarity
	}
	if opts.Gain <= 0 {
		opts.Gain = def.Gain
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	n := noise{
		seed:       int32(seed % math.MaxInt32),
		octaves:    opts.Octaves,
		lacunarity: opts.Lacunarity,
		gain:       opts.Gain,
	}

	side := opts.Segments + 1
	cell := opts.Size / float32(opts.Segments)
	half := opts.Size / 2
	m := &geom.Mesh{
		Name:      "terrain",
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		Positions: make([]vmath.Vec3, 0, side*side),
	}
	for z := 0; z < side; z++ {
		for x := 0; x < side; x++ {
			h := clamp01(n.at(float32(x)*opts.Frequency, float32(z)*opts.Frequency))
			m.Positions = append(m.Positions, vmath.V3(
				-half+float32(x)*cell,
				h*opts.HeightScale,
				-half+float32(z)*cell,
			))
		}
	}
	for z := 0; z < opts.Segments; z++ {
		for x := 0; x < opts.Segments; x++ {
			a := uint16(z*side + x)
			b := a + 1
			c := a + uint16(side)
			d := c + 1
			// Counter-clockwise seen from above (+Y).
			m.Indices = append(m.Indices, a, c, b, b, c, d)
		}
	}
	m.Normals = vertexNormals(m)
	return m, nil
}

// vertexNormals averages the area-weighted normals of the faces around each vertex.
func vertexNormals(m *geom.Mesh) []vmath.Vec3 {
	out := make([]vmath.Vec3, len(m.Positions))
	for _, tri := range m.Triangles() {
		a, b, c := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]
		fn := b.Sub(a).Cross(c.Sub(a))
		for _, i := range tri {
			out[i] = out[i].Add(fn)
		}
	}
	for i := range out {
		out[i] = out[i].Normalize()
	}
	return out
}
