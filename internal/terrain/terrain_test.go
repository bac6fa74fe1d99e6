package terrain

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
)

func TestGenerateDefault(t *testing.T) {
	opts := Default()
	m, err := Generate(opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	side := opts.Segments + 1
	if got, want := m.VertexCount(), side*side; got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}
	if got, want := len(m.Triangles()), 2*opts.Segments*opts.Segments; got != want {
		t.Errorf("triangle count = %d, want %d", got, want)
	}

	first, last := m.Positions[0], m.Positions[len(m.Positions)-1]
	if first.X != -15 || first.Z != -15 || last.X != 15 || last.Z != 15 {
		t.Errorf("corners %v and %v, want +-15 on X and Z", first, last)
	}

	var lo, hi float32 = 1, 0
	for _, p := range m.Positions {
		lo = math32.Min(lo, p.Y)
		hi = math32.Max(hi, p.Y)
	}
	if lo < 0 || hi > opts.HeightScale {
		t.Errorf("heights span [%v, %v], want within [0, %v]", lo, hi, opts.HeightScale)
	}
	if hi-lo < 0.05 {
		t.Errorf("heights span [%v, %v], want visible relief", lo, hi)
	}

	for i, n := range m.Normals {
		if !n.IsFinite() || n.Y <= 0 {
			t.Errorf("normal %d = %v, want finite and facing up", i, n)
			break
		}
	}
	for _, tri := range m.Triangles() {
		a, b, c := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]
		if b.Sub(a).Cross(c.Sub(a)).Y <= 0 {
			t.Fatalf("triangle %v faces down", tri)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := Default()
	opts.Seed = 42
	a, err := Generate(opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Positions, b.Positions); diff != "" {
		t.Errorf("same seed produced different terrain (-first +second):\n%s", diff)
	}

	opts.Seed = 43
	c, err := Generate(opts)
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Equal(a.Positions, c.Positions) {
		t.Error("different seeds produced identical terrain")
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"no segments", func(o *Options) { o.Segments = 0 }},
		{"too many segments", func(o *Options) { o.Segments = 300 }},
		{"no size", func(o *Options) { o.Size = 0 }},
		{"negative height", func(o *Options) { o.HeightScale = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			tt.mutate(&opts)
			if _, err := Generate(opts); !errors.Is(err, ErrOptions) {
				t.Errorf("Generate error = %v, want ErrOptions", err)
			}
		})
	}
}

func TestValueNoiseRange(t *testing.T) {
	n := noise{seed: 7, octaves: 3, lacunarity: 2, gain: 0.5}
	for i := 0; i < 200; i++ {
		v := n.at(float32(i)*0.37, float32(i)*0.11)
		if v < 0 || v > 1 {
			t.Fatalf("noise(%d) = %v, want within [0,1]", i, v)
		}
	}
}

func TestScatter(t *testing.T) {
	pts := Scatter(30, 10, 7)
	if len(pts) != 10 {
		t.Fatalf("got %d points, want 10", len(pts))
	}
	for i, p := range pts {
		if p.Y != 0 || math32.Abs(p.X) > 15 || math32.Abs(p.Z) > 15 {
			t.Errorf("point %d = %v, want y = 0 and x, z within +-15", i, p)
		}
	}
	if diff := cmp.Diff(pts, Scatter(30, 10, 7)); diff != "" {
		t.Errorf("same seed scattered differently (-first +second):\n%s", diff)
	}
	if cmp.Equal(pts, Scatter(30, 10, 8)) {
		t.Error("different seeds scattered identically")
	}
	if got := Scatter(30, 0, 7); len(got) != 0 {
		t.Errorf("Scatter with n = 0 returned %d points", len(got))
	}
}
