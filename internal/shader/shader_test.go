package shader

import (
	"strings"
	"testing"

	"bezier-stencil/internal/bezier"
	"bezier-stencil/internal/vmath"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var points = bezier.Points{
	vmath.V3(-5, 10, -5),
	vmath.V3(0, 10, 5),
	vmath.V3(10, 10, 5),
	vmath.V3(10, 10, 10),
}

func TestMarkerIndex(t *testing.T) {
	tests := []struct {
		z    float32
		want int
	}{
		{-1, 0}, {0, 0}, {0.49, 0},
		{0.5, 1}, {1, 1}, {1.49, 1},
		{1.5, 2}, {2, 2},
		{2.5, 3}, {3, 3}, {7, 3},
	}
	for _, tt := range tests {
		if got := MarkerIndex(tt.z); got != tt.want {
			t.Errorf("MarkerIndex(%v) = %d, want %d", tt.z, got, tt.want)
		}
	}
}

func TestTransform(t *testing.T) {
	v := &Values{Points: &points}

	t.Run("line", func(t *testing.T) {
		got, _ := Line().Transform(v, vmath.V3(0, 0, 0.5), vmath.Up)
		if want := points.Eval(0.5); got != want {
			t.Errorf("line vertex = %v, want %v", got, want)
		}
	})

	t.Run("connector", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			got, _ := Connector().Transform(v, vmath.V3(0, 0, float32(i)), vmath.Up)
			if got != points[i] {
				t.Errorf("connector vertex %d = %v, want %v", i, got, points[i])
			}
		}
	})

	t.Run("extrude", func(t *testing.T) {
		s := points.Evaluate(0.25)
		got, _ := Extrude().Transform(v, vmath.V3(0.5, -3, 0.25), vmath.Up)
		if got.Y != -3 {
			t.Errorf("extruded y = %v, want the template y -3", got.Y)
		}
		// x = 0.5 moves one unit against the normal.
		off := vmath.V3(got.X-s.Position.X, 0, got.Z-s.Position.Z)
		want := s.Normal.Scale(-1)
		if diff := cmp.Diff(want, off, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
			t.Errorf("sideways offset mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("marker", func(t *testing.T) {
		p := vmath.V3(0.25, -0.25, 0.25)
		if got, _ := Marker().Transform(v, p, vmath.Up); got != p {
			t.Errorf("marker vertex = %v, want pass-through %v", got, p)
		}
	})
}

func TestShade(t *testing.T) {
	v := &Values{
		Color:    vmath.V3(0.5, 0.5, 0.5),
		Alpha:    1,
		Emissive: vmath.V3(0.1, 0, 0),
		LightDir: vmath.V3(0, 2, 0),
		Ambient:  0.2,
	}
	tests := []struct {
		name   string
		normal vmath.Vec3
		want   vmath.Vec3
	}{
		{"facing light", vmath.Up, vmath.V3(0.6, 0.5, 0.5)},
		{"facing away", vmath.V3(0, -1, 0), vmath.V3(0.2, 0.1, 0.1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, a := Lit().Shade(v, tt.normal)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
				t.Errorf("lit color mismatch (-want +got):\n%s", diff)
			}
			if a != 1 {
				t.Errorf("alpha = %v, want 1", a)
			}
		})
	}

	v.Color = vmath.V3(1, 0, 0)
	v.Alpha = 0.5
	if got, a := Extrude().Shade(v, vmath.Up); got != v.Color || a != 0.5 {
		t.Errorf("flat shade = %v, %v, want %v, 0.5", got, a, v.Color)
	}
}

type upload struct {
	name string
	data []float32
}

type recordingBinder struct {
	missing map[string]bool
	calls   []upload
}

func (b *recordingBinder) Locate(p *Program, name string) Handle {
	if b.missing[name] {
		return -1
	}
	for i, u := range p.Uniforms {
		if u.Name == name {
			return Handle(i)
		}
	}
	return -1
}

func (b *recordingBinder) UpdateUniform(p *Program, h Handle, u Uniform, data []float32) {
	b.calls = append(b.calls, upload{u.Name, data})
}

func TestUploadReadsCurrentPoints(t *testing.T) {
	pts := points
	v := &Values{Points: &pts, Color: Hex(0xff0000), Alpha: 1}
	b := &recordingBinder{}

	Upload(b, Line(), v)
	pts[2] = vmath.V3(1, 2, 3)
	Upload(b, Line(), v)

	if len(b.calls) != 6 {
		t.Fatalf("got %d uploads, want 6", len(b.calls))
	}
	first, second := b.calls[0], b.calls[3]
	if first.name != UniformPoints || second.name != UniformPoints {
		t.Fatalf("first uniform uploaded is %q, want %q", first.name, UniformPoints)
	}
	if diff := cmp.Diff([]float32{1, 2, 3}, second.data[6:9]); diff != "" {
		t.Errorf("edited point not uploaded (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float32{10, 10, 5}, first.data[6:9]); diff != "" {
		t.Errorf("first upload mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float32{1, 0, 0}, b.calls[1].data); diff != "" {
		t.Errorf("color upload mismatch (-want +got):\n%s", diff)
	}
}

func TestUploadSkipsMissingUniforms(t *testing.T) {
	b := &recordingBinder{missing: map[string]bool{UniformAlpha: true}}
	Upload(b, Marker(), &Values{Color: vmath.V3(1, 1, 0), Alpha: 1})
	want := []upload{{UniformColor, []float32{1, 1, 0}}}
	if diff := cmp.Diff(want, b.calls, cmp.AllowUnexported(upload{})); diff != "" {
		t.Errorf("uploads mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRebuildsUploadedValues(t *testing.T) {
	src := &Values{
		Points:   &points,
		Color:    Hex(0x00ff00),
		Alpha:    0.5,
		Emissive: Hex(0x300000),
		LightDir: vmath.V3(-10, 10, 10),
		Ambient:  0.25,
	}
	var got Values
	for _, name := range []string{UniformPoints, UniformColor, UniformAlpha, UniformEmissive, UniformLightDir, UniformAmbient} {
		got.Decode(name, src.data(name))
	}
	if diff := cmp.Diff(src, &got); diff != "" {
		t.Errorf("decoded values mismatch (-want +got):\n%s", diff)
	}
}

func TestHex(t *testing.T) {
	got := Hex(0xaa0000)
	if math32.Abs(got.X-0.6667) > 1e-3 || got.Y != 0 || got.Z != 0 {
		t.Errorf("Hex(0xaa0000) = %v", got)
	}
}

func TestGLSLSources(t *testing.T) {
	for _, p := range All() {
		t.Run(p.Name, func(t *testing.T) {
			if !strings.HasPrefix(p.Vertex, "#version 330") || !strings.HasPrefix(p.Fragment, "#version 330") {
				t.Error("sources must start with #version 330")
			}
			if !strings.Contains(p.Vertex, "uniform mat4 mvp;") {
				t.Error("vertex stage does not transform with mvp")
			}
			for _, u := range p.Uniforms {
				if !strings.Contains(p.Vertex+p.Fragment, u.Name) {
					t.Errorf("uniform %s declared in schema but not in source", u.Name)
				}
			}
		})
	}
}

func TestValidateWGSL(t *testing.T) {
	for _, p := range All() {
		t.Run(p.Name, func(t *testing.T) {
			err := Validate(p)
			if err == nil {
				return
			}
			msg := err.Error()
			if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
				t.Skipf("Skipping: naga feature not yet implemented: %v", err)
			}
			if strings.Contains(msg, "lowering error") {
				t.Skipf("Skipping: naga lowering limitation: %v", err)
			}
			t.Fatalf("Validate: %v", err)
		})
	}
}
