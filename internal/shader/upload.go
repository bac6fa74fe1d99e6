package shader

import (
	"fmt"

	"github.com/gogpu/naga"
)

// Handle locates a uniform inside one program. Negative means absent.
type Handle int32

// Binder is the device side of a uniform upload.
type Binder interface {
	// Locate resolves a uniform name for p.
	Locate(p *Program, name string) Handle
	// UpdateUniform pushes flattened data for one uniform of p.
	UpdateUniform(p *Program, h Handle, u Uniform, data []float32)
}

// Upload pushes every uniform in p's schema from v. It is called once per
// draw, so the values read at draw time are the ones the frame renders with.
func Upload(b Binder, p *Program, v *Values) {
	for _, u := range p.Uniforms {
		h := b.Locate(p, u.Name)
		if h < 0 {
			continue
		}
		b.UpdateUniform(p, h, u, v.data(u.Name))
	}
}

// Validate compiles the program's WGSL twin to SPIR-V.
func Validate(p *Program) error {
	spirv, err := naga.Compile(p.WGSL)
	if err != nil {
		return fmt.Errorf("validate %s: %w", p.Name, err)
	}
	if len(spirv) < 4 {
		return fmt.Errorf("validate %s: empty SPIR-V", p.Name)
	}
	return nil
}
