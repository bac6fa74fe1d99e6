//go:build darwin || freebsd || linux || netbsd

package gpu

import (
	"fmt"
	"runtime"

	"github.com/ebitengine/purego"
)

func libraryNames() []string {
	if runtime.GOOS == "darwin" {
		return []string{"/System/Library/Frameworks/OpenGL.framework/OpenGL"}
	}
	return []string{"libGL.so.1", "libGL.so"}
}

// loadGL resolves the stencil entry points from the system GL library. The
// window's context must be current before they are called.
func loadGL() (*glFuncs, error) {
	var (
		lib uintptr
		err error
	)
	for _, name := range libraryNames() {
		lib, err = purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load gl: %w", err)
	}

	f := &glFuncs{}
	for _, fn := range []struct {
		name string
		ptr  any
	}{
		{"glEnable", &f.enable},
		{"glDisable", &f.disable},
		{"glClear", &f.clear},
		{"glClearStencil", &f.clearStencil},
		{"glDepthFunc", &f.depthFunc},
		{"glStencilFunc", &f.stencilFunc},
		{"glStencilOp", &f.stencilOp},
		{"glStencilMask", &f.stencilMask},
	} {
		sym, err := purego.Dlsym(lib, fn.name)
		if err != nil {
			return nil, fmt.Errorf("load gl: %s: %w", fn.name, err)
		}
		purego.RegisterFunc(fn.ptr, sym)
	}
	return f, nil
}
