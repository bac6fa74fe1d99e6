//go:build !(darwin || freebsd || linux || netbsd)

package gpu

import (
	"fmt"
	"runtime"
)

func loadGL() (*glFuncs, error) {
	return nil, fmt.Errorf("load gl: no stencil entry points on %s", runtime.GOOS)
}
