package terrain

import (
	"math/rand/v2"
	"time"

	"bezier-stencil/internal/vmath"
)

// Scatter returns n points spread uniformly over a size x size square
// centred on the origin, all at y = 0. The same seed gives the same points;
// seed == 0 picks a time-based seed.
func Scatter(size float32, n int, seed int64) []vmath.Vec3 {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
	out := make([]vmath.Vec3, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, vmath.V3((r.Float32()-0.5)*size, 0, (r.Float32()-0.5)*size))
	}
	return out
}
