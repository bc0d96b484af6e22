// rand/rand.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	gomath "math"

	"github.com/MichaelTJones/pcg"
)

// Rand is a small deterministic random source; scenario runs seed one
// explicitly so that injected sensor noise reproduces exactly.
type Rand struct {
	r *pcg.PCG32
}

func New() Rand {
	return Rand{r: pcg.NewPCG32()}
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), 0xda3e39cb94b95bdb)
}

func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

func (r *Rand) Float32() float32 {
	return float32(r.r.Random()) / (1<<32 - 1)
}

func (r *Rand) Uint32() uint32 {
	return r.r.Random()
}

// NormFloat32 returns a normally-distributed value with mean 0 and the
// given standard deviation, via Box-Muller.
func (r *Rand) NormFloat32(sigma float32) float32 {
	u1 := r.Float32()
	if u1 < 1e-9 {
		u1 = 1e-9
	}
	u2 := r.Float32()
	z := gomath.Sqrt(-2*gomath.Log(float64(u1))) * gomath.Cos(2*gomath.Pi*float64(u2))
	return sigma * float32(z)
}
