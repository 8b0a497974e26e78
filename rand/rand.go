// rand/rand.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package rand provides a small deterministic PCG-based random number
// generator; it's mostly used to drive randomized geometry tests so that
// failures are reproducible.
package rand

import (
	"github.com/MichaelTJones/pcg"
)

const defaultSeed = 0x5eed0fca7

type Rand struct {
	r *pcg.PCG32
}

// Make returns a generator with a fixed seed.
func Make() Rand {
	r := Rand{r: pcg.NewPCG32()}
	r.Seed(defaultSeed)
	return r
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), 0xda3e39cb94b95bdb)
}

func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

func (r *Rand) Uint32() uint32 {
	return r.r.Random()
}

// Float64 returns a value in [0,1].
func (r *Rand) Float64() float64 {
	return float64(r.r.Random()) / (1<<32 - 1)
}

// Range returns a value uniformly distributed in [a,b].
func (r *Rand) Range(a, b float64) float64 {
	return a + (b-a)*r.Float64()
}
