package service

import "math/rand/v2"

// RandSource picks an index in [0, n). Tests inject deterministic sources.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// NewRandSource returns a goroutine-safe source backed by math/rand/v2.
func NewRandSource() RandSource {
	return globalRand{}
}
