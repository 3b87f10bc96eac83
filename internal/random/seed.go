// Package random provides seed and source helpers for card shuffling.
//
// Production shuffles are seeded from crypto/rand; tests and replayable
// terminal runs pass an explicit seed so deals are reproducible.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand returns a pseudo-random source for seed. A zero seed draws a fresh
// one from crypto/rand.
func NewRand(seed int64) (*rand.Rand, error) {
	if seed == 0 {
		fresh, err := NewSeed()
		if err != nil {
			return nil, err
		}
		seed = fresh
	}
	return rand.New(rand.NewSource(seed)), nil
}
