package random

import "testing"

func TestNewRandIsDeterministicForSeed(t *testing.T) {
	first, err := NewRand(42)
	if err != nil {
		t.Fatalf("new rand: %v", err)
	}
	second, err := NewRand(42)
	if err != nil {
		t.Fatalf("new rand: %v", err)
	}
	for i := 0; i < 10; i++ {
		if a, b := first.Intn(52), second.Intn(52); a != b {
			t.Fatalf("draw %d: %d != %d", i, a, b)
		}
	}
}

func TestNewRandZeroSeedUsesCrypto(t *testing.T) {
	rng, err := NewRand(0)
	if err != nil {
		t.Fatalf("new rand: %v", err)
	}
	if rng == nil {
		t.Fatal("expected rand source")
	}
}

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Fatalf("new seed: %v", err)
	}
}
