package random

import "testing"

func TestNewDrawSeedFormat(t *testing.T) {
	p := NewCryptoProvider()
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		seed := p.NewDrawSeed()
		if len(seed) != 32 {
			t.Fatalf("expected 32 hex chars, got %d (%q)", len(seed), seed)
		}
		for _, c := range seed {
			if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
				t.Fatalf("seed %q contains non-hex character %q", seed, c)
			}
		}
		if seen[seed] {
			t.Fatalf("draw seed %q repeated", seed)
		}
		seen[seed] = true
	}
}

func TestCoinFlipRange(t *testing.T) {
	p := NewCryptoProvider()
	for i := 0; i < 100; i++ {
		if v := p.CoinFlip(); v != 0 && v != 1 {
			t.Fatalf("coin flip returned %d", v)
		}
	}
}

func TestIntnBounds(t *testing.T) {
	p := NewCryptoProvider()
	for i := 0; i < 100; i++ {
		if v := p.Intn(7); v < 0 || v >= 7 {
			t.Fatalf("Intn(7) returned %d", v)
		}
	}
}

func TestShufflePreservesElements(t *testing.T) {
	p := NewCryptoProvider()
	xs := []int{1, 2, 3, 4, 5, 6, 7, 8}
	p.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })

	counts := make(map[int]int)
	for _, x := range xs {
		counts[x]++
	}
	for want := 1; want <= 8; want++ {
		if counts[want] != 1 {
			t.Fatalf("shuffle lost or duplicated element %d: %v", want, xs)
		}
	}
}

func TestIntnPanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for Intn(0)")
		}
	}()
	NewCryptoProvider().Intn(0)
}
