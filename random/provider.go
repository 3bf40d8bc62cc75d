// Package random supplies the cryptographically strong randomness used by
// every draw that affects competitive fairness. Callers never get to pick a
// seed: outputs are unpredictable, and the DrawSeed is retained only so the
// audit trail can show which draw produced a given assignment.
package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// Provider is the randomness dependency of the assignment and coin-toss
// code. Production code uses NewCryptoProvider; tests substitute a scripted
// implementation.
type Provider interface {
	// CoinFlip returns 0 or 1 with equal probability.
	CoinFlip() int
	// Intn returns a uniform integer in [0, n). Panics if n <= 0.
	Intn(n int) int
	// Shuffle performs a Fisher–Yates shuffle over n elements via swap.
	Shuffle(n int, swap func(i, j int))
	// NewDrawSeed returns a fresh 32-hex-char identifier for audit trails.
	NewDrawSeed() string
}

type cryptoProvider struct{}

// NewCryptoProvider returns the crypto/rand backed Provider. Failure to
// obtain entropy is fatal: the process panics rather than downgrading to a
// weaker source.
func NewCryptoProvider() Provider {
	return cryptoProvider{}
}

func (cryptoProvider) CoinFlip() int {
	return cryptoProvider{}.Intn(2)
}

func (cryptoProvider) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("random: Intn called with non-positive bound %d", n))
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("random: failed to read entropy: %v", err))
	}
	return int(v.Int64())
}

func (p cryptoProvider) Shuffle(n int, swap func(i, j int)) {
	// Fisher–Yates, walking down so every permutation is equally likely.
	for i := n - 1; i > 0; i-- {
		j := p.Intn(i + 1)
		swap(i, j)
	}
}

func (cryptoProvider) NewDrawSeed() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("random: failed to read entropy for draw seed: %v", err))
	}
	return hex.EncodeToString(buf)
}
