// Package generator produces random short codes and runs the bounded
// retry-until-unique allocation loop.
package generator

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Alphabet is base62 minus the visually ambiguous characters 0/O and 1/l/I,
// so generated codes stay human-typeable.
const Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const (
	// DefaultLength yields ~57^6 (3.4e10) possible codes, enough that ten
	// attempts practically never all collide.
	DefaultLength = 6

	// MaxAttempts bounds the allocation loop.
	MaxAttempts = 10
)

// ErrExhausted is returned by Allocate when every attempt collided.
var ErrExhausted = errors.New("short code space exhausted after max attempts")

// ExistsFunc reports whether a candidate code is already taken. It is
// injectable so callers can back it with any store and tests can force
// collisions deterministically.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generate draws length characters uniformly from Alphabet. It is stateless
// and may return a code that is already in use; uniqueness is the caller's
// concern (see Allocate).
func Generate(length int) (string, error) {
	if length < 1 {
		length = DefaultLength
	}

	b := make([]byte, length)
	max := big.NewInt(int64(len(Alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = Alphabet[n.Int64()]
	}

	return string(b), nil
}

// Allocate generates candidates until exists reports one free, up to
// MaxAttempts. The storage layer's unique constraint remains the final
// arbiter for concurrent allocations; a constraint violation on insert means
// the caller should rerun this loop.
func Allocate(ctx context.Context, length int, exists ExistsFunc) (string, error) {
	for i := 0; i < MaxAttempts; i++ {
		code, err := Generate(length)
		if err != nil {
			return "", fmt.Errorf("generate short code: %w", err)
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check short code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", ErrExhausted
}
