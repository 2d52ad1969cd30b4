package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	code, err := Generate(6)

	require.NoError(t, err)
	assert.Len(t, code, 6)
}

func TestGenerate_DefaultsOnInvalidLength(t *testing.T) {
	code, err := Generate(0)

	require.NoError(t, err)
	assert.Len(t, code, DefaultLength)
}

func TestGenerate_OnlyAllowedCharacters(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := Generate(6)
		require.NoError(t, err)

		for _, c := range code {
			assert.True(t, strings.ContainsRune(Alphabet, c),
				"generated code %q contains %q outside the alphabet", code, c)
		}
		for _, ambiguous := range "0O1lI" {
			assert.NotContains(t, code, string(ambiguous))
		}
	}
}

func TestAllocate_FirstAttemptFree(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, code string) (bool, error) {
		calls++
		return false, nil
	}

	code, err := Allocate(context.Background(), 6, exists)

	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, 1, calls)
}

func TestAllocate_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, code string) (bool, error) {
		calls++
		return calls < 4, nil
	}

	code, err := Allocate(context.Background(), 6, exists)

	require.NoError(t, err)
	assert.NotEmpty(t, code)
	assert.Equal(t, 4, calls)
}

func TestAllocate_ExhaustedNamespace(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, code string) (bool, error) {
		calls++
		return true, nil
	}

	code, err := Allocate(context.Background(), 6, exists)

	assert.ErrorIs(t, err, ErrExhausted)
	assert.Empty(t, code)
	assert.Equal(t, MaxAttempts, calls)
}

func TestAllocate_ExistsCheckError(t *testing.T) {
	boom := errors.New("connection refused")
	exists := func(ctx context.Context, code string) (bool, error) {
		return false, boom
	}

	_, err := Allocate(context.Background(), 6, exists)

	assert.ErrorIs(t, err, boom)
}
