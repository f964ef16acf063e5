package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymizeID_Stability(t *testing.T) {
	first, err := AnonymizeID("s123495", false)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := AnonymizeID("s123495", false)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// Fixed width hex, 256 bits
	assert.Len(t, first.String(), 64)
}

func TestAnonymizeID_NoCollisions(t *testing.T) {
	ids := []string{
		"s123495", "s125676", "s147612", "s189724", "s675437",
		"123495", "125676", "0", "1", "0001", "s 123", "x123495",
	}
	seen := make(map[StudentHash]string)
	for _, id := range ids {
		hash, err := AnonymizeID(id, false)
		require.NoError(t, err)
		prev, dup := seen[hash]
		require.False(t, dup, "collision between %q and %q", prev, id)
		seen[hash] = id
	}
}

func TestAnonymizeID_StripPrefix(t *testing.T) {
	withPrefix, err := AnonymizeID("s123", true)
	require.NoError(t, err)
	bare, err := AnonymizeID("123", true)
	require.NoError(t, err)
	assert.Equal(t, bare, withPrefix)

	// Without stripping they stay distinct
	noStrip, err := AnonymizeID("s123", false)
	require.NoError(t, err)
	assert.NotEqual(t, bare, noStrip)
}

func TestAnonymizeID_Normalization(t *testing.T) {
	a, err := AnonymizeID("  S123  ", false)
	require.NoError(t, err)
	b, err := AnonymizeID("s123", false)
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestAnonymizeID_EmptyRejected(t *testing.T) {
	_, err := AnonymizeID("", false)
	assert.ErrorIs(t, err, ErrEmptyIdentifier)

	_, err = AnonymizeID("   ", true)
	assert.ErrorIs(t, err, ErrEmptyIdentifier)

	// A lone prefix character strips down to nothing
	_, err = AnonymizeID("s", true)
	assert.ErrorIs(t, err, ErrEmptyIdentifier)
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		strip bool
		want  string
	}{
		{"plain", "s123", false, "s123"},
		{"strip letter", "s123", true, "123"},
		{"digit start untouched", "123", true, "123"},
		{"trim and lower", "  S9A  ", false, "s9a"},
		{"strip before folding", "X42", true, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeID(tt.raw, tt.strip))
		})
	}
}
