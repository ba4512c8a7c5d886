package credential

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	g := NewGenerator()

	plain1, hash1, err := g.Generate()
	require.NoError(t, err)
	plain2, hash2, err := g.Generate()
	require.NoError(t, err)

	assert.NotEqual(t, plain1, plain2)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, Hash(plain1), hash1)
	assert.Len(t, hash1, 64)
	assert.NotContains(t, hash1, plain1)
	assert.True(t, LooksValid(plain1))
}

func TestGenerate_Deterministic(t *testing.T) {
	source := bytes.NewReader(bytes.Repeat([]byte{0x01}, TokenBytes))
	plain, hash, err := NewGeneratorWithSource(source).Generate()
	require.NoError(t, err)

	assert.Equal(t, "AQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQE", plain)
	assert.Equal(t, Hash(plain), hash)
}

func TestGenerate_ShortSource(t *testing.T) {
	_, _, err := NewGeneratorWithSource(strings.NewReader("short")).Generate()
	assert.Error(t, err)
}

func TestLooksValid(t *testing.T) {
	assert.False(t, LooksValid(""))
	assert.False(t, LooksValid("not a token"))
	assert.False(t, LooksValid("AQEB"))
}
