package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValidJSON(t *testing.T) {
	var out []string
	require.True(t, decode(`["a","b"]`, &out))
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestDecodeCorruptValueIsNotAnError(t *testing.T) {
	var out []string
	assert.False(t, decode(`{broken`, &out))
	assert.False(t, decode(``, &out))
}

func TestDecodeWrongShapeIsCorrupt(t *testing.T) {
	var out []string
	assert.False(t, decode(`{"not":"a list"}`, &out))
}
