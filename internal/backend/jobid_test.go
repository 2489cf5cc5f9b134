package backend

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7GeneratorWellFormed(t *testing.T) {
	gen := UUIDv7Generator{}
	id := gen.NewID()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestUUIDv7GeneratorUnique(t *testing.T) {
	gen := UUIDv7Generator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.NewID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestFixedIDGeneratorSequence(t *testing.T) {
	gen := NewFixedIDGenerator("a", "b")
	assert.Equal(t, "a", gen.NewID())
	assert.Equal(t, "b", gen.NewID())
	assert.Panics(t, func() { gen.NewID() }, "exhausted generator fails loudly")
}
