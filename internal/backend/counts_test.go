package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountsTotal(t *testing.T) {
	assert.Equal(t, 0, Counts{}.Total())
	assert.Equal(t, 1000, Counts{"1": 992, "0": 8}.Total())
}

func TestCountsStringSorted(t *testing.T) {
	c := Counts{"11": 480, "00": 505, "10": 15}
	assert.Equal(t, `{"00": 505, "10": 15, "11": 480}`, c.String())
	assert.Equal(t, `{}`, Counts{}.String())
}
