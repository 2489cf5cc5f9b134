package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	assert.Equal(t, Layout{0, 1, 2}, Identity(3))
	assert.Equal(t, Layout{}, Identity(0))
}

func TestLayoutMapIsCopy(t *testing.T) {
	l := Layout{2, 4}
	m := l.Map()
	m[0] = 99
	assert.Equal(t, 2, l[0], "mutating the map must not affect the layout")
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name      string
		layout    Layout
		numQubits int
		wantErr   bool
	}{
		{name: "identity", layout: Layout{0, 1}, numQubits: 2},
		{name: "scattered", layout: Layout{2, 4}, numQubits: 2},
		{name: "size mismatch", layout: Layout{2, 4}, numQubits: 3, wantErr: true},
		{name: "duplicate target", layout: Layout{1, 1}, numQubits: 2, wantErr: true},
		{name: "negative target", layout: Layout{0, -2}, numQubits: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate(tt.numQubits)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
