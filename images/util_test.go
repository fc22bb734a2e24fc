package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	parent := NewGray[int16](6, 5)
	for i := range parent.Data {
		parent.Data[i] = int16(i*37 - 90)
	}

	view, err := parent.SubImage(1, 1, 5, 4)
	require.NoError(t, err)
	assert.Equal(t, Checksum(view.Clone()), Checksum(view), "padding must not affect the digest")
	assert.NotEqual(t, Checksum(parent), Checksum(view))

	before := Checksum(view)
	view.Set(0, 0, view.At(0, 0)+1)
	assert.NotEqual(t, before, Checksum(view))

	assert.Equal(t, "empty", Checksum[uint8](nil))
	assert.Equal(t, "empty", Checksum(NewGray[float32](0, 3)))
}

func TestChecksumDistinguishesTypes(t *testing.T) {
	u := NewGray[uint8](2, 2)
	f := NewGray[float64](2, 2)
	assert.NotEqual(t, Checksum(u), Checksum(f))
	assert.Len(t, Checksum(u), 32)
}
