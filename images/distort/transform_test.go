package distort

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-imgproc/images"
)

func TestAffineCompute(t *testing.T) {
	a := NewAffine(2, 1, -1, 3, 4, 5)
	x, y := a.Compute(1, 2)
	assert.Equal(t, float32(8), x)
	assert.Equal(t, float32(10), y)

	x, y = NewScale(0.5, 2).Compute(3, 3)
	assert.Equal(t, float32(1.5), x)
	assert.Equal(t, float32(6), y)
}

func TestRotation(t *testing.T) {
	r := NewRotation(math32.Pi/2, 2, 2)

	x, y := r.Compute(2, 2)
	assert.InDelta(t, 2, x, 1e-5)
	assert.InDelta(t, 2, y, 1e-5)

	x, y = r.Compute(3, 2)
	assert.InDelta(t, 2, x, 1e-5)
	assert.InDelta(t, 3, y, 1e-5)
}

func TestAffineInvert(t *testing.T) {
	a := NewAffine(2, 0, 0, 2, 3, 1)
	inv, err := a.Invert()
	require.NoError(t, err)
	a11, a12, a21, a22, tx, ty := inv.Coefficients()
	assert.InDelta(t, 0.5, a11, 1e-6)
	assert.Zero(t, a12)
	assert.Zero(t, a21)
	assert.InDelta(t, 0.5, a22, 1e-6)
	assert.InDelta(t, -1.5, tx, 1e-6)
	assert.InDelta(t, -0.5, ty, 1e-6)

	r := NewRotation(0.4, 5, 7)
	back, err := r.Invert()
	require.NoError(t, err)
	b11, b12, b21, b22, btx, bty := back.Coefficients()
	for _, p := range [][2]int{{0, 0}, {5, 7}, {9, 2}} {
		x, y := r.Compute(p[0], p[1])
		// Compose through a float affine since Compute takes pixel indices.
		bx := b11*x + b12*y + btx
		by := b21*x + b22*y + bty
		assert.InDelta(t, float32(p[0]), bx, 1e-4)
		assert.InDelta(t, float32(p[1]), by, 1e-4)
	}

	_, err = NewScale(0, 1).Invert()
	assert.ErrorIs(t, err, images.ErrInvalidArgument)
}

func TestAffineVersion(t *testing.T) {
	a := NewAffine(1, 0, 0, 1, 0, 0)
	v := a.Version()
	a.Set(1, 0, 0, 1, 1, 0)
	assert.Greater(t, a.Version(), v)
}

type wrapped struct {
	inner Transform
}

func (w wrapped) Compute(x, y int) (float32, float32) {
	return w.inner.Compute(x, y)
}

func TestKeyOf(t *testing.T) {
	_, ok := keyOf(nil)
	assert.False(t, ok)

	_, ok = keyOf(TransformFunc(func(x, y int) (float32, float32) { return 0, 0 }))
	assert.False(t, ok)

	k1, ok := keyOf(Identity{})
	require.True(t, ok)
	k2, _ := keyOf(Identity{})
	assert.True(t, k1.equal(k2))

	a := NewScale(2, 2)
	before, ok := keyOf(a)
	require.True(t, ok)
	a.Set(3, 0, 0, 3, 0, 0)
	after, _ := keyOf(a)
	assert.False(t, before.equal(after))
	assert.False(t, before.equal(k1))

	// Coefficients are part of the key even if the version does not move.
	a.a11 = 4
	mutated, _ := keyOf(a)
	assert.Equal(t, after.version, mutated.version)
	assert.False(t, after.equal(mutated))

	// Comparable wrapper type holding a function: the comparison panics and
	// is reported as a mismatch.
	f := TransformFunc(func(x, y int) (float32, float32) { return 0, 0 })
	w1, ok := keyOf(wrapped{inner: f})
	require.True(t, ok)
	w2, _ := keyOf(wrapped{inner: f})
	assert.False(t, w1.equal(w2))
}
