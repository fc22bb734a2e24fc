package distort

import (
	"reflect"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imgproc/images"
)

// Transform maps a destination pixel to a continuous source coordinate.
// Implementations must be pure for a given parameter set.
type Transform interface {
	Compute(x, y int) (float32, float32)
}

// TransformFunc adapts a function to Transform. Functions are not comparable,
// so a cached engine rebuilds its map on every call made with one.
type TransformFunc func(x, y int) (float32, float32)

// Compute implements Transform.
func (f TransformFunc) Compute(x, y int) (float32, float32) {
	return f(x, y)
}

// Versioned is implemented by transforms whose parameters can change in
// place. The version must change whenever the mapping does.
type Versioned interface {
	Version() uint64
}

// Identity maps every pixel onto itself.
type Identity struct{}

// Compute implements Transform.
func (Identity) Compute(x, y int) (float32, float32) {
	return float32(x), float32(y)
}

// Affine applies
//
//	x' = A11*x + A12*y + Tx
//	y' = A21*x + A22*y + Ty
//
// Use a pointer so a cached engine can recognise it across calls. The
// coefficients change only through Set, which bumps the version.
type Affine struct {
	a11, a12, a21, a22 float32
	tx, ty             float32

	version atomic.Uint64
}

// NewAffine returns the affine transform with the given coefficients.
func NewAffine(a11, a12, a21, a22, tx, ty float32) *Affine {
	a := &Affine{}
	a.Set(a11, a12, a21, a22, tx, ty)
	return a
}

// NewScale maps destination pixel (x, y) to source (x*sx, y*sy).
func NewScale(sx, sy float32) *Affine {
	return NewAffine(sx, 0, 0, sy, 0, 0)
}

// NewRotation rotates by angle radians around (cx, cy). The result maps
// destination pixels back into the source, i.e. the visible image turns by
// -angle.
func NewRotation(angle, cx, cy float32) *Affine {
	s, c := math32.Sincos(angle)
	return NewAffine(
		c, -s,
		s, c,
		cx-c*cx+s*cy, cy-s*cx-c*cy,
	)
}

// Set replaces the coefficients and bumps the version.
func (a *Affine) Set(a11, a12, a21, a22, tx, ty float32) {
	a.a11, a.a12, a.a21, a.a22 = a11, a12, a21, a22
	a.tx, a.ty = tx, ty
	a.version.Add(1)
}

// Coefficients returns the matrix and translation in the order Set takes them.
func (a *Affine) Coefficients() (a11, a12, a21, a22, tx, ty float32) {
	return a.a11, a.a12, a.a21, a.a22, a.tx, a.ty
}

// Version implements Versioned.
func (a *Affine) Version() uint64 {
	return a.version.Load()
}

// Compute implements Transform.
func (a *Affine) Compute(x, y int) (float32, float32) {
	fx, fy := float32(x), float32(y)
	return a.a11*fx + a.a12*fy + a.tx, a.a21*fx + a.a22*fy + a.ty
}

// Invert returns the inverse transform.
func (a *Affine) Invert() (*Affine, error) {
	det := a.a11*a.a22 - a.a12*a.a21
	if det == 0 || math32.IsNaN(det) {
		return nil, errors.Wrap(images.ErrInvalidArgument, "affine transform is singular")
	}
	i11, i12 := a.a22/det, -a.a12/det
	i21, i22 := -a.a21/det, a.a11/det
	return NewAffine(
		i11, i12,
		i21, i22,
		-(i11*a.tx + i12*a.ty), -(i21*a.tx + i22*a.ty),
	), nil
}

// transformKey identifies a transform for cache invalidation. Affine
// transforms are also keyed by a snapshot of their coefficients.
type transformKey struct {
	t       Transform
	version uint64
	coeffs  [6]float32
}

// keyOf returns the identity of t and whether it can be compared at all.
// Transforms of non-comparable dynamic type (functions, slices, maps, or
// structs containing them) have no stable identity.
func keyOf(t Transform) (transformKey, bool) {
	if t == nil || !reflect.TypeOf(t).Comparable() {
		return transformKey{}, false
	}
	k := transformKey{t: t}
	if v, ok := t.(Versioned); ok {
		k.version = v.Version()
	}
	if a, ok := t.(*Affine); ok && a != nil {
		c := &k.coeffs
		c[0], c[1], c[2], c[3], c[4], c[5] = a.Coefficients()
	}
	return k, true
}

// equal compares two keys. A comparable struct may still hold an interface
// whose dynamic value is not; such keys never match.
func (k transformKey) equal(o transformKey) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return k == o
}
