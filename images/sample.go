// Package images provides the strided raster types and numeric sample model
// shared by the convolution and distortion kernels.
package images

import (
	"fmt"
	"math"
)

// Sample is the set of numeric types a single-band image can store.
type Sample interface {
	uint8 | int16 | float32 | float64
}

// SampleType tags one of the supported sample representations. The zero value
// is not a valid type.
type SampleType int

const (
	// TypeU8 is an 8-bit unsigned integer sample.
	TypeU8 SampleType = iota + 1
	// TypeS16 is a 16-bit signed integer sample.
	TypeS16
	// TypeF32 is a 32-bit floating point sample.
	TypeF32
	// TypeF64 is a 64-bit floating point sample.
	TypeF64
)

// String returns the short name used in logs and error messages.
func (t SampleType) String() string {
	switch t {
	case TypeU8:
		return "U8"
	case TypeS16:
		return "S16"
	case TypeF32:
		return "F32"
	case TypeF64:
		return "F64"
	default:
		return fmt.Sprintf("SampleType(%d)", int(t))
	}
}

// Supported reports whether t is one of the four supported sample types.
func (t SampleType) Supported() bool {
	return t >= TypeU8 && t <= TypeF64
}

// IsInteger reports whether t stores integer samples. Integer sums are
// rounded to nearest when averaged; float sums are divided directly.
func (t SampleType) IsInteger() bool {
	return t == TypeU8 || t == TypeS16
}

// TypeOf returns the tag of the sample type T.
func TypeOf[T Sample]() SampleType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return TypeU8
	case int16:
		return TypeS16
	case float32:
		return TypeF32
	default:
		return TypeF64
	}
}

// Narrow converts an interpolated or substituted value to the sample type T.
// Integer targets saturate to the type's range and then truncate toward zero;
// NaN becomes 0. Float targets convert directly.
func Narrow[T Sample](v float64) T {
	var out T
	switch p := any(&out).(type) {
	case *uint8:
		*p = uint8(saturate(v, 0, math.MaxUint8))
	case *int16:
		*p = int16(saturate(v, math.MinInt16, math.MaxInt16))
	case *float32:
		*p = float32(v)
	case *float64:
		*p = v
	}
	return out
}

func saturate(v, lo, hi float64) float64 {
	switch {
	case v != v:
		return 0
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
