// Package border defines how samples requested outside an image are
// resolved, both for window kernels (index extension) and for sub-pixel
// remapping (substitute values).
package border

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imgproc/images"
)

// Mode defines how an index outside [0, n) is mapped back into the image.
// - None: nothing is sampled; kernels only produce the valid region.
// - Extend: repeats edge pixels.
// - Reflect: mirrors coordinates without duplicating the edge pixel twice.
// - Wrap: tiles the image.
type Mode int

const (
	ModeNone Mode = iota
	ModeExtend
	ModeReflect
	ModeWrap
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeExtend:
		return "extend"
	case ModeReflect:
		return "reflect"
	case ModeWrap:
		return "wrap"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return ModeNone, nil
	case "extend", "clamp":
		return ModeExtend, nil
	case "reflect", "mirror":
		return ModeReflect, nil
	case "wrap":
		return ModeWrap, nil
	}
	return ModeNone, errors.Wrapf(images.ErrInvalidArgument, "unknown border mode %q", s)
}

// Index maps i to [0, n) according to the mode. n must be positive. ModeNone
// returns -1 for indices outside the image.
//
// Reflect: ... -2, -1, 0, 1, 2 ... -> 1, 0, 0, 1, 2 ...
func (m Mode) Index(i, n int) int {
	if i >= 0 && i < n {
		return i
	}
	switch m {
	case ModeExtend:
		if i < 0 {
			return 0
		}
		return n - 1
	case ModeReflect:
		// The reflected sequence repeats every 2n samples.
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	case ModeWrap:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	default:
		return -1
	}
}

// Policy resolves a sample for a sub-pixel source coordinate that falls
// outside the sampleable region. ok == false means "use nothing": the
// destination pixel is left untouched.
type Policy[T images.Sample] interface {
	Resolve(img *images.Gray[T], x, y float32) (v float64, ok bool)
}

// Constant is implemented by policies whose substitute depends on neither the
// image nor the coordinate. Such policies can be resolved ahead of time.
type Constant interface {
	Constant() float64
}

// Value substitutes a fixed value for every outside sample.
type Value[T images.Sample] struct {
	V float64
}

// NewValue returns a policy substituting v.
func NewValue[T images.Sample](v float64) Value[T] {
	return Value[T]{V: v}
}

// Resolve implements Policy.
func (b Value[T]) Resolve(*images.Gray[T], float32, float32) (float64, bool) {
	return b.V, true
}

// Constant implements Constant.
func (b Value[T]) Constant() float64 {
	return b.V
}

// Extension resolves an outside coordinate to the nearest pixel and maps it
// back into the image with Mode.
type Extension[T images.Sample] struct {
	Mode Mode
}

// NewExtension returns an extension policy for m.
func NewExtension[T images.Sample](m Mode) Extension[T] {
	return Extension[T]{Mode: m}
}

// Resolve implements Policy.
func (b Extension[T]) Resolve(img *images.Gray[T], x, y float32) (float64, bool) {
	if b.Mode == ModeNone || img.Width == 0 || img.Height == 0 {
		return 0, false
	}
	ix, ok := nearest(x)
	if !ok {
		return 0, false
	}
	iy, ok := nearest(y)
	if !ok {
		return 0, false
	}
	return float64(img.At(b.Mode.Index(ix, img.Width), b.Mode.Index(iy, img.Height))), true
}

// maxCoord bounds rounded coordinates so the int conversion is always
// defined. float32 cannot resolve single pixels this far out anyway.
const maxCoord = 1 << 30

// nearest rounds v to the nearest pixel index. NaN and ±Inf have none.
func nearest(v float32) (int, bool) {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return 0, false
	}
	r := math32.Floor(v + 0.5)
	switch {
	case r > maxCoord:
		return maxCoord, true
	case r < -maxCoord:
		return -maxCoord, true
	}
	return int(r), true
}

// For returns the policy used by the remapping engines for mode m: nil for
// ModeNone, an Extension otherwise.
func For[T images.Sample](m Mode) Policy[T] {
	if m == ModeNone {
		return nil
	}
	return NewExtension[T](m)
}
