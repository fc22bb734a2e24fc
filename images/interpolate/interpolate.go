// Package interpolate samples single-band images at sub-pixel coordinates.
package interpolate

import (
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imgproc/images"
)

// Interpolator samples an image at continuous coordinates. Implementations
// must be pure: Inside may depend only on the image geometry, and Sample only
// on the image contents and the coordinate.
type Interpolator[T images.Sample] interface {
	// Inside reports whether (x, y) lies in the sampleable region.
	Inside(img *images.Gray[T], x, y float32) bool
	// Sample returns the interpolated value at (x, y). Only called when Inside
	// is true.
	Sample(img *images.Gray[T], x, y float32) float64
}

// Kind names an interpolation algorithm.
type Kind int

const (
	// KindNearest selects the closest pixel.
	KindNearest Kind = iota
	// KindBilinear blends the four neighbouring pixels.
	KindBilinear
	// KindBicubic uses a Catmull-Rom spline over a 4x4 neighbourhood.
	KindBicubic
)

// String returns the flag spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindNearest:
		return "nearest"
	case KindBilinear:
		return "bilinear"
	case KindBicubic:
		return "bicubic"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "nearest":
		return KindNearest, nil
	case "bilinear":
		return KindBilinear, nil
	case "bicubic":
		return KindBicubic, nil
	}
	return 0, errors.Wrapf(images.ErrInvalidArgument, "unknown interpolation %q", s)
}

// New returns the interpolator for kind.
func New[T images.Sample](kind Kind) (Interpolator[T], error) {
	switch kind {
	case KindNearest:
		return NearestNeighbor[T]{}, nil
	case KindBilinear:
		return Bilinear[T]{}, nil
	case KindBicubic:
		return Bicubic[T]{}, nil
	}
	return nil, errors.Wrapf(images.ErrInvalidArgument, "unknown interpolation kind %d", int(kind))
}

// inside is the sampleable region shared by all implementations:
// [0, w-1] x [0, h-1]. NaN coordinates are outside.
func inside[T images.Sample](img *images.Gray[T], x, y float32) bool {
	return x >= 0 && y >= 0 && x <= float32(img.Width-1) && y <= float32(img.Height-1)
}

// NearestNeighbor returns the sample of the pixel closest to the coordinate.
type NearestNeighbor[T images.Sample] struct{}

// Inside implements Interpolator.
func (NearestNeighbor[T]) Inside(img *images.Gray[T], x, y float32) bool {
	return inside(img, x, y)
}

// Sample implements Interpolator.
func (NearestNeighbor[T]) Sample(img *images.Gray[T], x, y float32) float64 {
	px := int(x + 0.5)
	py := int(y + 0.5)
	if px >= img.Width {
		px = img.Width - 1
	}
	if py >= img.Height {
		py = img.Height - 1
	}
	return float64(img.At(px, py))
}

// Bilinear interpolates linearly between the four pixels surrounding the
// coordinate. On the last row or column the missing neighbour carries zero
// weight and is replaced by the edge pixel.
type Bilinear[T images.Sample] struct{}

// Inside implements Interpolator.
func (Bilinear[T]) Inside(img *images.Gray[T], x, y float32) bool {
	return inside(img, x, y)
}

// Sample implements Interpolator.
func (Bilinear[T]) Sample(img *images.Gray[T], x, y float32) float64 {
	fx := math32.Floor(x)
	fy := math32.Floor(y)
	x0, y0 := int(fx), int(fy)
	ax := float64(x - fx)
	ay := float64(y - fy)

	x1, y1 := x0+1, y0+1
	if x1 >= img.Width {
		x1 = x0
	}
	if y1 >= img.Height {
		y1 = y0
	}

	p00 := float64(img.At(x0, y0))
	p10 := float64(img.At(x1, y0))
	p01 := float64(img.At(x0, y1))
	p11 := float64(img.At(x1, y1))

	return (1-ay)*((1-ax)*p00+ax*p10) + ay*((1-ax)*p01+ax*p11)
}

// Bicubic applies a Catmull-Rom spline (Mitchell-Netravali B=0, C=0.5) over
// the 4x4 neighbourhood, clamping neighbour indices at the image edge.
type Bicubic[T images.Sample] struct{}

// Inside implements Interpolator.
func (Bicubic[T]) Inside(img *images.Gray[T], x, y float32) bool {
	return inside(img, x, y)
}

// Sample implements Interpolator.
func (Bicubic[T]) Sample(img *images.Gray[T], x, y float32) float64 {
	fx := math32.Floor(x)
	fy := math32.Floor(y)
	x0, y0 := int(fx), int(fy)
	tx := float64(x - fx)
	ty := float64(y - fy)

	var wx, wy [4]float64
	for i := 0; i < 4; i++ {
		wx[i] = catmullRom(tx - float64(i-1))
		wy[i] = catmullRom(ty - float64(i-1))
	}

	var sum float64
	for j := 0; j < 4; j++ {
		if wy[j] == 0 {
			continue
		}
		py := clamp(y0+j-1, img.Height)
		var row float64
		for i := 0; i < 4; i++ {
			if wx[i] == 0 {
				continue
			}
			row += wx[i] * float64(img.At(clamp(x0+i-1, img.Width), py))
		}
		sum += wy[j] * row
	}
	return sum
}

// catmullRom is the cubic convolution kernel with a = -0.5.
func catmullRom(x float64) float64 {
	if x < 0 {
		x = -x
	}
	if x < 1.0 {
		return (1.5*x-2.5)*x*x + 1.0
	}
	if x < 2.0 {
		return ((-0.5*x+2.5)*x-4.0)*x + 2.0
	}
	return 0.0
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
