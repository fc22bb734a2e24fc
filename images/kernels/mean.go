// Package kernels implements separable box-mean filters over single-band
// images using sliding-window sums.
package kernels

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imgproc/images"
)

// accumulator is the running-sum type of a sample type: int64 for integer
// samples, the sample's own precision for floats.
type accumulator interface {
	int64 | float32 | float64
}

// ConvolveMeanHorizontal replaces every interior pixel of each row with the
// mean of the 2*radius+1 source samples centred on it.
//
// Only columns [radius, width-radius) of dst are written; pixels closer than
// radius to the left or right edge keep their previous value. A kernel wider
// than the image writes nothing. Integer samples are rounded to nearest with
// (total + kernelWidth/2) / kernelWidth; float samples are divided directly.
//
// Arguments:
// - src: The image to filter.
// - dst: Receives the result. Must be at least as large as src.
// - radius: Half the kernel width. Must be >= 0.
//
// Returns:
// - error: ErrInvalidArgument for a negative radius or malformed geometry,
// reported before any write.
func ConvolveMeanHorizontal[T images.Sample](src, dst *images.Gray[T], radius int) error {
	if err := checkMean(src, dst, radius); err != nil {
		return err
	}
	if 2*radius+1 > src.Width {
		return nil
	}
	horizontalRows(src, dst, radius, 0, src.Height)
	return nil
}

// ConvolveMeanVertical replaces every interior pixel of each column with the
// mean of the 2*radius+1 source samples centred on it.
//
// Only rows [radius, height-radius) of dst are written. Rounding and error
// behaviour match ConvolveMeanHorizontal.
func ConvolveMeanVertical[T images.Sample](src, dst *images.Gray[T], radius int) error {
	if err := checkMean(src, dst, radius); err != nil {
		return err
	}
	if 2*radius+1 > src.Height {
		return nil
	}
	verticalRows(src, dst, radius, radius, src.Height-radius)
	return nil
}

func checkMean[T images.Sample](src, dst *images.Gray[T], radius int) error {
	if radius < 0 {
		return errors.Wrapf(images.ErrInvalidArgument, "negative radius %d", radius)
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dst.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if dst.Width < src.Width || dst.Height < src.Height {
		return errors.Wrapf(images.ErrInvalidArgument, "destination %dx%d smaller than source %dx%d",
			dst.Width, dst.Height, src.Width, src.Height)
	}
	return nil
}

// horizontalRows runs the horizontal pass over source rows [y0, y1).
func horizontalRows[T images.Sample](src, dst *images.Gray[T], radius, y0, y1 int) {
	switch s := any(src).(type) {
	case *images.Gray[uint8]:
		horizontal(s, any(dst).(*images.Gray[uint8]), radius, y0, y1, roundedMean[uint8](radius))
	case *images.Gray[int16]:
		horizontal(s, any(dst).(*images.Gray[int16]), radius, y0, y1, roundedMean[int16](radius))
	case *images.Gray[float32]:
		horizontal(s, any(dst).(*images.Gray[float32]), radius, y0, y1, floatMean[float32](radius))
	case *images.Gray[float64]:
		horizontal(s, any(dst).(*images.Gray[float64]), radius, y0, y1, floatMean[float64](radius))
	}
}

// verticalRows runs the vertical pass producing destination rows [y0, y1),
// which must lie inside [radius, height-radius).
func verticalRows[T images.Sample](src, dst *images.Gray[T], radius, y0, y1 int) {
	switch s := any(src).(type) {
	case *images.Gray[uint8]:
		vertical(s, any(dst).(*images.Gray[uint8]), radius, y0, y1, roundedMean[uint8](radius))
	case *images.Gray[int16]:
		vertical(s, any(dst).(*images.Gray[int16]), radius, y0, y1, roundedMean[int16](radius))
	case *images.Gray[float32]:
		vertical(s, any(dst).(*images.Gray[float32]), radius, y0, y1, floatMean[float32](radius))
	case *images.Gray[float64]:
		vertical(s, any(dst).(*images.Gray[float64]), radius, y0, y1, floatMean[float64](radius))
	}
}

// roundedMean divides an integer window sum with round-half-up semantics.
// Division truncates toward zero, so negative sums are not rounded
// symmetrically.
func roundedMean[T uint8 | int16](radius int) func(int64) T {
	divisor := int64(2*radius + 1)
	half := divisor / 2
	return func(total int64) T {
		return T((total + half) / divisor)
	}
}

func floatMean[T float32 | float64](radius int) func(T) T {
	divisor := T(2*radius + 1)
	return func(total T) T {
		return total / divisor
	}
}

func horizontal[T images.Sample, A accumulator](src, dst *images.Gray[T], radius, y0, y1 int, mean func(A) T) {
	kernelWidth := 2*radius + 1

	for y := y0; y < y1; y++ {
		indexIn := src.StartIndex + src.Stride*y
		indexOut := dst.StartIndex + dst.Stride*y + radius

		var total A
		indexEnd := indexIn + kernelWidth
		for ; indexIn < indexEnd; indexIn++ {
			total += A(src.Data[indexIn])
		}
		dst.Data[indexOut] = mean(total)
		indexOut++

		indexEnd = indexIn + src.Width - kernelWidth
		for ; indexIn < indexEnd; indexIn++ {
			total -= A(src.Data[indexIn-kernelWidth])
			total += A(src.Data[indexIn])
			dst.Data[indexOut] = mean(total)
			indexOut++
		}
	}
}

func vertical[T images.Sample, A accumulator](src, dst *images.Gray[T], radius, y0, y1 int, mean func(A) T) {
	if y0 >= y1 {
		return
	}
	kernelWidth := 2*radius + 1
	backStep := kernelWidth * src.Stride
	totals := make([]A, src.Width)

	// Seed every column with the window ending at row y0+radius.
	first := src.StartIndex + (y0-radius)*src.Stride
	for x := 0; x < src.Width; x++ {
		indexIn := first + x
		indexEnd := indexIn + backStep
		var total A
		for ; indexIn < indexEnd; indexIn += src.Stride {
			total += A(src.Data[indexIn])
		}
		totals[x] = total
		dst.Data[dst.StartIndex+y0*dst.Stride+x] = mean(total)
	}

	// Walk whole rows so reads and writes stay sequential in memory.
	for y := y0 + 1; y < y1; y++ {
		indexIn := src.StartIndex + (y+radius)*src.Stride
		indexOut := dst.StartIndex + y*dst.Stride
		for x := 0; x < src.Width; x++ {
			total := totals[x] - A(src.Data[indexIn-backStep])
			total += A(src.Data[indexIn])
			totals[x] = total
			dst.Data[indexOut] = mean(total)
			indexIn++
			indexOut++
		}
	}
}
