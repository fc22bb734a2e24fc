package kernels

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imgproc/images"
	"github.com/nvr-ai/go-imgproc/images/border"
	"github.com/nvr-ai/go-imgproc/internal/logger"
)

// Options configures BoxBlur.
type Options struct {
	Radius   int         // Blur radius (window size = 2*Radius + 1). Must be >= 0.
	Edge     border.Mode // Edge sampling mode. ModeNone writes only the valid region.
	Pool     *Pool       // Optional buffer pool for the intermediate image.
	Parallel bool        // Split rows across goroutines (good for 1080p+).
}

// DefaultOptions returns a 3x3 valid-region blur without pooling or
// parallelism.
func DefaultOptions() Options {
	return Options{Radius: 1, Edge: border.ModeNone}
}

// Pool lets callers reuse intermediate images to reduce GC pressure at video
// frame rates. The zero value is ready to use; a nil *Pool allocates on every
// call.
type Pool struct {
	images sync.Pool
}

func getGray[T images.Sample](p *Pool, width, height int) *images.Gray[T] {
	if p == nil {
		return images.NewGray[T](width, height)
	}
	if v := p.images.Get(); v != nil {
		if img, ok := v.(*images.Gray[T]); ok && img.Width == width && img.Height == height {
			return img
		}
	}
	return images.NewGray[T](width, height)
}

func putGray[T images.Sample](p *Pool, img *images.Gray[T]) {
	if p == nil || img == nil {
		return
	}
	// The next writer fully overwrites the region it reads back.
	p.images.Put(img)
}

// BoxBlur applies a separable box-mean filter: a horizontal pass into an
// intermediate image followed by a vertical pass into dst.
//
// With opts.Edge == border.ModeNone only the interior [r, w-r) x [r, h-r) of
// dst is written, matching ConvolveMeanHorizontal followed by
// ConvolveMeanVertical. Any other mode writes every pixel; window samples that
// fall outside the image are fetched through opts.Edge.Index.
//
// Performance: O(W*H) per pass, independent of Radius (excluding edge pixels,
// which are summed directly).
//
// Arguments:
// - src: The image to blur.
// - dst: Receives the result. Must be at least as large as src.
// - opts: Radius, edge handling, pooling and parallelism.
//
// Returns:
// - error: ErrInvalidArgument for a negative radius or malformed geometry.
func BoxBlur[T images.Sample](src, dst *images.Gray[T], opts Options) error {
	if err := checkMean(src, dst, opts.Radius); err != nil {
		return err
	}
	switch opts.Edge {
	case border.ModeNone, border.ModeExtend, border.ModeReflect, border.ModeWrap:
	default:
		return errors.Wrapf(images.ErrInvalidArgument, "unknown edge mode %v", opts.Edge)
	}

	r := opts.Radius
	w, h := src.Width, src.Height
	if w == 0 || h == 0 {
		return nil
	}

	tmp := getGray[T](opts.Pool, w, h)
	defer putGray(opts.Pool, tmp)

	rows := func(n int, fn func(start, end int)) {
		if opts.Parallel {
			images.Parallel(n, fn)
			return
		}
		fn(0, n)
	}

	logger.L().Debug("kernels: box blur",
		"type", images.TypeOf[T](), "width", w, "height", h,
		"radius", r, "edge", opts.Edge, "parallel", opts.Parallel)

	if opts.Edge == border.ModeNone {
		// Without edge handling only columns [r, w-r) of tmp are defined, so the
		// vertical pass runs on that strip.
		if 2*r+1 > w || 2*r+1 > h {
			return nil
		}
		rows(h, func(start, end int) {
			horizontalRows(src, tmp, r, start, end)
		})
		strip, _ := tmp.SubImage(r, 0, w-r, h)
		out, _ := dst.SubImage(r, 0, w-r, h)
		rows(h-2*r, func(start, end int) {
			verticalRows(strip, out, r, start+r, end+r)
		})
		return nil
	}

	rows(h, func(start, end int) {
		if 2*r+1 <= w {
			horizontalRows(src, tmp, r, start, end)
		}
		horizontalEdges(src, tmp, r, opts.Edge, start, end)
	})
	rows(h, func(start, end int) {
		lo, hi := start, end
		if lo < r {
			lo = r
		}
		if hi > h-r {
			hi = h - r
		}
		if lo < hi {
			verticalRows(tmp, dst, r, lo, hi)
		}
		verticalEdges(tmp, dst, r, opts.Edge, start, end)
	})
	return nil
}

// horizontalEdges writes the columns of rows [y0, y1) that the sliding window
// cannot reach, summing each window directly through mode.Index.
func horizontalEdges[T images.Sample](src, dst *images.Gray[T], radius int, mode border.Mode, y0, y1 int) {
	w := src.Width
	lo, hi := radius, w-radius
	if lo > hi {
		lo, hi = w, w
	}
	mean := edgeMean[T](radius)
	for y := y0; y < y1; y++ {
		row := src.Row(y)
		out := dst.Row(y)
		for x := 0; x < w; x++ {
			if x == lo {
				x = hi
				if x >= w {
					break
				}
			}
			var total float64
			for k := -radius; k <= radius; k++ {
				total += float64(row[mode.Index(x+k, w)])
			}
			out[x] = mean(total)
		}
	}
}

// verticalEdges writes the rows of [y0, y1) closer than radius to the top or
// bottom edge.
func verticalEdges[T images.Sample](src, dst *images.Gray[T], radius int, mode border.Mode, y0, y1 int) {
	h := src.Height
	mean := edgeMean[T](radius)
	for y := y0; y < y1; y++ {
		if y >= radius && y < h-radius {
			continue
		}
		out := dst.Row(y)
		for x := 0; x < src.Width; x++ {
			var total float64
			for k := -radius; k <= radius; k++ {
				total += float64(src.At(x, mode.Index(y+k, h)))
			}
			out[x] = mean(total)
		}
	}
}

// edgeMean applies the same rounding as the sliding passes to a directly
// summed window. Integer window sums are exact in float64.
func edgeMean[T images.Sample](radius int) func(float64) T {
	kernelWidth := 2*radius + 1
	switch images.TypeOf[T]() {
	case images.TypeU8, images.TypeS16:
		divisor := int64(kernelWidth)
		half := divisor / 2
		return func(total float64) T {
			return T((int64(total) + half) / divisor)
		}
	default:
		divisor := float64(kernelWidth)
		return func(total float64) T {
			return T(total / divisor)
		}
	}
}
