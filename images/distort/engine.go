// Package distort remaps single-band images through a coordinate transform:
// for every destination pixel the transform yields a source coordinate, which
// is sampled with an interpolator or, outside the source, resolved with an
// optional border policy.
package distort

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imgproc/images"
	"github.com/nvr-ai/go-imgproc/images/border"
	"github.com/nvr-ai/go-imgproc/images/interpolate"
	"github.com/nvr-ai/go-imgproc/internal/logger"
)

// Engine remaps a source image of sample type In into a destination whose
// sample type was fixed when the engine was created.
type Engine[In images.Sample] interface {
	// Apply writes every destination pixel whose source coordinate can be
	// sampled or resolved by the border policy. Pixels that map outside the
	// source with no border policy are left untouched. All arguments are
	// validated before the first write.
	Apply(src *images.Gray[In], dst images.Raster, t Transform) error
	// OutputType returns the sample type of destinations the engine accepts.
	OutputType() images.SampleType
}

// New returns a per-pixel distortion engine writing samples of type out.
//
// Arguments:
// - interp: Samples the source at sub-pixel coordinates. Required.
// - policy: Resolves coordinates outside the source. nil leaves such
// destination pixels untouched.
// - out: The destination sample type.
//
// Returns:
// - Engine[In]: The configured engine.
// - error: ErrUnsupportedType for an output type outside U8, S16, F32 and F64;
// ErrInvalidArgument for a nil interpolator.
func New[In images.Sample](interp interpolate.Interpolator[In], policy border.Policy[In], out images.SampleType) (Engine[In], error) {
	if interp == nil {
		return nil, errors.Wrap(images.ErrInvalidArgument, "nil interpolator")
	}
	var e Engine[In]
	switch out {
	case images.TypeU8:
		e = &perPixel[In, uint8]{interp: interp, policy: policy}
	case images.TypeS16:
		e = &perPixel[In, int16]{interp: interp, policy: policy}
	case images.TypeF32:
		e = &perPixel[In, float32]{interp: interp, policy: policy}
	case images.TypeF64:
		e = &perPixel[In, float64]{interp: interp, policy: policy}
	default:
		return nil, errors.Wrapf(images.ErrUnsupportedType, "output type %v not supported", out)
	}
	logger.L().Debug("distort: engine created",
		"input", images.TypeOf[In](), "output", out, "border", policy != nil, "cached", false)
	return e, nil
}

// perPixel evaluates the transform for every destination pixel on every call.
type perPixel[In, Out images.Sample] struct {
	interp interpolate.Interpolator[In]
	policy border.Policy[In]
}

// OutputType implements Engine.
func (e *perPixel[In, Out]) OutputType() images.SampleType {
	return images.TypeOf[Out]()
}

// Apply implements Engine.
func (e *perPixel[In, Out]) Apply(src *images.Gray[In], dst images.Raster, t Transform) error {
	out, err := prepare[In, Out](src, dst, t)
	if err != nil {
		return err
	}

	for y := 0; y < out.Height; y++ {
		indexOut := out.StartIndex + y*out.Stride
		for x := 0; x < out.Width; x++ {
			sx, sy := t.Compute(x, y)
			if v, ok := e.sample(src, sx, sy); ok {
				out.Data[indexOut+x] = images.Narrow[Out](v)
			}
		}
	}
	return nil
}

func (e *perPixel[In, Out]) sample(src *images.Gray[In], x, y float32) (float64, bool) {
	if e.interp.Inside(src, x, y) {
		return e.interp.Sample(src, x, y), true
	}
	if e.policy == nil {
		return 0, false
	}
	return e.policy.Resolve(src, x, y)
}

// prepare validates the arguments of Apply and resolves the typed destination.
func prepare[In, Out images.Sample](src *images.Gray[In], dst images.Raster, t Transform) (*images.Gray[Out], error) {
	if t == nil {
		return nil, errors.Wrap(images.ErrInvalidArgument, "nil transform")
	}
	if err := src.Validate(); err != nil {
		return nil, errors.Wrap(err, "source")
	}
	if dst == nil {
		return nil, errors.Wrap(images.ErrInvalidArgument, "nil destination")
	}
	out, ok := dst.(*images.Gray[Out])
	if !ok {
		return nil, errors.Wrapf(images.ErrInvalidArgument, "destination holds %v samples, engine writes %v",
			dst.SampleType(), images.TypeOf[Out]())
	}
	if err := out.Validate(); err != nil {
		return nil, errors.Wrap(err, "destination")
	}
	return out, nil
}
