package distort

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imgproc/images"
)

// MultiBand applies a single-band engine to every band of a planar image.
type MultiBand[In images.Sample] struct {
	single Engine[In]
}

// NewMultiBand wraps single so it can process planar images band by band.
// A cached engine keeps its map across bands, since they share one geometry.
func NewMultiBand[In images.Sample](single Engine[In]) (*MultiBand[In], error) {
	if single == nil {
		return nil, errors.Wrap(images.ErrInvalidArgument, "nil engine")
	}
	return &MultiBand[In]{single: single}, nil
}

// OutputType returns the sample type of destination bands.
func (m *MultiBand[In]) OutputType() images.SampleType {
	return m.single.OutputType()
}

// Apply remaps src band i into dst band i.
//
// Band counts must match and every band must be valid with the engine's
// output type; all of this is checked before any band is written, so an
// error never leaves dst partially distorted.
func (m *MultiBand[In]) Apply(src *images.Planar[In], dst images.BandSet, t Transform) error {
	if t == nil {
		return errors.Wrap(images.ErrInvalidArgument, "nil transform")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if dst == nil {
		return errors.Wrap(images.ErrInvalidArgument, "nil destination")
	}
	if err := images.ValidateBands(dst); err != nil {
		return errors.Wrap(err, "destination")
	}
	if src.NumBands() != dst.NumBands() {
		return errors.Wrapf(images.ErrInvalidArgument, "source has %d bands, destination has %d",
			src.NumBands(), dst.NumBands())
	}
	want := m.single.OutputType()
	for i := 0; i < dst.NumBands(); i++ {
		if got := dst.RasterBand(i).SampleType(); got != want {
			return errors.Wrapf(images.ErrInvalidArgument, "destination band %d holds %v samples, engine writes %v",
				i, got, want)
		}
	}

	for i, band := range src.Bands {
		if err := m.single.Apply(band, dst.RasterBand(i), t); err != nil {
			return errors.Wrapf(err, "band %d", i)
		}
	}
	return nil
}
