// Package tensorio bridges planar images and gorgonia dense tensors laid
// out as CHW.
package tensorio

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-imgproc/images"
)

// TensorDtype returns the tensor element type matching the sample type T.
func TensorDtype[T images.Sample]() tensor.Dtype {
	switch images.TypeOf[T]() {
	case images.TypeU8:
		return tensor.Uint8
	case images.TypeS16:
		return tensor.Int16
	case images.TypeF32:
		return tensor.Float32
	default:
		return tensor.Float64
	}
}

// PlanarFromTensor views a CHW (or 1xCxHxW) tensor as a planar image without
// copying. Every band aliases the tensor's backing store through its
// StartIndex, so kernels applied to the bands write straight into the tensor.
//
// Arguments:
// - t: A dense, row-major tensor whose dtype matches T.
//
// Returns:
// - *images.Planar[T]: One band per channel.
// - error: images.ErrUnsupportedType on a dtype mismatch,
// images.ErrInvalidArgument for an unsupported shape or layout.
func PlanarFromTensor[T images.Sample](t *tensor.Dense) (*images.Planar[T], error) {
	if t == nil {
		return nil, errors.Wrap(images.ErrInvalidArgument, "nil tensor")
	}
	if want := TensorDtype[T](); t.Dtype() != want {
		return nil, errors.Wrapf(images.ErrUnsupportedType, "tensor dtype %v, want %v", t.Dtype(), want)
	}
	if t.IsView() || t.DataOrder().IsColMajor() {
		return nil, errors.Wrap(images.ErrInvalidArgument, "tensor must be a dense row-major array")
	}

	shape := t.Shape()
	switch {
	case shape.Dims() == 4 && shape[0] == 1:
		shape = shape[1:]
	case shape.Dims() != 3:
		return nil, errors.Wrapf(images.ErrInvalidArgument, "tensor shape %v, want (C, H, W) or (1, C, H, W)", t.Shape())
	}
	channels, height, width := shape[0], shape[1], shape[2]

	data, ok := t.Data().([]T)
	if !ok {
		return nil, errors.Wrapf(images.ErrUnsupportedType, "tensor backing %T", t.Data())
	}

	plane := height * width
	p := &images.Planar[T]{Bands: make([]*images.Gray[T], channels)}
	for c := range p.Bands {
		p.Bands[c] = &images.Gray[T]{
			Data:       data,
			Width:      width,
			Height:     height,
			Stride:     width,
			StartIndex: c * plane,
		}
	}
	return p, nil
}

// PlanarToTensor packs the bands of p into a new (C, H, W) tensor.
func PlanarToTensor[T images.Sample](p *images.Planar[T]) (*tensor.Dense, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	width, height := p.Dims()
	plane := width * height
	data := make([]T, plane*p.NumBands())
	for c, band := range p.Bands {
		for y := 0; y < height; y++ {
			copy(data[c*plane+y*width:], band.Row(y))
		}
	}
	return tensor.New(
		tensor.WithShape(p.NumBands(), height, width),
		tensor.WithBacking(data),
	), nil
}
