// Package matio copies single-band images to and from OpenCV Mats.
package matio

import (
	"unsafe"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-imgproc/images"
)

// MatType returns the single-channel OpenCV type matching the sample type T.
func MatType[T images.Sample]() gocv.MatType {
	switch images.TypeOf[T]() {
	case images.TypeU8:
		return gocv.MatTypeCV8UC1
	case images.TypeS16:
		return gocv.MatTypeCV16SC1
	case images.TypeF32:
		return gocv.MatTypeCV32FC1
	default:
		return gocv.MatTypeCV64FC1
	}
}

// FromMat copies a continuous single-channel Mat into a new image.
//
// Arguments:
// - mat: The source Mat. Its type must match T (e.g. CV_8UC1 for uint8).
//
// Returns:
// - *images.Gray[T]: A tightly packed copy owned by Go.
// - error: images.ErrUnsupportedType on a type mismatch,
// images.ErrInvalidArgument for an empty or non-continuous Mat.
func FromMat[T images.Sample](mat gocv.Mat) (*images.Gray[T], error) {
	if mat.Empty() {
		return nil, errors.Wrap(images.ErrInvalidArgument, "empty mat")
	}
	if want := MatType[T](); mat.Type() != want {
		return nil, errors.Wrapf(images.ErrUnsupportedType, "mat type %v, want %v", mat.Type(), want)
	}
	if !mat.IsContinuous() {
		return nil, errors.Wrapf(images.ErrInvalidArgument, "mat %dx%d is not continuous", mat.Cols(), mat.Rows())
	}

	data, err := matData[T](mat)
	if err != nil {
		return nil, errors.Wrap(err, "failed to access mat data")
	}

	out := images.NewGray[T](mat.Cols(), mat.Rows())
	copy(out.Data, data)
	return out, nil
}

// ToMat copies the image into a new single-channel Mat. The caller must Close
// the returned Mat.
func ToMat[T images.Sample](g *images.Gray[T]) (gocv.Mat, error) {
	if err := g.Validate(); err != nil {
		return gocv.NewMat(), err
	}
	if g.Width == 0 || g.Height == 0 {
		return gocv.NewMat(), errors.Wrapf(images.ErrInvalidArgument, "empty image %dx%d", g.Width, g.Height)
	}

	packed := g
	if g.Stride != g.Width || g.StartIndex != 0 {
		packed = g.Clone()
	}
	n := g.Width * g.Height
	size := int(unsafe.Sizeof(packed.Data[0]))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&packed.Data[0])), n*size)

	view, err := gocv.NewMatFromBytes(g.Height, g.Width, MatType[T](), raw)
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "failed to create mat")
	}
	defer view.Close()

	// Detach from Go memory.
	return view.Clone(), nil
}

func matData[T images.Sample](mat gocv.Mat) ([]T, error) {
	var (
		data any
		err  error
	)
	switch images.TypeOf[T]() {
	case images.TypeU8:
		data, err = mat.DataPtrUint8()
	case images.TypeS16:
		data, err = mat.DataPtrInt16()
	case images.TypeF32:
		data, err = mat.DataPtrFloat32()
	default:
		data, err = mat.DataPtrFloat64()
	}
	if err != nil {
		return nil, err
	}
	return data.([]T), nil
}
