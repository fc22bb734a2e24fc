package matio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-imgproc/images"
)

func checkMatRoundTrip[T images.Sample](t *testing.T) {
	src := &images.Gray[T]{Data: make([]T, 2+5*3), Width: 4, Height: 3, Stride: 5, StartIndex: 2}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, T(y*4+x))
		}
	}

	mat, err := ToMat(src)
	require.NoError(t, err)
	defer mat.Close()
	assert.Equal(t, MatType[T](), mat.Type())
	assert.Equal(t, 4, mat.Cols())
	assert.Equal(t, 3, mat.Rows())

	back, err := FromMat[T](mat)
	require.NoError(t, err)
	assert.Equal(t, src.Clone().Data, back.Data)
}

func TestMatRoundTrip(t *testing.T) {
	t.Run("U8", checkMatRoundTrip[uint8])
	t.Run("S16", checkMatRoundTrip[int16])
	t.Run("F32", checkMatRoundTrip[float32])
	t.Run("F64", checkMatRoundTrip[float64])
}

func TestFromMatErrors(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	_, err := FromMat[uint8](empty)
	assert.ErrorIs(t, err, images.ErrInvalidArgument)

	mat := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV32FC1)
	defer mat.Close()
	_, err = FromMat[uint8](mat)
	assert.ErrorIs(t, err, images.ErrUnsupportedType)
}

func TestToMatEmpty(t *testing.T) {
	mat, err := ToMat(images.NewGray[uint8](0, 0))
	defer mat.Close()
	assert.ErrorIs(t, err, images.ErrInvalidArgument)
}
