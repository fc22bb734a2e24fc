package border

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-imgproc/images"
)

func TestModeIndex(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		in   []int
		want []int
	}{
		{"extend", ModeExtend, []int{-3, -1, 0, 4, 5, 9}, []int{0, 0, 0, 4, 4, 4}},
		{"reflect", ModeReflect, []int{-2, -1, 0, 4, 5, 6}, []int{1, 0, 0, 4, 4, 3}},
		{"wrap", ModeWrap, []int{-6, -1, 0, 4, 5, 11}, []int{4, 4, 0, 4, 0, 1}},
		{"none", ModeNone, []int{-1, 0, 4, 5}, []int{-1, 0, 4, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, in := range tt.in {
				assert.Equal(t, tt.want[i], tt.mode.Index(in, 5), "index %d", in)
			}
		})
	}
}

func TestModeIndexReflectSinglePixel(t *testing.T) {
	for _, i := range []int{-5, -1, 0, 1, 7} {
		assert.Equal(t, 0, ModeReflect.Index(i, 1))
	}
}

// bounce folds i one reflection at a time.
func bounce(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		} else {
			i = 2*n - i - 1
		}
	}
	return i
}

func TestModeIndexReflectMatchesBounce(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		for i := -5 * n; i <= 6*n; i++ {
			assert.Equal(t, bounce(i, n), ModeReflect.Index(i, n), "i=%d n=%d", i, n)
		}
	}
}

func TestModeIndexFarOutside(t *testing.T) {
	far := []int{1 << 40, -(1 << 40), math.MaxInt64, math.MinInt64 + 1}
	for _, m := range []Mode{ModeExtend, ModeReflect, ModeWrap} {
		for _, i := range far {
			got := m.Index(i, 5)
			assert.True(t, got >= 0 && got < 5, "%v index %d -> %d", m, i, got)
		}
	}
	// 2^40 is a multiple of the period 10.
	assert.Equal(t, 0, ModeReflect.Index(1<<40, 5))
	assert.Equal(t, 0, ModeReflect.Index(-(1 << 40), 5))
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeNone, ModeExtend, ModeReflect, ModeWrap} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := ParseMode("clamp")
	require.NoError(t, err)
	assert.Equal(t, ModeExtend, got)

	_, err = ParseMode("bogus")
	assert.ErrorIs(t, err, images.ErrInvalidArgument)
}

func TestValueResolve(t *testing.T) {
	img := images.NewGray[int16](3, 3)
	p := NewValue[int16](-7)

	v, ok := p.Resolve(img, -100, 42.5)
	assert.True(t, ok)
	assert.Equal(t, -7.0, v)
	assert.Equal(t, -7.0, p.Constant())
}

func TestExtensionResolve(t *testing.T) {
	img := images.NewGray[uint8](3, 2)
	copy(img.Data, []uint8{
		1, 2, 3,
		4, 5, 6,
	})

	tests := []struct {
		mode Mode
		x, y float32
		want float64
	}{
		{ModeExtend, -4, -4, 1},
		{ModeExtend, 10, 0.2, 3},
		{ModeExtend, 1.6, 9, 6},
		{ModeWrap, 3, 0, 1},
		{ModeWrap, -1, 1, 6},
		{ModeReflect, -1, 0, 1},
		{ModeReflect, 3, 2, 6},
	}
	for _, tt := range tests {
		v, ok := NewExtension[uint8](tt.mode).Resolve(img, tt.x, tt.y)
		require.True(t, ok)
		assert.Equal(t, tt.want, v, "%v at (%v, %v)", tt.mode, tt.x, tt.y)
	}

	_, ok := NewExtension[uint8](ModeNone).Resolve(img, -1, -1)
	assert.False(t, ok)
}

func TestExtensionResolveFarAndNonFinite(t *testing.T) {
	img := images.NewGray[uint8](3, 2)
	copy(img.Data, []uint8{1, 2, 3, 4, 5, 6})
	inf := math32.Inf(1)

	for _, m := range []Mode{ModeExtend, ModeReflect, ModeWrap} {
		e := NewExtension[uint8](m)
		for _, p := range [][2]float32{{1e12, 0}, {-1e12, 1}, {0, 3e38}, {-3e38, -3e38}} {
			v, ok := e.Resolve(img, p[0], p[1])
			require.True(t, ok, "%v at %v", m, p)
			assert.True(t, v >= 1 && v <= 6, "%v at %v gave %v", m, p, v)
		}
		for _, p := range [][2]float32{{inf, 0}, {0, -inf}, {math32.NaN(), 0}} {
			_, ok := e.Resolve(img, p[0], p[1])
			assert.False(t, ok, "%v at %v", m, p)
		}
	}

	v, ok := NewExtension[uint8](ModeExtend).Resolve(img, 1e12, 0)
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestFor(t *testing.T) {
	assert.Nil(t, For[float32](ModeNone))
	assert.Equal(t, Extension[float32]{Mode: ModeWrap}, For[float32](ModeWrap))
}
