package kernels

import (
	"math/rand"
	"testing"

	"github.com/nvr-ai/go-imgproc/images"
	"github.com/nvr-ai/go-imgproc/images/border"
)

func BenchmarkMeanHorizontal_1080p_r7(b *testing.B) {
	src := randomImage[uint8](rand.New(rand.NewSource(1)), 1920, 1080)
	dst := images.NewGray[uint8](1920, 1080)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = ConvolveMeanHorizontal(src, dst, 7)
	}
}

func BenchmarkMeanVertical_1080p_r7(b *testing.B) {
	src := randomImage[uint8](rand.New(rand.NewSource(1)), 1920, 1080)
	dst := images.NewGray[uint8](1920, 1080)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = ConvolveMeanVertical(src, dst, 7)
	}
}

func BenchmarkBoxBlur_640_r3(b *testing.B) {
	src := randomImage[float32](rand.New(rand.NewSource(1)), 640, 640)
	dst := images.NewGray[float32](640, 640)
	opt := Options{Radius: 3, Pool: &Pool{}}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = BoxBlur(src, dst, opt)
	}
}

func BenchmarkBoxBlurParallel_1080p_r7(b *testing.B) {
	src := randomImage[uint8](rand.New(rand.NewSource(1)), 1920, 1080)
	dst := images.NewGray[uint8](1920, 1080)
	opt := Options{Radius: 7, Edge: border.ModeExtend, Pool: &Pool{}, Parallel: true}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = BoxBlur(src, dst, opt)
	}
}

// Brute force reference for comparison with the sliding-window passes.
func BenchmarkBruteBoxBlur_640_r3(b *testing.B) {
	src := randomImage[uint8](rand.New(rand.NewSource(1)), 640, 640)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = bruteBoxBlur(src, 3, border.ModeExtend)
	}
}
