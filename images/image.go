package images

// Raster is a single-band image whose sample type is only known at run time.
// The distortion dispatcher accepts destinations through this interface and
// resolves the concrete *Gray[T] once per call.
type Raster interface {
	// SampleType returns the tag of the stored samples.
	SampleType() SampleType
	// Dims returns the width and height in pixels.
	Dims() (width, height int)
	// Validate checks the geometry against the backing store.
	Validate() error
}

// Gray is a rectangular single-band image laid out row by row inside a flat
// backing store. The image may be a window into a larger buffer: pixel (x, y)
// lives at Data[StartIndex + y*Stride + x].
//
// The caller owns Data. Kernels never reallocate or resize it, they only read
// and write inside the declared geometry.
type Gray[T Sample] struct {
	// Data is the backing store.
	Data []T
	// Width is the number of columns.
	Width int
	// Height is the number of rows.
	Height int
	// Stride is the distance in samples between the starts of two rows.
	Stride int
	// StartIndex is the index of pixel (0, 0) in Data.
	StartIndex int
}

// NewGray allocates a zeroed image with a tightly packed backing store.
func NewGray[T Sample](width, height int) *Gray[T] {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Gray[T]{
		Data:   make([]T, width*height),
		Width:  width,
		Height: height,
		Stride: width,
	}
}

// SampleType implements Raster.
func (g *Gray[T]) SampleType() SampleType {
	return TypeOf[T]()
}

// Dims implements Raster.
func (g *Gray[T]) Dims() (int, int) {
	return g.Width, g.Height
}

// Validate reports ErrInvalidArgument when the geometry is malformed or
// addresses samples outside Data.
func (g *Gray[T]) Validate() error {
	if g == nil {
		return invalidf("nil image")
	}
	if g.Width < 0 || g.Height < 0 {
		return invalidf("negative dimensions %dx%d", g.Width, g.Height)
	}
	if g.Stride < g.Width {
		return invalidf("stride %d < width %d", g.Stride, g.Width)
	}
	if g.StartIndex < 0 {
		return invalidf("negative start index %d", g.StartIndex)
	}
	if g.Width == 0 || g.Height == 0 {
		return nil
	}
	if last := g.StartIndex + (g.Height-1)*g.Stride + g.Width; last > len(g.Data) {
		return invalidf("geometry %dx%d stride %d start %d needs %d samples, have %d",
			g.Width, g.Height, g.Stride, g.StartIndex, last, len(g.Data))
	}
	return nil
}

// Index returns the position of pixel (x, y) in Data.
func (g *Gray[T]) Index(x, y int) int {
	return g.StartIndex + y*g.Stride + x
}

// InBounds reports whether (x, y) addresses a pixel of the image.
func (g *Gray[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// At returns the sample at (x, y). The coordinate must be in bounds.
func (g *Gray[T]) At(x, y int) T {
	return g.Data[g.StartIndex+y*g.Stride+x]
}

// Set stores v at (x, y). The coordinate must be in bounds.
func (g *Gray[T]) Set(x, y int, v T) {
	g.Data[g.StartIndex+y*g.Stride+x] = v
}

// Row returns the samples of row y as a slice aliasing Data.
func (g *Gray[T]) Row(y int) []T {
	i := g.StartIndex + y*g.Stride
	return g.Data[i : i+g.Width : i+g.Width]
}

// Fill sets every pixel inside the geometry to v.
func (g *Gray[T]) Fill(v T) {
	for y := 0; y < g.Height; y++ {
		row := g.Row(y)
		for x := range row {
			row[x] = v
		}
	}
}

// Clone returns a tightly packed copy of the image.
func (g *Gray[T]) Clone() *Gray[T] {
	out := NewGray[T](g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		copy(out.Row(y), g.Row(y))
	}
	return out
}

// SubImage returns a view of the rectangle [x0, x1) x [y0, y1) sharing the
// backing store.
func (g *Gray[T]) SubImage(x0, y0, x1, y1 int) (*Gray[T], error) {
	if x0 < 0 || y0 < 0 || x1 > g.Width || y1 > g.Height || x0 > x1 || y0 > y1 {
		return nil, invalidf("sub-image (%d,%d)-(%d,%d) outside %dx%d", x0, y0, x1, y1, g.Width, g.Height)
	}
	return &Gray[T]{
		Data:       g.Data,
		Width:      x1 - x0,
		Height:     y1 - y0,
		Stride:     g.Stride,
		StartIndex: g.StartIndex + y0*g.Stride + x0,
	}, nil
}

// SameShape reports whether a and b have identical width and height.
func SameShape(a, b Raster) bool {
	aw, ah := a.Dims()
	bw, bh := b.Dims()
	return aw == bw && ah == bh
}
