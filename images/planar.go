package images

// BandSet is a multi-band image whose sample type is only known at run time.
type BandSet interface {
	// NumBands returns the number of bands.
	NumBands() int
	// RasterBand returns band i.
	RasterBand(i int) Raster
}

// Planar is a multi-band image stored as independent single-band planes of
// identical geometry. Bands never interact; every kernel is applied band by
// band.
type Planar[T Sample] struct {
	// Bands holds one plane per channel.
	Bands []*Gray[T]
}

// NewPlanar allocates numBands zeroed planes of width x height.
func NewPlanar[T Sample](width, height, numBands int) *Planar[T] {
	p := &Planar[T]{Bands: make([]*Gray[T], numBands)}
	for i := range p.Bands {
		p.Bands[i] = NewGray[T](width, height)
	}
	return p
}

// NumBands implements BandSet. A nil image has no bands.
func (p *Planar[T]) NumBands() int {
	if p == nil {
		return 0
	}
	return len(p.Bands)
}

// Band returns plane i.
func (p *Planar[T]) Band(i int) *Gray[T] {
	return p.Bands[i]
}

// RasterBand implements BandSet.
func (p *Planar[T]) RasterBand(i int) Raster {
	return p.Bands[i]
}

// Dims returns the geometry shared by all bands, or zeros for an empty image.
func (p *Planar[T]) Dims() (int, int) {
	if p.NumBands() == 0 {
		return 0, 0
	}
	return p.Bands[0].Dims()
}

// Validate checks every band and that all bands share one geometry.
func (p *Planar[T]) Validate() error {
	if p == nil {
		return invalidf("nil planar image")
	}
	return ValidateBands(p)
}

// ValidateBands checks every band of b and that all bands share one geometry.
func ValidateBands(b BandSet) error {
	for i := 0; i < b.NumBands(); i++ {
		band := b.RasterBand(i)
		if band == nil {
			return invalidf("band %d is nil", i)
		}
		if err := band.Validate(); err != nil {
			return err
		}
		if i > 0 && !SameShape(band, b.RasterBand(0)) {
			w, h := band.Dims()
			w0, h0 := b.RasterBand(0).Dims()
			return invalidf("band %d is %dx%d, band 0 is %dx%d", i, w, h, w0, h0)
		}
	}
	return nil
}
