package distort

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imgproc/images"
	"github.com/nvr-ai/go-imgproc/images/border"
	"github.com/nvr-ai/go-imgproc/images/interpolate"
	"github.com/nvr-ai/go-imgproc/internal/logger"
)

// NewCached returns a distortion engine that evaluates the transform once per
// destination pixel and reuses the resulting map while the destination
// geometry, source geometry and transform stay the same. Arguments and errors
// match New.
//
// The engine owns its map: one instance must not be shared across goroutines
// without external synchronization.
func NewCached[In images.Sample](interp interpolate.Interpolator[In], policy border.Policy[In], out images.SampleType) (Engine[In], error) {
	if interp == nil {
		return nil, errors.Wrap(images.ErrInvalidArgument, "nil interpolator")
	}
	var e Engine[In]
	switch out {
	case images.TypeU8:
		e = newCached[In, uint8](interp, policy)
	case images.TypeS16:
		e = newCached[In, int16](interp, policy)
	case images.TypeF32:
		e = newCached[In, float32](interp, policy)
	case images.TypeF64:
		e = newCached[In, float64](interp, policy)
	default:
		return nil, errors.Wrapf(images.ErrUnsupportedType, "output type %v not supported", out)
	}
	logger.L().Debug("distort: engine created",
		"input", images.TypeOf[In](), "output", out, "border", policy != nil, "cached", true)
	return e, nil
}

type pixelState uint8

const (
	// stateSkip: outside, nothing to write.
	stateSkip pixelState = iota
	// stateInside: interpolate at (x, y).
	stateInside
	// stateBorder: outside, ask the policy at apply time.
	stateBorder
	// stateConstant: outside, write the policy's constant.
	stateConstant
)

type mapEntry struct {
	x, y  float32
	state pixelState
}

// mapKey is everything a distortion map depends on.
type mapKey struct {
	dstWidth, dstHeight int
	srcWidth, srcHeight int
	transform           transformKey
}

func (k mapKey) equal(o mapKey) bool {
	return k.dstWidth == o.dstWidth && k.dstHeight == o.dstHeight &&
		k.srcWidth == o.srcWidth && k.srcHeight == o.srcHeight &&
		k.transform.equal(o.transform)
}

// distortionMap holds one entry per destination pixel, row-major with no
// padding.
type distortionMap struct {
	key     mapKey
	valid   bool
	entries []mapEntry
}

type cached[In, Out images.Sample] struct {
	interp interpolate.Interpolator[In]
	policy border.Policy[In]

	// constant is set when policy implements border.Constant.
	constant    Out
	hasConstant bool

	m distortionMap
}

func newCached[In, Out images.Sample](interp interpolate.Interpolator[In], policy border.Policy[In]) *cached[In, Out] {
	c := &cached[In, Out]{interp: interp, policy: policy}
	if k, ok := policy.(border.Constant); ok {
		c.constant = images.Narrow[Out](k.Constant())
		c.hasConstant = true
	}
	return c
}

// OutputType implements Engine.
func (c *cached[In, Out]) OutputType() images.SampleType {
	return images.TypeOf[Out]()
}

// Apply implements Engine.
func (c *cached[In, Out]) Apply(src *images.Gray[In], dst images.Raster, t Transform) error {
	out, err := prepare[In, Out](src, dst, t)
	if err != nil {
		return err
	}

	tk, comparable := keyOf(t)
	key := mapKey{
		dstWidth:  out.Width,
		dstHeight: out.Height,
		srcWidth:  src.Width,
		srcHeight: src.Height,
		transform: tk,
	}
	if !comparable || !c.m.valid || !c.m.key.equal(key) {
		c.rebuild(src, key, t)
		c.m.valid = comparable
	}

	entries := c.m.entries
	for y := 0; y < out.Height; y++ {
		indexOut := out.StartIndex + y*out.Stride
		row := entries[y*out.Width : (y+1)*out.Width]
		for x, e := range row {
			switch e.state {
			case stateInside:
				out.Data[indexOut+x] = images.Narrow[Out](c.interp.Sample(src, e.x, e.y))
			case stateConstant:
				out.Data[indexOut+x] = c.constant
			case stateBorder:
				if v, ok := c.policy.Resolve(src, e.x, e.y); ok {
					out.Data[indexOut+x] = images.Narrow[Out](v)
				}
			}
		}
	}
	return nil
}

// rebuild evaluates t for every destination pixel and classifies the result
// against the source geometry.
func (c *cached[In, Out]) rebuild(src *images.Gray[In], key mapKey, t Transform) {
	n := key.dstWidth * key.dstHeight
	if cap(c.m.entries) < n {
		c.m.entries = make([]mapEntry, n)
	}
	c.m.entries = c.m.entries[:n]
	c.m.key = key

	outside := stateSkip
	switch {
	case c.policy == nil:
	case c.hasConstant:
		outside = stateConstant
	default:
		outside = stateBorder
	}

	i := 0
	for y := 0; y < key.dstHeight; y++ {
		for x := 0; x < key.dstWidth; x++ {
			sx, sy := t.Compute(x, y)
			state := stateInside
			if !c.interp.Inside(src, sx, sy) {
				state = outside
			}
			c.m.entries[i] = mapEntry{x: sx, y: sy, state: state}
			i++
		}
	}

	logger.L().Debug("distort: rebuilt distortion map",
		"width", key.dstWidth, "height", key.dstHeight,
		"srcWidth", key.srcWidth, "srcHeight", key.srcHeight)
}
