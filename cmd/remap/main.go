// Command remap runs an image through the box blur and rotation kernels:
//
//	remap -in photo.jpg -out rotated.png -radius 2 -angle 15 -interp bicubic -edge reflect
//
// The input is decoded (JPEG, PNG, BMP, TIFF or WebP), optionally resized to
// -width with Lanczos3, split into RGBA planes, blurred, rotated around its
// centre and encoded by the extension of -out. When -in is a directory every
// image in it is processed in frame order and -out names the output
// directory.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	imgproc "github.com/nvr-ai/go-imgproc"
	"github.com/nvr-ai/go-imgproc/images"
	"github.com/nvr-ai/go-imgproc/images/border"
	"github.com/nvr-ai/go-imgproc/images/distort"
	"github.com/nvr-ai/go-imgproc/images/interpolate"
	"github.com/nvr-ai/go-imgproc/images/kernels"
)

const (
	// DefaultQuality is the lossy quality used for JPEG and WebP output.
	DefaultQuality = 90
)

// Config holds the parsed command line.
type Config struct {
	In      string
	Out     string
	Width   int
	Radius  int
	Angle   float64
	Interp  interpolate.Kind
	Edge    border.Mode
	Fill    float64
	Format  string
	Cached  bool
	Repeat  int
	Verbose bool
}

func main() {
	var (
		cfg    Config
		interp string
		edge   string
	)
	flag.StringVar(&cfg.In, "in", "", "Path to the input image or a directory of frames")
	flag.StringVar(&cfg.Out, "out", "remapped.png", "Path to the output image (.png, .jpg or .webp) or directory")
	flag.IntVar(&cfg.Width, "width", 0, "Resize the input to this width before processing (0 keeps the size)")
	flag.IntVar(&cfg.Radius, "radius", 1, "Box blur radius (0 disables the blur)")
	flag.Float64Var(&cfg.Angle, "angle", 0, "Rotation in degrees")
	flag.StringVar(&interp, "interp", "bilinear", "Interpolation: nearest, bilinear or bicubic")
	flag.StringVar(&edge, "edge", "none", "Edge handling: none, extend, reflect or wrap")
	flag.Float64Var(&cfg.Fill, "fill", -1, "Constant for pixels rotated in from outside (negative uses -edge)")
	flag.StringVar(&cfg.Format, "format", ".png", "Output extension when -in is a directory")
	flag.BoolVar(&cfg.Cached, "cached", true, "Reuse the distortion map across bands and repeats")
	flag.IntVar(&cfg.Repeat, "repeat", 1, "Number of times to run the rotation (timing)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Log kernel diagnostics")
	flag.Parse()

	if cfg.In == "" {
		log.Fatal("missing -in")
	}
	var err error
	if cfg.Interp, err = interpolate.ParseKind(interp); err != nil {
		log.Fatalf("Invalid -interp: %v", err)
	}
	if cfg.Edge, err = border.ParseMode(edge); err != nil {
		log.Fatalf("Invalid -edge: %v", err)
	}
	if !strings.HasPrefix(cfg.Format, ".") {
		cfg.Format = "." + cfg.Format
	}
	if cfg.Repeat < 1 {
		cfg.Repeat = 1
	}
	if cfg.Verbose {
		imgproc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(cfg); err != nil {
		log.Fatalf("remap failed: %v", err)
	}
}

func run(cfg Config) error {
	inputs, err := ListInputs(cfg.In)
	if err != nil {
		return err
	}
	info, err := os.Stat(cfg.In)
	if err != nil {
		return err
	}
	batch := info.IsDir()
	if batch {
		if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
			return err
		}
	}

	r, err := newRotator(cfg)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if err := process(in, OutputPath(in, cfg.Out, batch, cfg.Format), r, cfg); err != nil {
			return fmt.Errorf("%s: %w", in.Path, err)
		}
	}
	log.Printf("Processed %d image(s)", len(inputs))
	return nil
}

func process(in Input, outPath string, r *rotator, cfg Config) error {
	img, err := decode(in.Path)
	if err != nil {
		return err
	}
	if cfg.Width > 0 && cfg.Width != img.Bounds().Dx() {
		img = resize.Resize(uint(cfg.Width), 0, img, resize.Lanczos3)
	}

	planes := images.PlanarFromImage(img)
	w, h := planes.Dims()
	log.Printf("Loaded %s: %dx%d, %d bands", in.Path, w, h, planes.NumBands())

	if cfg.Radius > 0 {
		planes, err = blur(planes, cfg)
		if err != nil {
			return err
		}
	}

	out, err := r.rotate(planes)
	if err != nil {
		return err
	}
	for i, band := range out.Bands {
		log.Printf("Band %d checksum: %s", i, images.Checksum(band))
	}

	return encode(outPath, images.PlanarToImage(out))
}

func blur(src *images.Planar[uint8], cfg Config) (*images.Planar[uint8], error) {
	w, h := src.Dims()
	dst := images.NewPlanar[uint8](w, h, src.NumBands())
	if cfg.Edge == border.ModeNone {
		// The interior-only blur leaves a radius-wide frame; start from the
		// source so the frame keeps the original pixels.
		for i, band := range src.Bands {
			copy(dst.Bands[i].Data, band.Clone().Data)
		}
	}

	opts := kernels.Options{
		Radius:   cfg.Radius,
		Edge:     cfg.Edge,
		Pool:     &kernels.Pool{},
		Parallel: true,
	}
	for i, band := range src.Bands {
		if err := kernels.BoxBlur(band, dst.Bands[i], opts); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// rotator keeps one engine and transform for the whole run so a cached
// engine reuses its map across frames of the same size.
type rotator struct {
	engine    *distort.MultiBand[uint8]
	transform *distort.Affine
	angle     float32
	w, h      int
	cfg       Config
}

func newRotator(cfg Config) (*rotator, error) {
	interp, err := interpolate.New[uint8](cfg.Interp)
	if err != nil {
		return nil, err
	}
	policy := border.For[uint8](cfg.Edge)
	if cfg.Fill >= 0 {
		policy = border.NewValue[uint8](cfg.Fill)
	}

	newEngine := distort.New[uint8]
	if cfg.Cached {
		newEngine = distort.NewCached[uint8]
	}
	single, err := newEngine(interp, policy, images.TypeU8)
	if err != nil {
		return nil, err
	}
	engine, err := distort.NewMultiBand(single)
	if err != nil {
		return nil, err
	}
	return &rotator{
		engine: engine,
		angle:  float32(cfg.Angle) * math32.Pi / 180,
		w:      -1,
		h:      -1,
		cfg:    cfg,
	}, nil
}

func (r *rotator) rotate(src *images.Planar[uint8]) (*images.Planar[uint8], error) {
	w, h := src.Dims()
	if w != r.w || h != r.h {
		next := distort.NewRotation(r.angle, float32(w-1)/2, float32(h-1)/2)
		if r.transform == nil {
			r.transform = next
		} else {
			r.transform.Set(next.Coefficients())
		}
		r.w, r.h = w, h
	}

	// Pixels rotated in from outside stay transparent unless a border
	// policy fills them.
	dst := images.NewPlanar[uint8](w, h, src.NumBands())
	start := time.Now()
	for i := 0; i < r.cfg.Repeat; i++ {
		if err := r.engine.Apply(src, dst, r.transform); err != nil {
			return nil, err
		}
	}
	log.Printf("Rotated by %.1f° (%v, cached=%v) %d times in %v",
		r.cfg.Angle, r.cfg.Interp, r.cfg.Cached, r.cfg.Repeat, time.Since(start))
	return dst, nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return webp.Decode(f)
	}
	img, _, err := image.Decode(f)
	return img, err
}

func encode(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: DefaultQuality})
	case ".webp":
		err = webp.Encode(f, img, &webp.Options{Quality: DefaultQuality})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return err
	}
	log.Printf("Wrote %s", path)
	return f.Close()
}
