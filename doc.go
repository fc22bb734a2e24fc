// Package imgproc is the root of a set of pixel-level image kernels:
// separable box-mean filters (images/kernels) and a geometric distortion
// engine with an optional cached variant (images/distort), both operating on
// strided single-band rasters of 8/16-bit integer or 32/64-bit float samples
// (images).
//
// The library is silent by default. Install a logger to see diagnostics:
//
//	imgproc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
package imgproc
