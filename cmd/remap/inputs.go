package main

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Input is one image to process.
type Input struct {
	// Path is the path to the image file.
	Path string
	// Frame is the frame number parsed from names like "frame-12.png", or -1.
	Frame int
}

var supportedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true,
	".tif": true, ".tiff": true, ".webp": true,
}

// ListInputs resolves path to the images to process. A file is returned
// as-is; a directory yields every supported image in it, numbered frames
// first in frame order, then the rest by name.
//
// Arguments:
// - path: An image file or a directory of images.
//
// Returns:
// - []Input: The images to process.
// - error: Error if path cannot be read.
func ListInputs(path string) ([]Input, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []Input{{Path: path, Frame: frameNumber(filepath.Base(path))}}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var inputs []Input
	for _, entry := range entries {
		if entry.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		inputs = append(inputs, Input{
			Path:  filepath.Join(path, entry.Name()),
			Frame: frameNumber(entry.Name()),
		})
	}

	sort.SliceStable(inputs, func(i, j int) bool {
		a, b := inputs[i], inputs[j]
		if (a.Frame < 0) != (b.Frame < 0) {
			return a.Frame >= 0
		}
		if a.Frame != b.Frame {
			return a.Frame < b.Frame
		}
		return a.Path < b.Path
	})
	return inputs, nil
}

// frameNumber parses "frame-<n>.<ext>".
func frameNumber(name string) int {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if !strings.HasPrefix(base, "frame-") {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimPrefix(base, "frame-"))
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// OutputPath returns where the result for in is written. A single input goes
// to out; inputs from a directory go into the directory out, keeping their
// base name and taking the extension of ext.
func OutputPath(in Input, out string, batch bool, ext string) string {
	if !batch {
		return out
	}
	base := strings.TrimSuffix(filepath.Base(in.Path), filepath.Ext(in.Path))
	return filepath.Join(out, base+ext)
}
