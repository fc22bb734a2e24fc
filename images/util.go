package images

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math"
)

// Checksum generates a deterministic digest of the pixels inside the image
// geometry. Padding between rows is ignored, so a view and its packed clone
// hash the same.
//
// Arguments:
// - img: The image to hash.
//
// Returns:
// - A hex-encoded MD5 checksum string.
//
// Example:
//
// ```go
//
//	sum := Checksum(dst)
//	fmt.Printf("output checksum: %s\n", sum)
//
// ```
func Checksum[T Sample](img *Gray[T]) string {
	if img == nil || img.Width == 0 || img.Height == 0 {
		return "empty"
	}

	hash := md5.New()
	var buf [8]byte
	for y := 0; y < img.Height; y++ {
		for _, v := range img.Row(y) {
			n := putSample(buf[:], v)
			hash.Write(buf[:n])
		}
	}
	return fmt.Sprintf("%x", hash.Sum(nil))
}

func putSample[T Sample](buf []byte, v T) int {
	switch s := any(v).(type) {
	case uint8:
		buf[0] = s
		return 1
	case int16:
		binary.LittleEndian.PutUint16(buf, uint16(s))
		return 2
	case float32:
		binary.LittleEndian.PutUint32(buf, math.Float32bits(s))
		return 4
	case float64:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(s))
		return 8
	}
	return 0
}
