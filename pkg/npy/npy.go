// Package npy writes NumPy .npy version 1.0 array files.
//
// Arrays are float32, C order, little-endian ("<f4"), matching what the
// downstream training code loads with numpy.load. An optional
// zstd-compressed variant wraps the identical byte stream.
package npy

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

var magic = []byte{0x93, 'N', 'U', 'M', 'P', 'Y', 0x01, 0x00}

// CompressedExt is appended to file names written with compression.
const CompressedExt = ".zst"

// Write writes data with the given shape as a .npy v1.0 stream.
// len(data) must equal the product of shape.
func Write(w io.Writer, data []float32, shape []int) error {
	n := 1
	for _, d := range shape {
		n *= d
	}
	if n != len(data) {
		return fmt.Errorf("shape %v holds %d elements, data has %d", shape, n, len(data))
	}

	if _, err := w.Write(magic); err != nil {
		return fmt.Errorf("writing magic: %w", err)
	}

	header := headerFor(shape)
	if len(header) > math.MaxUint16 {
		return fmt.Errorf("header of %d bytes exceeds the v1.0 limit", len(header))
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(header))); err != nil {
		return fmt.Errorf("writing header length: %w", err)
	}
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	return nil
}

// WriteFile writes the array to path, appending ".zst" and wrapping the
// stream in a zstd frame when compress is true.
func WriteFile(path string, data []float32, shape []int, compress bool) (string, error) {
	if compress {
		path += CompressedExt
	}

	f, err := os.Create(path) // #nosec G304 -- output paths come from config
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	var w io.Writer = bw
	var zw *zstd.Encoder
	if compress {
		zw, err = zstd.NewWriter(bw)
		if err != nil {
			return "", fmt.Errorf("creating zstd writer: %w", err)
		}
		w = zw
	}

	if err := Write(w, data, shape); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return "", fmt.Errorf("closing zstd frame: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return "", fmt.Errorf("flushing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// headerFor builds the header dictionary, space-padded so the total
// header block (magic + length + dict + newline) is 64-byte aligned.
func headerFor(shape []int) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprintf("%d", d)
	}
	shapeStr := strings.Join(dims, ", ")
	if len(shape) == 1 {
		shapeStr += ","
	}
	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%s), }", shapeStr)

	// magic (8) + header length (2) + dict + '\n'
	total := len(magic) + 2 + len(header) + 1
	if pad := total % 64; pad != 0 {
		header += strings.Repeat(" ", 64-pad)
	}
	return header + "\n"
}
