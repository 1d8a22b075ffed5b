// Package pngenc writes 8-bit RGBA images as PNG streams with a fixed,
// minimal layout: one IHDR, a single IDAT holding unfiltered scanlines, and
// IEND. It favours a predictable byte layout over compression ratio.
package pngenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"io"
)

// Signature is the fixed 8-byte header every PNG stream starts with.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ErrBufferSize is returned when a pixel buffer does not hold exactly
// width*height*4 bytes.
var ErrBufferSize = errors.New("pngenc: pixel buffer size does not match dimensions")

const (
	bitDepth      = 8
	colorTypeRGBA = 6
	bytesPerPixel = 4
	filterNone    = 0
)

// Encode writes pix, a tightly packed row-major RGBA buffer of the given
// dimensions, to w as a PNG stream. The buffer is validated before anything
// is written.
func Encode(w io.Writer, width, height int, pix []byte) error {
	data, err := Marshal(width, height, pix)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// EncodeImage writes img to w. The image must be tightly packed, that is
// its stride must equal four times its width.
func EncodeImage(w io.Writer, img *image.RGBA) error {
	b := img.Bounds()
	if img.Stride != b.Dx()*bytesPerPixel {
		return fmt.Errorf("%w: stride %d for width %d", ErrBufferSize, img.Stride, b.Dx())
	}
	return Encode(w, b.Dx(), b.Dy(), img.Pix[:b.Dx()*b.Dy()*bytesPerPixel])
}

// Marshal returns the complete PNG stream for pix.
func Marshal(width, height int, pix []byte) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrBufferSize, width, height)
	}
	if want := width * height * bytesPerPixel; len(pix) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrBufferSize, len(pix), want, width, height)
	}

	idat, err := compress(scanlines(width, height, pix))
	if err != nil {
		return nil, fmt.Errorf("compressing image data: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(Signature[:])
	writeChunk(&buf, "IHDR", header(width, height))
	writeChunk(&buf, "IDAT", idat)
	writeChunk(&buf, "IEND", nil)
	return buf.Bytes(), nil
}

// header builds the 13-byte IHDR payload.
func header(width, height int) []byte {
	h := make([]byte, 13)
	binary.BigEndian.PutUint32(h[0:4], uint32(width))
	binary.BigEndian.PutUint32(h[4:8], uint32(height))
	h[8] = bitDepth
	h[9] = colorTypeRGBA
	h[10] = 0 // compression method
	h[11] = 0 // filter method
	h[12] = 0 // interlace method
	return h
}

// scanlines prefixes every row of pix with the "none" filter byte.
func scanlines(width, height int, pix []byte) []byte {
	stride := width * bytesPerPixel
	raw := make([]byte, 0, height*(1+stride))
	for y := range height {
		raw = append(raw, filterNone)
		raw = append(raw, pix[y*stride:(y+1)*stride]...)
	}
	return raw
}

func compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeChunk appends length, tag, payload and the CRC32 of tag+payload.
func writeChunk(buf *bytes.Buffer, tag string, payload []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(payload)))
	buf.Write(n[:])

	crc := crc32.NewIEEE()
	crc.Write([]byte(tag))
	crc.Write(payload)

	buf.WriteString(tag)
	buf.Write(payload)
	binary.BigEndian.PutUint32(n[:], crc.Sum32())
	buf.Write(n[:])
}
