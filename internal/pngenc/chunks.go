package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

// Chunk is one parsed PNG chunk.
type Chunk struct {
	Tag     string
	Payload []byte
	CRC     uint32
}

// Valid reports whether the stored CRC matches tag+payload.
func (c Chunk) Valid() bool {
	crc := crc32.NewIEEE()
	crc.Write([]byte(c.Tag))
	crc.Write(c.Payload)
	return crc.Sum32() == c.CRC
}

// ErrMalformed is returned by ReadChunks for streams that cannot be split
// into chunks.
var ErrMalformed = errors.New("pngenc: malformed stream")

// ReadChunks splits a PNG stream into its chunks without interpreting them.
// It checks the signature and framing only; CRCs are left to Chunk.Valid.
func ReadChunks(data []byte) ([]Chunk, error) {
	if !bytes.HasPrefix(data, Signature[:]) {
		return nil, fmt.Errorf("%w: missing signature", ErrMalformed)
	}
	rest := data[len(Signature):]

	var chunks []Chunk
	for len(rest) > 0 {
		if len(rest) < 12 {
			return nil, fmt.Errorf("%w: truncated chunk header", ErrMalformed)
		}
		n := int(binary.BigEndian.Uint32(rest[0:4]))
		if len(rest) < 12+n {
			return nil, fmt.Errorf("%w: chunk length %d exceeds stream", ErrMalformed, n)
		}
		chunks = append(chunks, Chunk{
			Tag:     string(rest[4:8]),
			Payload: rest[8 : 8+n],
			CRC:     binary.BigEndian.Uint32(rest[8+n : 12+n]),
		})
		rest = rest[12+n:]
	}
	return chunks, nil
}

// Inspect checks that data is a stream of the shape Marshal produces
// (IHDR, one or more IDAT, IEND, all with valid CRCs) and returns the
// dimensions recorded in its header.
func Inspect(data []byte) (width, height int, err error) {
	chunks, err := ReadChunks(data)
	if err != nil {
		return 0, 0, err
	}
	if len(chunks) < 3 || chunks[0].Tag != "IHDR" || chunks[len(chunks)-1].Tag != "IEND" {
		return 0, 0, fmt.Errorf("%w: unexpected chunk order", ErrMalformed)
	}
	for _, c := range chunks {
		if !c.Valid() {
			return 0, 0, fmt.Errorf("%w: bad CRC in %s chunk", ErrMalformed, c.Tag)
		}
	}
	for _, c := range chunks[1 : len(chunks)-1] {
		if c.Tag != "IDAT" {
			return 0, 0, fmt.Errorf("%w: unexpected %s chunk", ErrMalformed, c.Tag)
		}
	}
	ihdr := chunks[0].Payload
	if len(ihdr) != 13 {
		return 0, 0, fmt.Errorf("%w: IHDR length %d", ErrMalformed, len(ihdr))
	}
	return int(binary.BigEndian.Uint32(ihdr[0:4])), int(binary.BigEndian.Uint32(ihdr[4:8])), nil
}
