// Package filter implements the payload codecs applied to entry data
// at rest. The only codec in the native format is deflate; it encodes
// on save and decodes on load, so in-memory payloads are always raw.
package filter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// Deflate is a raw-deflate codec at a fixed compression level.
type Deflate struct {
	level int
}

// NewDeflate returns a deflate codec. Levels follow flate: 1 (fastest)
// through 9 (best), or flate.DefaultCompression.
func NewDeflate(level int) *Deflate {
	return &Deflate{level: level}
}

// Encode compresses data.
func (f *Deflate) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, f.level)
	if err != nil {
		return nil, fmt.Errorf("deflate level %d: %w", f.level, err)
	}
	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode decompresses into a buffer of the known decoded size.
func (f *Deflate) Decode(input []byte, decodedLen int) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(input))
	defer fr.Close()

	out := make([]byte, decodedLen)
	if _, err := io.ReadFull(fr, out); err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return out, nil
}
