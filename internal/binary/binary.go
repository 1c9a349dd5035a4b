// Package binary provides the little-endian buffer writer and reader
// used by the native container file format.
//
// The format is fixed little-endian with 64-bit lengths, so unlike a
// general HDF5 codec there is no configurable offset or length width.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortBuffer is returned when a read runs past the end of the data.
var ErrShortBuffer = errors.New("short buffer")

// Writer accumulates little-endian binary data in memory.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated data. The slice aliases the writer's
// internal buffer and is invalidated by further writes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(p []byte) {
	w.buf = append(w.buf, p...)
}

// WriteUint8 appends an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint32 appends an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// WriteUint64 appends an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// WriteInt64 appends a signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

// WriteString appends a length-prefixed string.
func (w *Writer) WriteString(s string) {
	w.WriteUint32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteBlob appends a length-prefixed byte block.
func (w *Writer) WriteBlob(p []byte) {
	w.WriteUint64(uint64(len(p)))
	w.buf = append(w.buf, p...)
}

// Reader consumes little-endian binary data from a byte slice.
// The first decoding error sticks; subsequent reads return zero values
// and Err reports the failure.
type Reader struct {
	data []byte
	pos  int
	err  error
}

// NewReader returns a reader over data. The reader does not copy data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.pos+n > len(r.data) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d of %d", ErrShortBuffer, n, r.pos, len(r.data))
		return nil
	}
	p := r.data[r.pos : r.pos+n]
	r.pos += n
	return p
}

// ReadBytes reads n raw bytes. The result aliases the input buffer.
func (r *Reader) ReadBytes(n int) []byte {
	return r.take(n)
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() uint8 {
	p := r.take(1)
	if p == nil {
		return 0
	}
	return p[0]
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() uint32 {
	p := r.take(4)
	if p == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(p)
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() uint64 {
	p := r.take(8)
	if p == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(p)
}

// ReadInt64 reads a signed 64-bit integer.
func (r *Reader) ReadInt64() int64 {
	return int64(r.ReadUint64())
}

// ReadString reads a length-prefixed string.
func (r *Reader) ReadString() string {
	n := r.ReadUint32()
	p := r.take(int(n))
	if p == nil {
		return ""
	}
	return string(p)
}

// ReadBlob reads a length-prefixed byte block, returning a copy.
func (r *Reader) ReadBlob() []byte {
	n := r.ReadUint64()
	p := r.take(int(n))
	if p == nil {
		return nil
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out
}
