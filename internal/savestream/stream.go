// Package savestream provides the sequential primitive reader and writer used
// for save files. Values are little-endian. Both Reader and Writer keep the
// first error they encounter and turn every later call into a no-op, so
// callers check Err once after a run of reads or writes.
package savestream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxStringLen bounds the length prefix accepted by Reader.String.
const MaxStringLen = 1 << 16

// ErrStringTooLong is returned when a string length prefix exceeds MaxStringLen.
var ErrStringTooLong = errors.New("savestream: string length exceeds limit")

// Writer writes primitive values to an underlying io.Writer.
type Writer struct {
	w   io.Writer
	buf [8]byte
	err error
}

// NewWriter returns a Writer targeting w.
//
// Precondition: w must be non-nil.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered by the Writer, or nil.
func (w *Writer) Err() error { return w.err }

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	if _, err := w.w.Write(p); err != nil {
		w.err = fmt.Errorf("savestream: write: %w", err)
	}
}

// Uint8 writes one byte.
func (w *Writer) Uint8(v uint8) {
	w.buf[0] = v
	w.write(w.buf[:1])
}

// Bool writes v as a single byte (1 or 0).
func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
		return
	}
	w.Uint8(0)
}

// Uint32 writes a 4-byte unsigned value.
func (w *Writer) Uint32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	w.write(w.buf[:4])
}

// Int32 writes a 4-byte signed value.
func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

// String writes a uint32 length prefix followed by the raw bytes of s.
//
// Precondition: len(s) <= MaxStringLen.
func (w *Writer) String(s string) {
	if w.err == nil && len(s) > MaxStringLen {
		w.err = fmt.Errorf("savestream: writing %d-byte string: %w", len(s), ErrStringTooLong)
		return
	}
	w.Uint32(uint32(len(s)))
	w.write([]byte(s))
}

// Reader reads primitive values from an underlying io.Reader.
type Reader struct {
	r   io.Reader
	buf [8]byte
	err error
}

// NewReader returns a Reader sourcing from r.
//
// Precondition: r must be non-nil.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Err returns the first error encountered by the Reader, or nil.
// A truncated stream reports io.ErrUnexpectedEOF.
func (r *Reader) Err() error { return r.err }

func (r *Reader) read(p []byte) bool {
	if r.err != nil {
		return false
	}
	if _, err := io.ReadFull(r.r, p); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		r.err = fmt.Errorf("savestream: read: %w", err)
		return false
	}
	return true
}

// Uint8 reads one byte. Returns 0 once the Reader has failed.
func (r *Reader) Uint8() uint8 {
	if !r.read(r.buf[:1]) {
		return 0
	}
	return r.buf[0]
}

// Bool reads a single byte and reports whether it is non-zero.
func (r *Reader) Bool() bool {
	return r.Uint8() != 0
}

// Uint32 reads a 4-byte unsigned value. Returns 0 once the Reader has failed.
func (r *Reader) Uint32() uint32 {
	if !r.read(r.buf[:4]) {
		return 0
	}
	return binary.LittleEndian.Uint32(r.buf[:4])
}

// Int32 reads a 4-byte signed value. Returns 0 once the Reader has failed.
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

// String reads a length-prefixed string written by Writer.String.
func (r *Reader) String() string {
	n := r.Uint32()
	if r.err != nil {
		return ""
	}
	if n > MaxStringLen {
		r.err = fmt.Errorf("savestream: reading %d-byte string: %w", n, ErrStringTooLong)
		return ""
	}
	if n == 0 {
		return ""
	}
	p := make([]byte, n)
	if !r.read(p) {
		return ""
	}
	return string(p)
}
