// Package bitstream owns bit-granular reads and writes over byte streams.
//
// Ownership boundary:
// - MSB-first bit reads with truncation detection
// - MSB-first bit writes, bit-string writes, word padding
//
// The word size is one byte.
package bitstream

import (
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// WordBits is the alignment unit used by PadToWord.
const WordBits = 8

var (
	ErrInsufficientBits = errors.New("bitstream: insufficient bits")
	ErrBitCount         = errors.New("bitstream: bit count out of range")
	ErrBitString        = errors.New("bitstream: invalid bit string")
)

// Reader consumes bits most-significant-bit first.
type Reader struct {
	br   *bitio.Reader
	read uint64
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bitio.NewReader(r)}
}

// Next consumes n bits (1..64) and returns them right-aligned.
func (r *Reader) Next(n uint8) (uint64, error) {
	if n == 0 || n > 64 {
		return 0, fmt.Errorf("%w: %d", ErrBitCount, n)
	}
	v, err := r.br.ReadBits(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: wanted %d after %d", ErrInsufficientBits, n, r.read)
		}
		return 0, err
	}
	r.read += uint64(n)
	return v, nil
}

// NextBit consumes a single bit.
func (r *Reader) NextBit() (bool, error) {
	v, err := r.Next(1)
	return v == 1, err
}

// BitsRead reports the number of bits consumed so far.
func (r *Reader) BitsRead() uint64 {
	return r.read
}

// Writer emits bits most-significant-bit first. Close must be called to
// flush cached bits.
type Writer struct {
	bw      *bitio.Writer
	written uint64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bitio.NewWriter(w)}
}

// Write emits the low n bits (1..64) of v.
func (w *Writer) Write(v uint64, n uint8) error {
	if n == 0 || n > 64 {
		return fmt.Errorf("%w: %d", ErrBitCount, n)
	}
	if n < 64 {
		v &= 1<<n - 1
	}
	if err := w.bw.WriteBits(v, n); err != nil {
		return err
	}
	w.written += uint64(n)
	return nil
}

// WriteCode emits a string of '0'/'1' characters as individual bits.
func (w *Writer) WriteCode(code string) error {
	for i := 0; i < len(code); i++ {
		var bit bool
		switch code[i] {
		case '0':
		case '1':
			bit = true
		default:
			return fmt.Errorf("%w: %q at %d", ErrBitString, code[i], i)
		}
		if err := w.bw.WriteBool(bit); err != nil {
			return err
		}
		w.written++
	}
	return nil
}

// PadToWord emits zero bits until the output is byte aligned.
func (w *Writer) PadToWord() error {
	skipped, err := w.bw.Align()
	w.written += uint64(skipped)
	return err
}

// BitsWritten reports the number of bits emitted so far, padding included.
func (w *Writer) BitsWritten() uint64 {
	return w.written
}

// Close flushes any cached bits. It does not close the underlying writer.
func (w *Writer) Close() error {
	return w.bw.Close()
}
