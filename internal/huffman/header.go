package huffman

import (
	"fmt"
	"math"

	"github.com/danmuck/huffctl/internal/bitstream"
)

// HeaderBytes is the encoded header size: one length byte per symbol and a
// 32-bit symbol count.
const HeaderBytes = AlphabetSize + 4

// Header is the only persisted state of a compressed stream.
type Header struct {
	Lengths [AlphabetSize]uint8
	Symbols uint32
}

// NewHeader validates that total fits the count field.
func NewHeader(lengths [AlphabetSize]uint8, total uint64) (Header, error) {
	if total > math.MaxUint32 {
		return Header{}, fmt.Errorf("%w: %d", ErrInputTooLarge, total)
	}
	return Header{Lengths: lengths, Symbols: uint32(total)}, nil
}

// WriteHeader emits lengths in symbol order 0..255, then the count.
func WriteHeader(w *bitstream.Writer, h Header) error {
	for sym, length := range h.Lengths {
		if err := w.Write(uint64(length), 8); err != nil {
			return fmt.Errorf("write length %d: %w", sym, err)
		}
	}
	if err := w.Write(uint64(h.Symbols), 32); err != nil {
		return fmt.Errorf("write symbol count: %w", err)
	}
	return nil
}

func ReadHeader(r *bitstream.Reader) (Header, error) {
	var h Header
	for sym := range h.Lengths {
		v, err := r.Next(8)
		if err != nil {
			return Header{}, fmt.Errorf("read length %d: %w", sym, err)
		}
		h.Lengths[sym] = uint8(v)
	}
	n, err := r.Next(32)
	if err != nil {
		return Header{}, fmt.Errorf("read symbol count: %w", err)
	}
	h.Symbols = uint32(n)
	return h, nil
}

// Codebook rebuilds the canonical code declared by the header. A header
// with no symbols and no lengths has no codebook and returns nil.
func (h Header) Codebook() (*Codebook, error) {
	if h.Symbols == 0 && h.Lengths == ([AlphabetSize]uint8{}) {
		return nil, nil
	}
	return NewCodebook(h.Lengths)
}
