package huffman

import (
	"fmt"

	"github.com/danmuck/huffctl/internal/bitstream"
)

// Codebook maps symbols to canonical codewords and back. Codewords are
// strings of '0' and '1'. It is read-only once built.
type Codebook struct {
	lengths [AlphabetSize]uint8
	codes   [AlphabetSize]string
	symbols map[string]byte
	maxLen  int
}

// NewCodebook rebuilds the canonical code for lengths.
func NewCodebook(lengths [AlphabetSize]uint8) (*Codebook, error) {
	tree, err := BuildCanonicalTree(lengths)
	if err != nil {
		return nil, err
	}
	return tree.Codebook(), nil
}

// BuildCodebook derives optimal lengths from f and returns their canonical
// code. The table must contain at least one symbol.
func BuildCodebook(f *FrequencyTable) (*Codebook, error) {
	lengths, err := CodeLengths(f)
	if err != nil {
		return nil, err
	}
	return NewCodebook(lengths)
}

func (c *Codebook) Codeword(sym byte) (string, bool) {
	code := c.codes[sym]
	return code, code != ""
}

// Lookup matches a candidate bit string exactly.
func (c *Codebook) Lookup(candidate []byte) (byte, bool) {
	sym, ok := c.symbols[string(candidate)]
	return sym, ok
}

// Lengths returns the code length of every symbol, 0 for unused ones.
func (c *Codebook) Lengths() [AlphabetSize]uint8 {
	return c.lengths
}

// Len is the number of symbols with a codeword.
func (c *Codebook) Len() int {
	return len(c.symbols)
}

func (c *Codebook) MaxLength() int {
	return c.maxLen
}

// Entry is one symbol's row in a codebook listing.
type Entry struct {
	Symbol   byte   `json:"symbol"`
	Length   uint8  `json:"length"`
	Codeword string `json:"codeword"`
}

// Entries lists used symbols in symbol order.
func (c *Codebook) Entries() []Entry {
	out := make([]Entry, 0, len(c.symbols))
	for sym := 0; sym < AlphabetSize; sym++ {
		if c.codes[sym] == "" {
			continue
		}
		out = append(out, Entry{Symbol: byte(sym), Length: c.lengths[sym], Codeword: c.codes[sym]})
	}
	return out
}

// Encoder writes codewords for raw bytes.
type Encoder struct {
	cb *Codebook
	w  *bitstream.Writer
}

func NewEncoder(cb *Codebook, w *bitstream.Writer) *Encoder {
	return &Encoder{cb: cb, w: w}
}

func (e *Encoder) WriteSymbol(sym byte) error {
	code, ok := e.cb.Codeword(sym)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSymbol, sym)
	}
	return e.w.WriteCode(code)
}

// Write encodes every byte of p, so an Encoder can be the target of io.Copy.
func (e *Encoder) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := e.WriteSymbol(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// Decoder reads one bit at a time until the accumulated bits match a
// codeword.
type Decoder struct {
	cb  *Codebook
	r   *bitstream.Reader
	acc []byte
}

func NewDecoder(cb *Codebook, r *bitstream.Reader) *Decoder {
	return &Decoder{cb: cb, r: r, acc: make([]byte, 0, cb.maxLen)}
}

func (d *Decoder) ReadSymbol() (byte, error) {
	d.acc = d.acc[:0]
	for {
		bit, err := d.r.NextBit()
		if err != nil {
			return 0, err
		}
		if bit {
			d.acc = append(d.acc, '1')
		} else {
			d.acc = append(d.acc, '0')
		}
		if sym, ok := d.cb.Lookup(d.acc); ok {
			return sym, nil
		}
		if len(d.acc) >= d.cb.maxLen {
			return 0, fmt.Errorf("%w: %s", ErrInvalidCodeword, d.acc)
		}
	}
}
