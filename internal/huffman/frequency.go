package huffman

import (
	"io"
	"math"
)

// AlphabetSize is the number of byte-valued symbols.
const AlphabetSize = 256

// FrequencyTable is a histogram of byte values over a full input.
type FrequencyTable struct {
	counts [AlphabetSize]uint64
	total  uint64
}

// CountFrequencies reads r to the end and returns its byte histogram.
func CountFrequencies(r io.Reader) (*FrequencyTable, error) {
	f := &FrequencyTable{}
	if _, err := io.Copy(f, r); err != nil {
		return nil, err
	}
	return f, nil
}

// Write adds p to the histogram. It never fails.
func (f *FrequencyTable) Write(p []byte) (int, error) {
	for _, b := range p {
		f.counts[b]++
	}
	f.total += uint64(len(p))
	return len(p), nil
}

// Add counts one occurrence of sym.
func (f *FrequencyTable) Add(sym byte) {
	f.counts[sym]++
	f.total++
}

func (f *FrequencyTable) Count(sym byte) uint64 {
	return f.counts[sym]
}

// Total is the symbol count N.
func (f *FrequencyTable) Total() uint64 {
	return f.total
}

// Distinct is the number of symbols with nonzero frequency.
func (f *FrequencyTable) Distinct() int {
	n := 0
	for _, c := range f.counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// Entropy returns the Shannon entropy of the table in bits per symbol.
func (f *FrequencyTable) Entropy() float64 {
	if f.total == 0 {
		return 0
	}
	total := float64(f.total)
	var h float64
	for _, c := range f.counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h
}

// AverageCodeLength returns the expected codeword length in bits per symbol
// when f is coded with lengths.
func (f *FrequencyTable) AverageCodeLength(lengths [AlphabetSize]uint8) float64 {
	if f.total == 0 {
		return 0
	}
	return float64(f.PayloadBits(lengths)) / float64(f.total)
}

// PayloadBits is the exact number of codeword bits f produces under lengths.
func (f *FrequencyTable) PayloadBits(lengths [AlphabetSize]uint8) uint64 {
	var bits uint64
	for sym, c := range f.counts {
		bits += c * uint64(lengths[sym])
	}
	return bits
}
