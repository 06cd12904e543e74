package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/danmuck/huffctl/internal/bitstream"
	"github.com/danmuck/huffctl/internal/huffman"
	"github.com/rs/zerolog/log"
)

const (
	OpEncode = "encode"
	OpDecode = "decode"

	DefaultBufferSize = 64 * 1024
)

var (
	ErrInputChanged = errors.New("codec: input changed between passes")
	ErrOutputExists = errors.New("codec: output already exists")
)

// Options tunes a codec run.
type Options struct {
	BufferSize int
	Overwrite  bool
}

func DefaultOptions() Options {
	return Options{BufferSize: DefaultBufferSize}
}

func (o Options) withDefaults() Options {
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	return o
}

// Stats summarizes one encode or decode run.
type Stats struct {
	Op                string        `json:"op"`
	Symbols           uint64        `json:"symbols"`
	Distinct          int           `json:"distinct"`
	MaxCodeLength     int           `json:"max_code_length"`
	HeaderBytes       int           `json:"header_bytes"`
	PayloadBits       uint64        `json:"payload_bits"`
	InputBytes        uint64        `json:"input_bytes"`
	OutputBytes       uint64        `json:"output_bytes"`
	Entropy           float64       `json:"entropy_bits_per_symbol"`
	AverageCodeLength float64       `json:"average_code_length"`
	Duration          time.Duration `json:"duration_ns"`
}

// Ratio is compressed size over original size; 0 when nothing was coded.
func (s Stats) Ratio() float64 {
	var raw, packed uint64
	switch s.Op {
	case OpEncode:
		raw, packed = s.InputBytes, s.OutputBytes
	case OpDecode:
		raw, packed = s.OutputBytes, s.InputBytes
	}
	if raw == 0 {
		return 0
	}
	return float64(packed) / float64(raw)
}

func (s *Stats) fill(freq *huffman.FrequencyTable, cb *huffman.Codebook) {
	s.Symbols = freq.Total()
	s.Distinct = freq.Distinct()
	s.Entropy = freq.Entropy()
	s.HeaderBytes = huffman.HeaderBytes
	if cb == nil {
		return
	}
	lengths := cb.Lengths()
	s.MaxCodeLength = cb.MaxLength()
	s.PayloadBits = freq.PayloadBits(lengths)
	s.AverageCodeLength = freq.AverageCodeLength(lengths)
}

func finish(stats *Stats, start time.Time, err error) {
	stats.Duration = time.Since(start)
	if err != nil {
		log.Warn().Str("op", stats.Op).Err(err).Msg("codec run failed")
		return
	}
	log.Debug().
		Str("op", stats.Op).
		Uint64("symbols", stats.Symbols).
		Int("distinct", stats.Distinct).
		Uint64("in_bytes", stats.InputBytes).
		Uint64("out_bytes", stats.OutputBytes).
		Dur("duration", stats.Duration).
		Msg("codec run")
}

// Encode compresses src into dst. src is read twice: once for frequencies
// and again, after seeking to the start, for codewords.
func Encode(src io.ReadSeeker, dst io.Writer, opts Options) (stats Stats, err error) {
	opts = opts.withDefaults()
	stats.Op = OpEncode
	start := time.Now()
	defer func() { finish(&stats, start, err) }()

	freq, err := huffman.CountFrequencies(bufio.NewReaderSize(src, opts.BufferSize))
	if err != nil {
		return stats, fmt.Errorf("frequency pass: %w", err)
	}
	lengths, err := huffman.CodeLengths(freq)
	if err != nil {
		return stats, err
	}
	header, err := huffman.NewHeader(lengths, freq.Total())
	if err != nil {
		return stats, err
	}
	cb, err := header.Codebook()
	if err != nil {
		return stats, err
	}
	stats.fill(freq, cb)
	stats.InputBytes = freq.Total()

	out := &countingWriter{w: dst}
	buf := bufio.NewWriterSize(out, opts.BufferSize)
	w := bitstream.NewWriter(buf)
	if err := huffman.WriteHeader(w, header); err != nil {
		return stats, err
	}

	if cb != nil {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return stats, fmt.Errorf("rewind input: %w", err)
		}
		enc := huffman.NewEncoder(cb, w)
		n, err := io.CopyN(enc, bufio.NewReaderSize(src, opts.BufferSize), int64(freq.Total()))
		if err != nil {
			if errors.Is(err, io.EOF) {
				return stats, fmt.Errorf("%w: %d of %d symbols on second pass", ErrInputChanged, n, freq.Total())
			}
			if errors.Is(err, huffman.ErrUnknownSymbol) {
				return stats, fmt.Errorf("%w: %w", ErrInputChanged, err)
			}
			return stats, fmt.Errorf("codeword pass: %w", err)
		}
	}

	if err := w.PadToWord(); err != nil {
		return stats, err
	}
	if err := w.Close(); err != nil {
		return stats, err
	}
	if err := buf.Flush(); err != nil {
		return stats, err
	}
	stats.OutputBytes = out.n
	return stats, nil
}

// Decode reconstructs the original bytes from a compressed stream. Exactly
// the declared number of symbols is read; trailing padding is ignored.
func Decode(src io.Reader, dst io.Writer, opts Options) (stats Stats, err error) {
	opts = opts.withDefaults()
	stats.Op = OpDecode
	start := time.Now()
	defer func() { finish(&stats, start, err) }()

	r := bitstream.NewReader(bufio.NewReaderSize(src, opts.BufferSize))
	header, err := huffman.ReadHeader(r)
	if err != nil {
		return stats, err
	}
	cb, err := header.Codebook()
	if err != nil {
		return stats, err
	}

	out := &countingWriter{w: dst}
	buf := bufio.NewWriterSize(out, opts.BufferSize)
	freq := &huffman.FrequencyTable{}
	if cb != nil {
		dec := huffman.NewDecoder(cb, r)
		for i := uint32(0); i < header.Symbols; i++ {
			sym, err := dec.ReadSymbol()
			if err != nil {
				return stats, fmt.Errorf("symbol %d of %d: %w", i, header.Symbols, err)
			}
			if err := buf.WriteByte(sym); err != nil {
				return stats, err
			}
			freq.Add(sym)
		}
	}
	if err := buf.Flush(); err != nil {
		return stats, err
	}

	stats.fill(freq, cb)
	stats.InputBytes = (r.BitsRead() + bitstream.WordBits - 1) / bitstream.WordBits
	stats.OutputBytes = out.n
	return stats, nil
}

// Report describes a compressed stream's header.
type Report struct {
	Symbols       uint32          `json:"symbols"`
	Distinct      int             `json:"distinct"`
	MaxCodeLength int             `json:"max_code_length"`
	Lengths       []int           `json:"lengths"`
	Entries       []huffman.Entry `json:"entries"`
}

// Inspect reads and validates only the header of a compressed stream.
func Inspect(src io.Reader) (Report, error) {
	h, err := huffman.ReadHeader(bitstream.NewReader(src))
	if err != nil {
		return Report{}, err
	}
	cb, err := h.Codebook()
	if err != nil {
		return Report{}, err
	}
	rep := Report{Symbols: h.Symbols, Lengths: make([]int, huffman.AlphabetSize), Entries: []huffman.Entry{}}
	for sym, length := range h.Lengths {
		rep.Lengths[sym] = int(length)
	}
	if cb != nil {
		rep.Distinct = cb.Len()
		rep.MaxCodeLength = cb.MaxLength()
		rep.Entries = cb.Entries()
	}
	return rep, nil
}

type countingWriter struct {
	w io.Writer
	n uint64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += uint64(n)
	return n, err
}
