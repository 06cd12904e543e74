package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/danmuck/huffctl/internal/bitstream"
	"github.com/danmuck/huffctl/internal/codec"
	"github.com/danmuck/huffctl/internal/huffman"
	"github.com/danmuck/huffctl/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	SymbolsHeader     = "X-Huff-Symbols"
	octetStream       = "application/octet-stream"
	errBodyTooLarge   = "request body too large"
	errBodyUnreadable = "request body unreadable"
)

// readBody returns the request body, or writes an error response and
// returns false.
func (s *Server) readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": errBodyTooLarge, "limit": s.maxBody})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errBodyUnreadable})
		return nil, false
	}
	return body, true
}

func (s *Server) handleEncode(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}
	var out bytes.Buffer
	out.Grow(huffman.HeaderBytes + len(body))
	stats, err := codec.Encode(bytes.NewReader(body), &out, s.opts)
	observability.RecordCodecRun(s.Name, codec.OpEncode, stats.InputBytes, stats.OutputBytes, stats.Duration, err == nil)
	if err != nil {
		s.fail(c, codec.OpEncode, err)
		return
	}
	c.Header(SymbolsHeader, strconv.FormatUint(stats.Symbols, 10))
	c.Data(http.StatusOK, octetStream, out.Bytes())
}

func (s *Server) handleDecode(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}
	var out bytes.Buffer
	stats, err := codec.Decode(bytes.NewReader(body), &out, s.opts)
	observability.RecordCodecRun(s.Name, codec.OpDecode, stats.InputBytes, stats.OutputBytes, stats.Duration, err == nil)
	if err != nil {
		s.fail(c, codec.OpDecode, err)
		return
	}
	c.Header(SymbolsHeader, strconv.FormatUint(stats.Symbols, 10))
	c.Data(http.StatusOK, octetStream, out.Bytes())
}

type codebookRow struct {
	huffman.Entry
	Frequency uint64 `json:"frequency"`
}

type codebookResponse struct {
	Symbols           uint64        `json:"symbols"`
	Distinct          int           `json:"distinct"`
	Entropy           float64       `json:"entropy_bits_per_symbol"`
	AverageCodeLength float64       `json:"average_code_length"`
	PayloadBits       uint64        `json:"payload_bits"`
	Entries           []codebookRow `json:"entries"`
}

func (s *Server) handleCodebook(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}
	freq, err := huffman.CountFrequencies(bytes.NewReader(body))
	if err != nil {
		s.fail(c, "codebook", err)
		return
	}
	resp := codebookResponse{
		Symbols:  freq.Total(),
		Distinct: freq.Distinct(),
		Entropy:  freq.Entropy(),
		Entries:  []codebookRow{},
	}
	if freq.Total() > 0 {
		cb, err := huffman.BuildCodebook(freq)
		if err != nil {
			s.fail(c, "codebook", err)
			return
		}
		resp.AverageCodeLength = freq.AverageCodeLength(cb.Lengths())
		resp.PayloadBits = freq.PayloadBits(cb.Lengths())
		for _, e := range cb.Entries() {
			resp.Entries = append(resp.Entries, codebookRow{Entry: e, Frequency: freq.Count(e.Symbol)})
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleInspect(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}
	rep, err := codec.Inspect(bytes.NewReader(body))
	if err != nil {
		s.fail(c, "inspect", err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) fail(c *gin.Context, op string, err error) {
	status := statusFor(err)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.
		Str("service", s.Name).
		Str("op", op).
		Str("request_id", c.GetString(observability.RequestIDKey)).
		Err(err).
		Msg("codec request failed")
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, huffman.ErrMalformedHeader):
		return http.StatusUnprocessableEntity
	case errors.Is(err, bitstream.ErrInsufficientBits),
		errors.Is(err, huffman.ErrInvalidCodeword):
		return http.StatusBadRequest
	case errors.Is(err, huffman.ErrInputTooLarge),
		errors.Is(err, huffman.ErrCodeTooLong):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
