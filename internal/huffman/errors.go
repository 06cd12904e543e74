package huffman

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedHeader = errors.New("huffman: malformed header")
	ErrOverfullCode    = fmt.Errorf("%w: code lengths exceed prefix capacity", ErrMalformedHeader)
	ErrEmptyCode       = fmt.Errorf("%w: no symbol has a nonzero code length", ErrMalformedHeader)
	ErrCodeTooLong     = errors.New("huffman: code length exceeds header field")
	ErrInputTooLarge   = errors.New("huffman: symbol count exceeds header field")
	ErrInvalidCodeword = errors.New("huffman: bit sequence matches no codeword")
	ErrUnknownSymbol   = errors.New("huffman: symbol has no codeword")
)
