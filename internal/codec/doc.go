// Package codec owns the encode and decode pipelines over byte streams and
// files.
//
// Ownership boundary:
// - two-pass encode: frequency scan, header, codeword scan, word padding
// - header-driven decode of exactly the declared symbol count
// - file runs with deterministic close and all-or-nothing output
//
// Compressed layout: 256 code-length bytes (symbols 0..255), a big-endian
// 32-bit symbol count, then the MSB-first codeword stream zero-padded to a
// byte boundary.
package codec
