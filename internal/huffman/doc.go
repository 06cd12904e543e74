// Package huffman owns the canonical Huffman core.
//
// Ownership boundary:
// - byte frequency tables
// - optimal code lengths from a (frequency, height) ordered merge
// - canonical codeword assignment from code lengths alone
// - codeword/symbol lookup and per-symbol bit encode/decode
// - the 256 x 8-bit length + 32-bit count header
//
// Only code lengths are ever persisted. Encoder and decoder rebuild the same
// canonical tree from those lengths, so both sides agree on every codeword.
package huffman
