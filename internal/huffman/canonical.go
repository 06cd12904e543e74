package huffman

import (
	"fmt"
	"slices"
)

// SymbolStat pairs a byte value with its code length.
type SymbolStat struct {
	Symbol     byte
	CodeLength uint8
}

// SymbolStats returns all 256 stats in symbol order.
func SymbolStats(lengths [AlphabetSize]uint8) []SymbolStat {
	stats := make([]SymbolStat, AlphabetSize)
	for sym := range stats {
		stats[sym] = SymbolStat{Symbol: byte(sym), CodeLength: lengths[sym]}
	}
	return stats
}

// SortStats orders stats by ascending code length. Equal lengths keep their
// relative order, so stats from SymbolStats tie-break on symbol value.
func SortStats(stats []SymbolStat) {
	slices.SortStableFunc(stats, func(a, b SymbolStat) int {
		return int(a.CodeLength) - int(b.CodeLength)
	})
}

const (
	noNode int32 = -1

	// rootPlaceholder seeds code accumulation at the root. It is stripped
	// from every codeword.
	rootPlaceholder = "0"
)

type trieNode struct {
	left, right int32
	symbol      int16
	filled      bool
	code        string
}

// CanonicalTree is a binary trie filled leftmost-first by ascending code
// length. Nodes live in a flat slice; children are indices.
type CanonicalTree struct {
	nodes  []trieNode
	path   []int32
	leaves int
	maxLen uint8
}

// BuildCanonicalTree places every symbol with a nonzero length into the
// trie. Lengths that overflow prefix capacity fail with ErrOverfullCode; an
// all-zero array fails with ErrEmptyCode.
func BuildCanonicalTree(lengths [AlphabetSize]uint8) (*CanonicalTree, error) {
	stats := SymbolStats(lengths)
	SortStats(stats)

	t := &CanonicalTree{nodes: make([]trieNode, 0, 2*AlphabetSize)}
	t.newNode(internalSymbol, false)
	for _, st := range stats {
		if st.CodeLength == 0 {
			continue
		}
		if err := t.insert(st.Symbol, st.CodeLength); err != nil {
			return nil, err
		}
	}
	if t.leaves == 0 {
		return nil, ErrEmptyCode
	}
	t.assignCodes(0, rootPlaceholder)
	return t, nil
}

func (t *CanonicalTree) newNode(symbol int16, filled bool) int32 {
	t.nodes = append(t.nodes, trieNode{left: noNode, right: noNode, symbol: symbol, filled: filled})
	return int32(len(t.nodes) - 1)
}

func (t *CanonicalTree) isFilled(idx int32) bool {
	return idx != noNode && t.nodes[idx].filled
}

// insert walks length edges from the root, preferring the left child while
// it has room, then marks completed ancestors filled.
func (t *CanonicalTree) insert(sym byte, length uint8) error {
	cur := int32(0)
	t.path = t.path[:0]
	for depth := length; depth > 0; depth-- {
		t.path = append(t.path, cur)
		n := t.nodes[cur]

		right := t.isFilled(n.left)
		next := n.left
		if right {
			if t.isFilled(n.right) {
				return fmt.Errorf("%w: symbol %d length %d", ErrOverfullCode, sym, length)
			}
			next = n.right
		}

		switch {
		case depth == 1 && next != noNode:
			return fmt.Errorf("%w: symbol %d length %d lands on an occupied slot", ErrOverfullCode, sym, length)
		case depth == 1:
			next = t.newNode(int16(sym), true)
		case next == noNode:
			next = t.newNode(internalSymbol, false)
		}

		if right {
			t.nodes[cur].right = next
		} else {
			t.nodes[cur].left = next
		}
		cur = next
	}

	for i := len(t.path) - 1; i >= 0; i-- {
		n := &t.nodes[t.path[i]]
		if !t.isFilled(n.left) || !t.isFilled(n.right) {
			break
		}
		n.filled = true
	}
	t.leaves++
	t.maxLen = max(t.maxLen, length)
	return nil
}

func (t *CanonicalTree) assignCodes(idx int32, code string) {
	n := &t.nodes[idx]
	n.code = code
	left, right := n.left, n.right
	if left != noNode {
		t.assignCodes(left, code+"0")
	}
	if right != noNode {
		t.assignCodes(right, code+"1")
	}
}

// Complete reports whether every slot in the trie holds a symbol, i.e. the
// lengths meet the Kraft inequality with equality.
func (t *CanonicalTree) Complete() bool {
	return t.nodes[0].filled
}

// Leaves is the number of symbols placed.
func (t *CanonicalTree) Leaves() int {
	return t.leaves
}

// MaxLength is the longest code length placed.
func (t *CanonicalTree) MaxLength() int {
	return int(t.maxLen)
}

// Codebook collects every leaf's codeword into a lookup table.
func (t *CanonicalTree) Codebook() *Codebook {
	cb := &Codebook{
		symbols: make(map[string]byte, t.leaves),
		maxLen:  int(t.maxLen),
	}
	t.collect(0, cb)
	return cb
}

func (t *CanonicalTree) collect(idx int32, cb *Codebook) {
	n := &t.nodes[idx]
	if n.symbol != internalSymbol {
		code := n.code[len(rootPlaceholder):]
		sym := byte(n.symbol)
		cb.codes[sym] = code
		cb.lengths[sym] = uint8(len(code))
		cb.symbols[code] = sym
		return
	}
	if n.left != noNode {
		t.collect(n.left, cb)
	}
	if n.right != noNode {
		t.collect(n.right, cb)
	}
}
