package huffman

import (
	"cmp"
	"container/heap"
	"fmt"
	"math"
)

const internalSymbol = -1

// mergeNode is an encode-side Huffman tree node. The tree only exists long
// enough to harvest leaf depths.
type mergeNode struct {
	left, right *mergeNode
	symbol      int
	freq        uint64
	height      int
	seq         int
}

// rank orders the merge queue: frequency, then height, then creation order.
// Leaves take their symbol value as seq, merged nodes follow from 256.
type rank struct {
	freq   uint64
	height int
	seq    int
}

func (a rank) compare(b rank) int {
	return cmp.Or(
		cmp.Compare(a.freq, b.freq),
		cmp.Compare(a.height, b.height),
		cmp.Compare(a.seq, b.seq),
	)
}

func (n *mergeNode) rank() rank {
	return rank{freq: n.freq, height: n.height, seq: n.seq}
}

func (n *mergeNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

type mergeQueue []*mergeNode

func (q mergeQueue) Len() int           { return len(q) }
func (q mergeQueue) Less(i, j int) bool { return q[i].rank().compare(q[j].rank()) < 0 }
func (q mergeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *mergeQueue) Push(x any) {
	*q = append(*q, x.(*mergeNode))
}

func (q *mergeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// buildMergeTree merges the two lowest-ranked nodes until one remains.
// Symbols with zero frequency are left out. Returns nil for an empty table.
func buildMergeTree(f *FrequencyTable) *mergeNode {
	q := make(mergeQueue, 0, AlphabetSize)
	for sym := 0; sym < AlphabetSize; sym++ {
		if f.counts[sym] == 0 {
			continue
		}
		q = append(q, &mergeNode{symbol: sym, freq: f.counts[sym], seq: sym})
	}
	if len(q) == 0 {
		return nil
	}
	heap.Init(&q)

	seq := AlphabetSize
	for q.Len() > 1 {
		first := heap.Pop(&q).(*mergeNode)
		second := heap.Pop(&q).(*mergeNode)
		heap.Push(&q, &mergeNode{
			left:   first,
			right:  second,
			symbol: internalSymbol,
			freq:   first.freq + second.freq,
			height: 1 + max(first.height, second.height),
			seq:    seq,
		})
		seq++
	}
	return q[0]
}

// CodeLengths returns the optimal code length of every byte value. Unused
// symbols get length 0. A single-symbol alphabet is given length 1 so the
// symbol still has a decodable codeword.
func CodeLengths(f *FrequencyTable) ([AlphabetSize]uint8, error) {
	var lengths [AlphabetSize]uint8
	if f.total > math.MaxUint32 {
		return lengths, fmt.Errorf("%w: %d", ErrInputTooLarge, f.total)
	}
	root := buildMergeTree(f)
	if root == nil {
		return lengths, nil
	}
	if root.isLeaf() {
		lengths[root.symbol] = 1
		return lengths, nil
	}
	if err := harvestDepths(root, 0, &lengths); err != nil {
		return lengths, err
	}
	return lengths, nil
}

func harvestDepths(n *mergeNode, depth int, lengths *[AlphabetSize]uint8) error {
	if n.isLeaf() {
		if depth > math.MaxUint8 {
			return fmt.Errorf("%w: symbol %d depth %d", ErrCodeTooLong, n.symbol, depth)
		}
		lengths[n.symbol] = uint8(depth)
		return nil
	}
	if err := harvestDepths(n.left, depth+1, lengths); err != nil {
		return err
	}
	return harvestDepths(n.right, depth+1, lengths)
}
