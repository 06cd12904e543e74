package huffman

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/danmuck/huffctl/internal/testutil/testlog"
)

func lengthsOf(t *testing.T, input string) [AlphabetSize]uint8 {
	t.Helper()
	f, err := CountFrequencies(strings.NewReader(input))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	lengths, err := CodeLengths(f)
	if err != nil {
		t.Fatalf("code lengths: %v", err)
	}
	return lengths
}

func TestCodeLengthsScenario(t *testing.T) {
	testlog.Start(t)
	lengths := lengthsOf(t, "AAAAABBBCC")
	if lengths['A'] != 1 || lengths['B'] != 2 || lengths['C'] != 2 {
		t.Fatalf("unexpected lengths: A=%d B=%d C=%d", lengths['A'], lengths['B'], lengths['C'])
	}
	for sym, l := range lengths {
		if sym != 'A' && sym != 'B' && sym != 'C' && l != 0 {
			t.Fatalf("unused symbol %d has length %d", sym, l)
		}
	}
}

func TestCodeLengthsSingleSymbol(t *testing.T) {
	testlog.Start(t)
	lengths := lengthsOf(t, "ZZZZZZZZZZ")
	if lengths['Z'] != 1 {
		t.Fatalf("expected degenerate alphabet length 1, got %d", lengths['Z'])
	}
}

func TestCodeLengthsEmpty(t *testing.T) {
	testlog.Start(t)
	if lengths := lengthsOf(t, ""); lengths != ([AlphabetSize]uint8{}) {
		t.Fatalf("expected all zero lengths")
	}
}

func TestCodeLengthsUniform(t *testing.T) {
	testlog.Start(t)
	lengths := lengthsOf(t, "ABCDEFGH")
	for _, c := range "ABCDEFGH" {
		if lengths[c] != 3 {
			t.Fatalf("symbol %q: expected length 3, got %d", c, lengths[c])
		}
	}
}

func TestCodeLengthsSkewed(t *testing.T) {
	testlog.Start(t)
	// Fibonacci weights give the deepest tree for their symbol count.
	var b strings.Builder
	weights := []int{1, 1, 2, 3, 5, 8, 13}
	for i, w := range weights {
		b.WriteString(strings.Repeat(string(rune('a'+i)), w))
	}
	lengths := lengthsOf(t, b.String())
	want := map[byte]uint8{'a': 6, 'b': 6, 'c': 5, 'd': 4, 'e': 3, 'f': 2, 'g': 1}
	for sym, l := range want {
		if lengths[sym] != l {
			t.Fatalf("symbol %q: got=%d want=%d", sym, lengths[sym], l)
		}
	}
}

func TestRankOrdering(t *testing.T) {
	testlog.Start(t)
	low := rank{freq: 1, height: 5, seq: 300}
	high := rank{freq: 2, height: 0, seq: 0}
	if low.compare(high) >= 0 {
		t.Fatalf("frequency must dominate")
	}
	shallow := rank{freq: 3, height: 0, seq: 400}
	deep := rank{freq: 3, height: 2, seq: 1}
	if shallow.compare(deep) >= 0 {
		t.Fatalf("height must break frequency ties")
	}
	first := rank{freq: 3, height: 1, seq: 7}
	second := rank{freq: 3, height: 1, seq: 8}
	if first.compare(second) >= 0 || first.compare(first) != 0 {
		t.Fatalf("seq must break height ties")
	}
}

func TestMergeTreeHeightTieBreak(t *testing.T) {
	testlog.Start(t)
	f, _ := CountFrequencies(strings.NewReader("AAAAABBBCC"))
	root := buildMergeTree(f)
	if root == nil || root.isLeaf() {
		t.Fatalf("expected internal root")
	}
	// A(5, h0) outranks the merged B+C node (5, h1) and is extracted first.
	if root.left.symbol != 'A' {
		t.Fatalf("expected A on the left of the root, got %d", root.left.symbol)
	}
	if root.height != 2 || root.freq != 10 {
		t.Fatalf("unexpected root: height=%d freq=%d", root.height, root.freq)
	}
}

func TestCodeLengthsRejectsOversizedTotal(t *testing.T) {
	testlog.Start(t)
	f := &FrequencyTable{}
	f.counts['x'] = math.MaxUint32 + 1
	f.total = math.MaxUint32 + 1
	if _, err := CodeLengths(f); !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
}
