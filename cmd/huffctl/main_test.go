package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/huffctl/internal/testutil/testlog"
)

func TestRunEncodeDecodeInspect(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	packed := filepath.Join(dir, "in.huff")
	restored := filepath.Join(dir, "in.out")
	content := []byte(strings.Repeat("AAAAABBBCC", 300))
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-stats", "json", "encode", src, packed}, &stdout, &stderr); code != 0 {
		t.Fatalf("encode exit=%d stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), `"symbols": 3000`) {
		t.Fatalf("unexpected json stats: %s", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"-stats", "text", "decode", packed, restored}, &stdout, &stderr); code != 0 {
		t.Fatalf("decode exit=%d stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "decode: 3,000 symbols") {
		t.Fatalf("unexpected text stats: %s", stdout.String())
	}
	got, err := os.ReadFile(restored)
	if err != nil || !bytes.Equal(got, content) {
		t.Fatalf("restored mismatch: err=%v", err)
	}

	stdout.Reset()
	if code := run([]string{"inspect", packed}, &stdout, &stderr); code != 0 {
		t.Fatalf("inspect exit=%d stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), " 65   1  0") {
		t.Fatalf("unexpected inspect output: %s", stdout.String())
	}
}

func TestRunRefusesOverwriteWithoutFlag(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "in")
	dst := filepath.Join(dir, "out")
	_ = os.WriteFile(src, []byte("data"), 0o644)
	_ = os.WriteFile(dst, []byte("existing"), 0o644)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"encode", src, dst}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "output already exists") {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
	if code := run([]string{"-overwrite", "encode", src, dst}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected overwrite to succeed, exit=%d stderr=%s", code, stderr.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	testlog.Start(t)
	var stdout, stderr bytes.Buffer
	for _, args := range [][]string{
		nil,
		{"encode", "only-one"},
		{"compress", "a", "b"},
		{"-stats", "xml", "inspect", "x"},
	} {
		if code := run(args, &stdout, &stderr); code != 2 {
			t.Fatalf("args %v: expected exit 2, got %d", args, code)
		}
	}
}
