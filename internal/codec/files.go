package codec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EncodeFile compresses inPath into outPath. The output only appears once
// the run succeeds.
func EncodeFile(inPath, outPath string, opts Options) (Stats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Stats{Op: OpEncode}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	return writeAtomic(outPath, opts.Overwrite, func(w io.Writer) (Stats, error) {
		return Encode(in, w, opts)
	})
}

// DecodeFile reconstructs inPath into outPath. The output only appears once
// every declared symbol has been decoded.
func DecodeFile(inPath, outPath string, opts Options) (Stats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Stats{Op: OpDecode}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	return writeAtomic(outPath, opts.Overwrite, func(w io.Writer) (Stats, error) {
		return Decode(in, w, opts)
	})
}

func InspectFile(path string) (Report, error) {
	in, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()
	return Inspect(in)
}

// writeAtomic runs fn against a temp file next to path and renames it into
// place on success. The temp file is removed on every failure path.
func writeAtomic(path string, overwrite bool, fn func(io.Writer) (Stats, error)) (stats Stats, err error) {
	if !overwrite {
		if _, statErr := os.Stat(path); statErr == nil {
			return stats, fmt.Errorf("%w: %s", ErrOutputExists, path)
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return stats, statErr
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return stats, fmt.Errorf("create output: %w", err)
	}
	closed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	stats, err = fn(tmp)
	if err != nil {
		return stats, err
	}
	if err = tmp.Sync(); err != nil {
		return stats, fmt.Errorf("sync output: %w", err)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return stats, fmt.Errorf("close output: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return stats, fmt.Errorf("rename output: %w", err)
	}
	return stats, nil
}
