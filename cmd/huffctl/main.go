package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/huffctl/internal/codec"
	"github.com/danmuck/huffctl/internal/logging"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const usage = `usage:
  huffctl [flags] encode <input> <output>
  huffctl [flags] decode <input> <output>
  huffctl [flags] inspect <input>

flags:
`

func main() {
	logging.ConfigureRuntime()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("huffctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "optional TOML config path")
	stats := fs.String("stats", "", "stats output: none|text|json (overrides config)")
	overwrite := fs.Bool("overwrite", false, "replace an existing output file")
	bufferSize := fs.Int("buffer", 0, "I/O buffer size in bytes (overrides config)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg := defaultCLIConfig()
	if *configPath != "" {
		loaded, err := loadCLIConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "huffctl: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if *stats != "" {
		format, err := parseStatsFormat(*stats)
		if err != nil {
			fmt.Fprintf(stderr, "huffctl: %v\n", err)
			return 2
		}
		cfg.Stats = format
	}
	if *overwrite {
		cfg.Options.Overwrite = true
	}
	if *bufferSize > 0 {
		cfg.Options.BufferSize = *bufferSize
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}

	var err error
	switch cmd := rest[0]; {
	case cmd == "encode" && len(rest) == 3:
		err = runCodec(codec.EncodeFile, rest[1], rest[2], cfg, stdout)
	case cmd == "decode" && len(rest) == 3:
		err = runCodec(codec.DecodeFile, rest[1], rest[2], cfg, stdout)
	case cmd == "inspect" && len(rest) == 2:
		err = runInspect(rest[1], stdout)
	default:
		fs.Usage()
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "huffctl: %v\n", err)
		return 1
	}
	return 0
}

type fileRun func(inPath, outPath string, opts codec.Options) (codec.Stats, error)

func runCodec(fn fileRun, in, out string, cfg cliConfig, stdout io.Writer) error {
	stats, err := fn(in, out, cfg.Options)
	if err != nil {
		return err
	}
	return writeStats(stdout, cfg.Stats, stats)
}

func writeStats(w io.Writer, format string, s codec.Stats) error {
	switch format {
	case statsJSON:
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case statsText:
		p := message.NewPrinter(language.English)
		_, err := p.Fprintf(w,
			"%s: %d symbols (%d distinct), %d -> %d bytes, ratio %.3f\n"+
				"entropy %.4f bits/symbol, average code length %.4f bits/symbol, max code length %d, %v\n",
			s.Op, s.Symbols, s.Distinct, s.InputBytes, s.OutputBytes, s.Ratio(),
			s.Entropy, s.AverageCodeLength, s.MaxCodeLength, s.Duration)
		return err
	default:
		return nil
	}
}

func runInspect(path string, stdout io.Writer) error {
	rep, err := codec.InspectFile(path)
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "symbols %d, distinct %d, max code length %d\n", rep.Symbols, rep.Distinct, rep.MaxCodeLength)
	for _, e := range rep.Entries {
		p.Fprintf(stdout, "%3d  %2d  %s\n", e.Symbol, e.Length, e.Codeword)
	}
	return nil
}
