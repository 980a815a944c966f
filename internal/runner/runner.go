// Package runner implements the CLI host described in SPEC_FULL.md §6.5:
// flag parsing, file/stdin input, and output formatting around the
// boundaryx core. Grounded on the teacher's internal/runner, which uses
// the same goflags + gologger combination for a subdomain permutation
// CLI; this package keeps that idiom and replaces the permutation-
// specific options with sentence-boundary ones.
package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/boundaryx/boundaryx"
)

// OutputMode selects how Run renders a boundaryx.Output.
type OutputMode string

const (
	OutputText    OutputMode = "text"
	OutputJSON    OutputMode = "json"
	OutputOffsets OutputMode = "offsets"
)

type Options struct {
	InputFile    string
	LanguageCode string
	LanguageFile string
	OutputFile   string
	Mode         string // text, json, offsets
	Threads      int
	ChunkSize    int
	Overlap      int
	Strategy     string // adaptive, sequential, parallel
	Verbose      bool
	Silent       bool
}

func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Parallel sentence boundary detector.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.InputFile, "input", "i", "", "input text file to split into sentences (default stdin)"),
		flagSet.StringVarP(&opts.LanguageCode, "language", "l", "en", "built-in language rule set to use (en, ja)"),
		flagSet.StringVar(&opts.LanguageFile, "language-file", "", "path to a custom language YAML configuration"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.OutputFile, "output", "o", "", "output file to write results to (default stdout)"),
		flagSet.StringVarP(&opts.Mode, "mode", "m", "text", "output mode: text, json, offsets"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display boundaryx version"),
	)

	flagSet.CreateGroup("scan", "Scan",
		flagSet.StringVarP(&opts.Strategy, "strategy", "s", "adaptive", "execution strategy: adaptive, sequential, parallel"),
		flagSet.IntVarP(&opts.Threads, "threads", "t", 0, "worker count for parallel scanning (default runtime.NumCPU())"),
		flagSet.IntVar(&opts.ChunkSize, "chunk-size", 128*1024, "chunk size in bytes for parallel scanning"),
		flagSet.IntVar(&opts.Overlap, "overlap", 64, "rune overlap between adjacent chunks"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	return opts
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}

// Run reads opts.InputFile (or stdin), runs boundaryx.Process over it,
// and writes the result in opts.Mode to opts.OutputFile (or stdout).
func Run(opts *Options) error {
	text, err := readInput(opts.InputFile)
	if err != nil {
		return err
	}

	cfg := boundaryx.DefaultConfig()
	cfg.LanguageCode = opts.LanguageCode
	cfg.LanguageFile = opts.LanguageFile
	cfg.Threads = opts.Threads
	if opts.ChunkSize > 0 {
		cfg.ChunkSizeBytes = opts.ChunkSize
	}
	cfg.OverlapBytes = opts.Overlap
	cfg.ModeName = strings.ToLower(opts.Strategy)
	if err := cfg.Resolve(); err != nil {
		return err
	}

	out, err := boundaryx.Process(text, cfg)
	if err != nil {
		return err
	}
	gologger.Verbose().Msgf("scanned %d bytes (%d chars) in %d chunk(s), parallel=%v, took %s",
		out.Stats.Bytes, out.Stats.Chars, out.Stats.Chunks, out.Stats.Parallel, out.Stats.Duration)

	w, closeFn, err := openOutput(opts.OutputFile)
	if err != nil {
		return err
	}
	defer closeFn()

	return writeOutput(w, text, out, OutputMode(strings.ToLower(opts.Mode)))
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	if fileutil.HasStdin() {
		return io.ReadAll(os.Stdin)
	}
	return nil, fmt.Errorf("boundaryx: no input found (use -input or pipe text on stdin)")
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func writeOutput(w io.Writer, text []byte, out boundaryx.Output, mode OutputMode) error {
	switch mode {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case OutputOffsets:
		for _, b := range out.Boundaries {
			if _, err := fmt.Fprintf(w, "%d\t%d\t%s\n", b.ByteOffset, b.CharOffset, b.Kind); err != nil {
				return err
			}
		}
		return nil
	default:
		dw := boundaryx.NewDedupingWriter(w)
		defer dw.Close()
		start := uint64(0)
		for _, b := range out.Boundaries {
			sentence := strings.TrimSpace(string(text[start:b.ByteOffset]))
			if sentence != "" {
				if _, err := dw.Write([]byte(sentence + "\n")); err != nil {
					return err
				}
			}
			start = b.ByteOffset
		}
		return nil
	}
}
