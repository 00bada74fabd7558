package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags selects what is written and where.
type outputFlags struct {
	output    string
	formats   []string
	timeout   time.Duration
	assetPath string
}

// tocFlags overrides the toc section of the config.
type tocFlags struct {
	disabled bool
	depth    int
	depthSet bool // --toc-depth given explicitly
}

// convertFlags holds flags for the convert command.
type convertFlags struct {
	common commonFlags
	out    outputFlags
	toc    tocFlags
	title  string
	author string
}

// batchFlags holds flags for the batch command.
type batchFlags struct {
	common      commonFlags
	out         outputFlags
	toc         tocFlags
	workers     int
	noRecursive bool
}

// validateFlags holds flags for the validate command.
type validateFlags struct {
	quiet bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
}

func addOutputFlags(fs *flag.FlagSet, f *outputFlags, outputUsage string) {
	fs.StringVarP(&f.output, "output", "o", "", outputUsage)
	fs.StringSliceVarP(&f.formats, "formats", "f", nil, "output formats: html, docx, pdf")
	fs.DurationVar(&f.timeout, "timeout", 0, "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding embedded styles, template, and script")
}

func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.disabled, "no-toc", false, "disable table of contents")
	fs.IntVar(&f.depth, "toc-depth", 0, "max heading depth in the table of contents (1-6)")
}

// newFlagSet returns a flag set that reports errors and usage on w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.SortFlags = false
	fs.Usage = func() { usage(w) }
	return fs
}

// parse parses args and wraps flag errors in ErrUsage. flag.ErrHelp is
// returned as is.
func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("convert", w, printConvertUsage)

	addOutputFlags(fs, &f.out, "output directory")
	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.title, "title", "", "document title (overrides the manuscript)")
	fs.StringVar(&f.author, "author", "", "document author (overrides the manuscript)")
	addTOCFlags(fs, &f.toc)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	f.toc.depthSet = fs.Changed("toc-depth")
	return f, fs.Args(), nil
}

// parseBatchFlags parses batch command flags and returns positional args.
func parseBatchFlags(args []string, w io.Writer) (*batchFlags, []string, error) {
	f := &batchFlags{}
	fs := newFlagSet("batch", w, printBatchUsage)

	addOutputFlags(fs, &f.out, "output directory (relative paths are mirrored)")
	addCommonFlags(fs, &f.common)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.noRecursive, "no-recursive", false, "do not descend into subdirectories")
	addTOCFlags(fs, &f.toc)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	f.toc.depthSet = fs.Changed("toc-depth")
	return f, fs.Args(), nil
}

// parseValidateFlags parses validate command flags and returns positional args.
func parseValidateFlags(args []string, w io.Writer) (*validateFlags, []string, error) {
	f := &validateFlags{}
	fs := newFlagSet("validate", w, printValidateUsage)
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only report manuscripts that fail")

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
