package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	manuscript "github.com/alnah/go-manuscript"
	"github.com/alnah/go-manuscript/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrCreateOutputDir  = errors.New("failed to create output directory")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrConverterInit    = errors.New("failed to initialize converter")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// FileToConvert is one manuscript and the directory its outputs go to.
type FileToConvert struct {
	InputPath string
	OutputDir string
}

// ConversionResult holds the outcome of a single conversion.
// Outputs lists the files written, even when some formats failed.
type ConversionResult struct {
	InputPath string
	Outputs   []string
	Pages     int
	Err       error
	Duration  time.Duration
}

// conversionParams groups parameters shared across files.
type conversionParams struct {
	formats []manuscript.Format
	title   string
	author  string
}

// runConvert converts one manuscript into every requested format.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, rest, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: convert takes exactly one input file", ErrUsage)
	}
	input := rest[0]
	if !fileutil.IsMarkdown(input) {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, input)
	}

	log := env.logger(flags.common)
	cfg, err := loadConfig(flags.common, flags.toc)
	if err != nil {
		return err
	}
	formats, err := manuscript.ParseFormats(flags.out.formats)
	if err != nil {
		return err
	}

	outDir := resolveOutputDir(flags.out.output, cfg)
	log.Debug("converting", "input", input, "output_dir", outDir, "formats", formats)

	pool := env.NewPool(1, converterOptions(cfg, flags.out)...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.Warn("closing converter", "err", err)
		}
	}()

	results := convertBatch(ctx, pool, []FileToConvert{{InputPath: input, OutputDir: outDir}}, &conversionParams{
		formats: formats,
		title:   flags.title,
		author:  flags.author,
	})
	if failed := printResults(results, flags.common, env); failed > 0 {
		return reported(results[0].Err)
	}
	return nil
}

// convertFile converts a single manuscript and writes each produced output.
// Formats that succeeded are written even when others failed.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) (result ConversionResult) {
	start := time.Now()
	result = ConversionResult{InputPath: f.InputPath}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- user-provided or discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return result
	}

	if err := os.MkdirAll(f.OutputDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
		return result
	}

	res, convErr := conv.Convert(ctx, manuscript.Input{
		Markdown:  string(content),
		SourceDir: filepath.Dir(f.InputPath),
		Formats:   params.formats,
		Title:     params.title,
		Author:    params.author,
	})
	if res == nil {
		result.Err = convErr
		return result
	}

	errs := []error{convErr}
	for _, format := range res.Formats {
		data := res.Output(format)
		if data == nil {
			continue
		}
		path := fileutil.OutputPath(f.OutputDir, f.InputPath, string(format))
		if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err))
			continue
		}
		result.Outputs = append(result.Outputs, path)
	}
	result.Pages = res.PDFPages
	result.Err = errors.Join(errs...)
	return result
}

// reportedError marks an error already printed by the command.
// main keeps its exit code but does not print it again.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}
