package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	manuscript "github.com/alnah/go-manuscript"
	"github.com/alnah/go-manuscript/internal/fileutil"
)

// Batch errors.
var (
	ErrNoMarkdownFiles    = errors.New("no markdown files found")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrBatchFailed        = errors.New("some conversions failed")
)

// runBatch converts every manuscript under a directory.
func runBatch(ctx context.Context, args []string, env *Environment) error {
	flags, rest, err := parseBatchFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: batch takes exactly one input directory", ErrUsage)
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	log := env.logger(flags.common)
	// A malformed GOMAXPROCS only makes Set fail; the runtime default stays.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Debug(fmt.Sprintf(format, args...))
	}))

	cfg, err := loadConfig(flags.common, flags.toc)
	if err != nil {
		return err
	}
	formats, err := manuscript.ParseFormats(flags.out.formats)
	if err != nil {
		return err
	}

	root := rest[0]
	outDir := resolveOutputDir(flags.out.output, cfg)
	files, err := discoverFiles(root, outDir, !flags.noRecursive)
	switch {
	case err != nil:
		return fmt.Errorf("collecting manuscripts: %w", err)
	case len(files) == 0:
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, root)
	}

	workers := min(manuscript.ResolvePoolSize(flags.workers), len(files))
	log.Debug("starting batch", "files", len(files), "workers", workers, "output_dir", outDir)

	pool := env.NewPool(workers, converterOptions(cfg, flags.out)...)
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			log.Warn("closing converter pool", "err", cerr)
		}
	}()

	results := convertBatch(ctx, pool, files, &conversionParams{formats: formats})
	if failed := printResults(results, flags.common, env); failed > 0 {
		return reported(fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(results)))
	}
	return nil
}

// convertBatch spreads files over min(pool size, len(files)) workers, each
// holding one converter for its whole run. results[i] belongs to files[i].
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	queue := make(chan int, len(files))
	for i := range files {
		queue <- i
	}
	close(queue)

	var wg sync.WaitGroup
	for range min(pool.Size(), len(files)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			drain(ctx, pool, queue, files, results, params)
		}()
	}
	wg.Wait()
	return results
}

// drain is one batch worker. When no converter can be built, every job the
// worker pulls fails with ErrConverterInit instead of stalling the queue.
func drain(ctx context.Context, pool Pool, queue <-chan int, files []FileToConvert, results []ConversionResult, params *conversionParams) {
	conv, acquireErr := pool.Acquire()
	if acquireErr == nil {
		defer pool.Release(conv)
	}

	for i := range queue {
		switch {
		case acquireErr != nil:
			results[i] = failedResult(files[i], fmt.Errorf("%w: %w", ErrConverterInit, acquireErr))
		case ctx.Err() != nil:
			results[i] = failedResult(files[i], ctx.Err())
		default:
			results[i] = convertFile(ctx, conv, files[i], params)
		}
	}
}

func failedResult(f FileToConvert, err error) ConversionResult {
	return ConversionResult{InputPath: f.InputPath, Err: err}
}

// discoverFiles finds the manuscripts under inputPath. Each file's output
// directory mirrors its directory relative to inputPath inside outputDir.
// A single file is accepted too.
func discoverFiles(inputPath, outputDir string, recursive bool) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	switch {
	case err != nil:
		return nil, err
	case !info.IsDir() && !fileutil.IsMarkdown(inputPath):
		return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, inputPath)
	case !info.IsDir():
		return []FileToConvert{{InputPath: inputPath, OutputDir: outputDir}}, nil
	}

	var files []FileToConvert
	visit := func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("scanning %s: %w", path, walkErr)
		}
		if d.IsDir() {
			return descend(path == inputPath, recursive, d.Name())
		}
		if fileutil.IsMarkdown(path) {
			files = append(files, FileToConvert{InputPath: path, OutputDir: mirrorDir(inputPath, path, outputDir)})
		}
		return nil
	}
	if err := filepath.WalkDir(inputPath, visit); err != nil {
		return nil, err
	}
	return files, nil
}

// descend decides whether the walk enters a directory. The root is always
// entered; hidden directories never are.
func descend(isRoot, recursive bool, name string) error {
	if isRoot || (recursive && !strings.HasPrefix(name, ".")) {
		return nil
	}
	return fs.SkipDir
}

// mirrorDir returns outputDir joined with the directory of path relative to
// baseDir.
func mirrorDir(baseDir, path, outputDir string) string {
	rel, err := filepath.Rel(baseDir, filepath.Dir(path))
	if err != nil || rel == "." {
		return outputDir
	}
	return filepath.Join(outputDir, rel)
}

// validateWorkers accepts 0 (automatic) through MaxPoolSize.
func validateWorkers(n int) error {
	switch {
	case n < 0:
		return fmt.Errorf("%w: %d is negative, use 0 for automatic sizing", ErrInvalidWorkerCount, n)
	case n > manuscript.MaxPoolSize:
		return fmt.Errorf("%w: %d exceeds the limit of %d", ErrInvalidWorkerCount, n, manuscript.MaxPoolSize)
	}
	return nil
}

// ResultSummary tallies a batch.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

func countResults(results []ConversionResult) ResultSummary {
	var s ResultSummary
	for _, r := range results {
		if r.Err == nil {
			s.Succeeded++
			continue
		}
		s.Failed++
	}
	return s
}

// printResults reports every written file and every failure, and returns
// the number of failed inputs. Outputs written before a failure are listed.
func printResults(results []ConversionResult, flags commonFlags, env *Environment) int {
	for _, r := range results {
		if !flags.quiet {
			printOutputs(env, r, flags.verbose)
		}
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err, r.InputPath))
		}
	}

	s := countResults(results)
	if !flags.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", s.Succeeded, s.Failed)
	}
	return s.Failed
}

func printOutputs(env *Environment, r ConversionResult, verbose bool) {
	took := r.Duration.Round(time.Millisecond)
	for _, out := range r.Outputs {
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, out, took)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", out)
		}
	}
}
