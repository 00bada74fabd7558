package main

import (
	"io"
	"log/slog"
	"os"

	manuscript "github.com/alnah/go-manuscript"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	// NewPool builds the converter pool used by convert and batch.
	NewPool func(size int, opts ...manuscript.Option) Pool
}

// DefaultEnv returns the production environment backed by real converters.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newConverterPool,
	}
}

// logger returns a text logger on Stderr. Verbose enables debug records and
// quiet keeps errors only.
func (e *Environment) logger(f commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.quiet:
		level = slog.LevelError
	case f.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(e.Stderr, &slog.HandlerOptions{Level: level}))
}
