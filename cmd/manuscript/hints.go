package main

import (
	"context"
	"errors"
	"os"

	manuscript "github.com/alnah/go-manuscript"
	"github.com/alnah/go-manuscript/internal/config"
	"github.com/alnah/go-manuscript/internal/hints"
	"github.com/alnah/go-manuscript/internal/metadata"
)

// hintFor returns an actionable hint for err, or "" when none applies.
// path names the manuscript involved, if any.
func hintFor(err error, path string) string {
	var notFound *config.NotFoundError
	switch {
	case errors.Is(err, manuscript.ErrBrowserConnect):
		return hints.ForBrowserConnect(hints.Detect(os.Getenv))
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, manuscript.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, manuscript.ErrUnknownFormat):
		return hints.ForUnknownFormat(formatNames())
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, metadata.ErrFrontMatter) && path != "":
		return hints.ForInvalidManuscript(path)
	}
	return ""
}

func formatNames() []string {
	names := make([]string, len(manuscript.AllFormats))
	for i, f := range manuscript.AllFormats {
		names[i] = string(f)
	}
	return names
}
