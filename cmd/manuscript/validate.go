package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-manuscript/internal/validate"
)

// ErrInvalidManuscript is returned when at least one manuscript has errors.
var ErrInvalidManuscript = errors.New("invalid manuscript")

// runValidate prints a report for each manuscript. Unreadable files are
// reported and the remaining ones still checked.
func runValidate(ctx context.Context, args []string, env *Environment) error {
	flags, paths, err := parseValidateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: validate takes at least one input file", ErrUsage)
	}

	var invalid int
	var errs []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		report, err := validate.ValidateFile(path)
		if err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", path, err, hintFor(err, path))
			errs = append(errs, err)
			continue
		}
		if !report.Valid() {
			invalid++
		}
		if flags.quiet && report.Valid() {
			continue
		}
		report.Write(env.Stdout)
	}

	if invalid > 0 {
		errs = append(errs, fmt.Errorf("%w: %d of %d", ErrInvalidManuscript, invalid, len(paths)))
	}
	return reported(errors.Join(errs...))
}
