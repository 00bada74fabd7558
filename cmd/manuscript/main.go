package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command in args[1] and returns the exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "convert", "batch", "validate":
		ctx, stop := notifyContext(context.Background())
		defer stop()
		err = runCommand(ctx, cmd, rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "manuscript %s\n", Version)
	case "help", "-h", "--help":
		err = runHelp(rest, env)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		var done *reportedError
		if !errors.As(err, &done) {
			fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, ""))
		}
	}
	return exitCodeFor(err)
}

func runCommand(ctx context.Context, cmd string, args []string, env *Environment) error {
	switch cmd {
	case "convert":
		return runConvert(ctx, args, env)
	case "batch":
		return runBatch(ctx, args, env)
	default:
		return runValidate(ctx, args, env)
	}
}
