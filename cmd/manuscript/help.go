package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: manuscript <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a manuscript to HTML, DOCX, and PDF")
	fmt.Fprintln(w, "  batch      Convert every manuscript in a directory")
	fmt.Fprintln(w, "  validate   Check manuscripts for structural problems")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'manuscript help <command>' for details on a specific command.")
}

func printOutputFlags(w io.Writer) {
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -f, --formats <list>      Formats to write: html, docx, pdf (default from config)")
	fmt.Fprintln(w, "      --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --asset-path <dir>    Override embedded styles, template, and script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --no-toc              Disable table of contents")
	fmt.Fprintln(w, "      --toc-depth <n>       Max heading depth (1-6)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed output")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: manuscript convert <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert one manuscript. Outputs are named after the input file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default from config output.output_dir)")
	fmt.Fprintln(w, "      --title <s>           Title, overriding the manuscript")
	fmt.Fprintln(w, "      --author <s>          Author, overriding the manuscript")
	fmt.Fprintln(w)
	printOutputFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  manuscript convert paper.md")
	fmt.Fprintln(w, "  manuscript convert paper.md -o build -f pdf,docx")
	fmt.Fprintln(w, "  manuscript convert paper.md -c journal --no-toc")
}

// printBatchUsage prints usage for the batch command.
func printBatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: manuscript batch <input-dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert every .md and .markdown file under a directory. Subdirectories")
	fmt.Fprintln(w, "are mirrored into the output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Batch:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default from config output.output_dir)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --no-recursive        Do not descend into subdirectories")
	fmt.Fprintln(w)
	printOutputFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  manuscript batch ./papers -o ./build")
	fmt.Fprintln(w, "  manuscript batch ./papers -w 4 -f html")
}

// printValidateUsage prints usage for the validate command.
func printValidateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: manuscript validate <input.md>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report missing metadata, sections, captions, citations, and references.")
	fmt.Fprintln(w, "Exits with status 2 when a manuscript has errors.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -q, --quiet               Only report manuscripts that fail")
}

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "batch":
		printBatchUsage(env.Stdout)
	case "validate":
		printValidateUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: manuscript version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: manuscript help [command]")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
