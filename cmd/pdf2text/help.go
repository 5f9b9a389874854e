package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2text <command> [flags] [args]")
	fmt.Fprintln(w, "       pdf2text [flags] <file.pdf>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert documents to text, HTML, XML or tagged output")
	fmt.Fprintln(w, "  inspect    Check document health and report page counts")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bare document paths run the convert command.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pdf2text help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2text convert [flags] <file.pdf>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert PDF documents to flat text, HTML, XML or tagged output.")
	fmt.Fprintln(w, "All documents are written to a single destination in input order.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "  -t, --format <s>          Format: text, html, xml, tag")
	fmt.Fprintln(w, "                            Default: inferred from output extension")
	fmt.Fprintln(w, "  -c, --encoding <s>        Output encoding for files (default: utf-8)")
	fmt.Fprintln(w, "  -S, --strip-control       Strip control characters in XML output")
	fmt.Fprintln(w, "      --chapterize <word>   Split text output into chapter files on keyword")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page Selection:")
	fmt.Fprintln(w, "  -p, --pages <list>        Comma-separated page numbers (1-based)")
	fmt.Fprintln(w, "  -m, --max-pages <n>       Max pages to render per document (0 = all)")
	fmt.Fprintln(w, "  -R, --rotation <deg>      Extra rotation in degrees")
	fmt.Fprintln(w, "  -P, --password <s>        Document password")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout Analysis:")
	fmt.Fprintln(w, "  -n, --no-layout           Keep content stream order, skip analysis")
	fmt.Fprintln(w, "  -V, --detect-vertical     Consider vertical writing")
	fmt.Fprintln(w, "  -M, --char-margin <f>     Max gap bridged inside a line (default: 2.0)")
	fmt.Fprintln(w, "  -L, --line-margin <f>     Max baseline drift within a line (default: 0.5)")
	fmt.Fprintln(w, "  -W, --word-margin <f>     Min gap separating words (default: 0.1)")
	fmt.Fprintln(w, "  -F, --boxes-flow <f>      Reading order weight, -1 to 1 (default: 0.5)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "HTML Output:")
	fmt.Fprintln(w, "  -s, --scale <f>           Coordinate scale (default: 1.0)")
	fmt.Fprintln(w, "  -Y, --layout-mode <s>     Mode: normal, loose, exact")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Misc:")
	fmt.Fprintln(w, "  -O, --image-dir <path>    Extract embedded images into directory")
	fmt.Fprintln(w, "  -C, --no-cache            Disable the per-document font cache")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-document progress")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2text inspect [--json] <file.pdf>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check document health: structure validity, size and page count.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --json    Output results as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pdf2text version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pdf2text help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
