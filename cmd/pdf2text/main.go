package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	pdf2text "github.com/alnah/go-pdf2text"
	"github.com/alnah/go-pdf2text/internal/config"
	"github.com/alnah/go-pdf2text/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches commands and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd := args[1]
	rest := args[2:]

	switch cmd {
	case "convert":
		return reportError(env, runConvert(ctx, rest, env))
	case "inspect":
		return runInspectCmd(rest, env)
	case "completion":
		return reportError(env, runCompletion(rest, env))
	case "version":
		fmt.Fprintf(env.Stdout, "pdf2text %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	}

	// Bare flags or document paths run convert, matching the single-command
	// usage pdf2text inherits from classic extractors.
	if looksLikeConvertArgs(args[1:]) {
		return reportError(env, runConvert(ctx, args[1:], env))
	}

	fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// looksLikeConvertArgs reports whether the arguments form an implicit
// convert invocation: a flag or a document path in first position.
func looksLikeConvertArgs(args []string) bool {
	if len(args) == 0 {
		return false
	}
	if strings.HasPrefix(args[0], "-") {
		return true
	}
	return strings.EqualFold(filepath.Ext(args[0]), ".pdf")
}

// hasVerboseFlag scans raw arguments for the verbose flag before parsing.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}

// reportError prints the error with a recovery hint and maps it to an exit code.
func reportError(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, errorWithHint(err))
	return exitCodeFor(err)
}

// errorWithHint appends a recovery hint to errors users can act on.
func errorWithHint(err error) string {
	msg := err.Error()

	switch {
	case errors.Is(err, pdf2text.ErrDocumentOpen) && strings.Contains(msg, "invalid password"):
		return msg + hints.ForEncryptedDocument()
	case errors.Is(err, pdf2text.ErrDocumentOpen), errors.Is(err, pdf2text.ErrNotExtractable):
		return msg + hints.ForDamagedDocument()
	case errors.Is(err, pdf2text.ErrSinkCreate), errors.Is(err, pdf2text.ErrChapterDir):
		return msg + hints.ForOutputDirectory()
	case errors.Is(err, pdf2text.ErrUnknownEncoding):
		return msg + hints.ForUnknownEncoding()
	case errors.Is(err, config.ErrConfigNotFound):
		return msg + hints.ForConfigNotFound(nil)
	}

	return msg
}
