package conventional

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// ErrLintFailed is returned by Run when the report contains errors.
var ErrLintFailed = errors.New("conventional commits lint failed")

// Options selects what Lint checks. Empty fields disable the corresponding check.
type Options struct {
	PRTitle string
	Base    string
	Head    string
}

// Linter checks PR titles and commit ranges. A nil Lister runs git log in
// the working directory.
type Linter struct {
	Lister CommitLister
	Logger *slog.Logger
}

// Lint runs every requested check and collects all errors.
// The commit range is only checked if both Base and Head are set.
func (l Linter) Lint(ctx context.Context, opts Options) *Report {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	report := &Report{}

	if opts.PRTitle != "" {
		err := ValidateHeader(opts.PRTitle)
		if err != nil {
			report.addTitleError(opts.PRTitle, err)
		}
	}

	if opts.Base == "" || opts.Head == "" {
		if opts.Base != "" || opts.Head != "" {
			logger.WarnContext(ctx, "skipping commit range check, both --base and --head are required",
				"base", opts.Base, "head", opts.Head)
		}

		return report
	}

	lister := l.Lister
	if lister == nil {
		lister = GitLog{Logger: logger}
	}

	commits, err := lister.CommitsBetween(ctx, opts.Base, opts.Head)
	if err != nil {
		logger.DebugContext(ctx, "failed to read commit range", "error", err)
		report.addRangeError(opts.Base, opts.Head, err)

		return report
	}

	for _, commit := range commits {
		validateErr := ValidateHeader(commit.Subject)
		if validateErr != nil {
			report.addCommitError(commit, validateErr)
		}
	}

	return report
}

type cliArgs struct {
	prTitle    string
	base       string
	head       string
	configPath string
	backend    string
	gitTimeout time.Duration
	verbose    bool
}

// parseArgs parses command-line arguments. args[0] is the program name.
// Usage is written to usage only if help was requested.
func parseArgs(args []string, usage io.Writer) (cliArgs, error) {
	var parsed cliArgs

	if len(args) == 0 {
		return parsed, nil
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Don't print default error messages

	fs.StringVar(&parsed.prTitle, "pr-title", "", "PR title to lint")
	fs.StringVar(&parsed.base, "base", "", "Base ref or SHA for commit range")
	fs.StringVar(&parsed.head, "head", "", "Head ref or SHA for commit range")
	fs.StringVar(&parsed.configPath, "config", "", "Settings file (default "+DefaultConfigFile+")")
	fs.StringVar(&parsed.backend, "backend", "", "Commit range backend: git or go-git")
	fs.DurationVar(&parsed.gitTimeout, "git-timeout", 0, "Timeout for reading the commit range (both backends)")
	fs.BoolVar(&parsed.verbose, "verbose", false, "Log diagnostics to stderr")

	err := fs.Parse(args[1:])
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(usage, "Usage of %s:\n", args[0])
		fs.SetOutput(usage)
		fs.PrintDefaults()

		return cliArgs{}, err
	}

	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	if fs.NArg() > 0 {
		return cliArgs{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return parsed, nil
}

// loadConfig reads the settings file and applies flag overrides.
func loadConfig(parsed cliArgs) (Config, error) {
	path := parsed.configPath
	required := path != ""
	if path == "" {
		path = DefaultConfigFile
	}

	config, err := LoadConfig(path, required)
	if err != nil {
		return Config{}, err
	}

	if parsed.backend != "" {
		config.Backend = Backend(parsed.backend)
	}

	if parsed.gitTimeout != 0 {
		config.GitTimeout = parsed.gitTimeout
	}

	err = config.validate()
	if err != nil {
		return Config{}, fmt.Errorf("invalid arguments: %w", err)
	}

	return config, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Run lints the PR title and commit range given in args and writes the
// report to stdout. Diagnostics go to stderr. It returns ErrLintFailed if
// any check failed.
func Run(ctx context.Context, stdout io.Writer, stderr io.Writer, args []string) error {
	parsed, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}

	if err != nil {
		return err
	}

	config, err := loadConfig(parsed)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, parsed.verbose)

	linter := Linter{
		Lister: config.Lister(logger),
		Logger: logger,
	}

	report := linter.Lint(ctx, Options{
		PRTitle: parsed.prTitle,
		Base:    parsed.base,
		Head:    parsed.head,
	})

	_, err = report.WriteTo(stdout)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if report.Failed() {
		return ErrLintFailed
	}

	return nil
}
