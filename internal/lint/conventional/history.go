package conventional

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const (
	shortHashLength  = 12
	logFieldSep      = "\t"
	defaultGitBinary = "git"
	defaultTimeout   = 10 * time.Second
	waitDelay        = time.Second
)

// ErrMalformedOutput is returned when a git log line lacks the field separator.
var ErrMalformedOutput = errors.New("malformed git log output")

// Commit is a non-merge commit of a range.
type Commit struct {
	Hash    string
	Subject string
}

// ShortHash returns the first 12 characters of the commit hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) <= shortHashLength {
		return c.Hash
	}

	return c.Hash[:shortHashLength]
}

// CommitLister lists the non-merge commits in base..head.
type CommitLister interface {
	CommitsBetween(ctx context.Context, base string, head string) ([]Commit, error)
}

// RangeError reports that the commits of a range could not be read.
type RangeError struct {
	Range  string
	Output string
	Err    error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("unable to read commit range %s: %v", e.Range, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

// GitLog lists commits by running `git log` in Dir.
type GitLog struct {
	Binary  string
	Dir     string
	Timeout time.Duration
	Logger  *slog.Logger
}

// CommitsBetween runs git log for base..head, excluding merge commits.
func (g GitLog) CommitsBetween(ctx context.Context, base string, head string) ([]Commit, error) {
	commitRange := fmt.Sprintf("%s..%s", base, head)

	binary := g.Binary
	if binary == "" {
		binary = defaultGitBinary
	}

	timeout := g.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := g.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{"log", "--no-merges", "--format=%H%x09%s", commitRange}
	logger.DebugContext(ctx, "running git", "binary", binary, "args", args, "dir", g.Dir, "timeout", timeout)

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = g.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}

		return nil, &RangeError{Range: commitRange, Output: stdout.String() + stderr.String(), Err: err}
	}

	if stderr.Len() > 0 {
		logger.DebugContext(ctx, "git wrote to stderr", "stderr", stderr.String())
	}

	commits, err := parseLogOutput(stdout.String())
	if err != nil {
		return nil, &RangeError{Range: commitRange, Output: stdout.String(), Err: err}
	}

	logger.DebugContext(ctx, "read commit range", "range", commitRange, "commits", len(commits))

	return commits, nil
}

// parseLogOutput parses `%H<TAB>%s` lines. The subject is everything after
// the first separator and may contain further tabs or be empty.
func parseLogOutput(output string) ([]Commit, error) {
	output = strings.TrimRight(output, "\r\n")
	if output == "" {
		return nil, nil
	}

	lines := strings.Split(output, "\n")
	commits := make([]Commit, 0, len(lines))

	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")

		hash, subject, found := strings.Cut(line, logFieldSep)
		if !found {
			return nil, fmt.Errorf("%w: line %d has no tab separator: %q", ErrMalformedOutput, i+1, line)
		}

		commits = append(commits, Commit{Hash: hash, Subject: subject})
	}

	return commits, nil
}
