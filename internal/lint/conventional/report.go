package conventional

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// examples are the valid headers printed with a failing report.
var examples = [...]string{
	"feat(ui): add mobile more menu drawer",
	"fix(auth)!: redirect on invalid session cookie",
	"docs: document local dev setup",
}

// Report collects lint errors in the order they were found.
type Report struct {
	Errors []string
}

// Failed reports whether any error was recorded.
func (r *Report) Failed() bool {
	return len(r.Errors) > 0
}

func (r *Report) addTitleError(title string, err error) {
	r.Errors = append(r.Errors, fmt.Sprintf("PR title: %v\n  title: %s", err, title))
}

func (r *Report) addCommitError(commit Commit, err error) {
	r.Errors = append(r.Errors, fmt.Sprintf("Commit %s: %v\n  subject: %s", commit.ShortHash(), err, commit.Subject))
}

func (r *Report) addRangeError(base string, head string, err error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Unable to read commit range via git log.\n  range: %s..%s\n", base, head))

	var rangeErr *RangeError
	if errors.As(err, &rangeErr) {
		sb.WriteString(fmt.Sprintf("  output: %s\n", strings.TrimRight(rangeErr.Output, "\r\n")))
		sb.WriteString(fmt.Sprintf("  error: %v", rangeErr.Err))
	} else {
		sb.WriteString(fmt.Sprintf("  output: %v", err))
	}

	r.Errors = append(r.Errors, sb.String())
}

// WriteTo writes the pass or fail report to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder

	if !r.Failed() {
		sb.WriteString("Conventional Commits lint passed.\n")
	} else {
		sb.WriteString("Conventional Commits lint failed:\n\n")

		for _, e := range r.Errors {
			sb.WriteString(fmt.Sprintf("- %s\n\n", e))
		}

		sb.WriteString("Examples:\n")
		for _, example := range examples {
			sb.WriteString(fmt.Sprintf("  %s\n", example))
		}
	}

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}
