package conventional

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// allowedTypes is the fixed set of header types, in the order they are reported.
var allowedTypes = [...]string{
	"build",
	"chore",
	"ci",
	"docs",
	"feat",
	"fix",
	"perf",
	"refactor",
	"revert",
	"style",
	"test",
}

// headerRegex matches `type(scope)!: description`. The scope excludes
// parentheses and line breaks, the description must start with a
// non-space character and must not contain line breaks.
var headerRegex = regexp.MustCompile(
	`^(` + strings.Join(allowedTypes[:], "|") + `)` +
		`(?:\(([^()\r\n]+)\))?` +
		`(!)?` +
		`: ` +
		`(\S[^\r\n]*)$`,
)

// ErrEmptyHeader is returned for headers that are empty after trimming.
var ErrEmptyHeader = errors.New("empty")

// HeaderError reports a header that does not match the Conventional Commits grammar.
type HeaderError struct {
	Header string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf(
		"does not match Conventional Commits header format `type(scope)!: description` with type in [%s]",
		strings.Join(allowedTypes[:], " "),
	)
}

// Header is a parsed Conventional Commits header.
type Header struct {
	Type        string
	Scope       string
	Breaking    bool
	Description string
}

// AllowedTypes returns the header types accepted by ValidateHeader.
func AllowedTypes() []string {
	types := make([]string, len(allowedTypes))
	copy(types, allowedTypes[:])

	return types
}

// ParseHeader splits a header into its parts.
// Leading and trailing whitespace is ignored.
func ParseHeader(header string) (Header, error) {
	trimmed := strings.TrimSpace(header)
	if trimmed == "" {
		return Header{}, ErrEmptyHeader
	}

	const (
		typeGroup = iota + 1
		scopeGroup
		breakingGroup
		descriptionGroup
	)

	matches := headerRegex.FindStringSubmatch(trimmed)
	if matches == nil {
		return Header{}, &HeaderError{Header: header}
	}

	return Header{
		Type:        matches[typeGroup],
		Scope:       matches[scopeGroup],
		Breaking:    matches[breakingGroup] != "",
		Description: matches[descriptionGroup],
	}, nil
}

// ValidateHeader checks a single-line header against the Conventional Commits grammar.
// It returns ErrEmptyHeader or a *HeaderError on failure.
func ValidateHeader(header string) error {
	_, err := ParseHeader(header)
	return err
}
