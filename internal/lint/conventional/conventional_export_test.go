package conventional

import (
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Test helpers - exported for testing only

// ParsedArgs mirrors cliArgs for tests.
type ParsedArgs struct {
	PRTitle    string
	Base       string
	Head       string
	ConfigPath string
	Backend    string
	GitTimeout string
	Verbose    bool
}

// ParseArgsForTesting exposes parseArgs for testing.
func ParseArgsForTesting(args []string, usage io.Writer) (ParsedArgs, error) {
	parsed, err := parseArgs(args, usage)

	timeout := ""
	if parsed.gitTimeout != 0 {
		timeout = parsed.gitTimeout.String()
	}

	return ParsedArgs{
		PRTitle:    parsed.prTitle,
		Base:       parsed.base,
		Head:       parsed.head,
		ConfigPath: parsed.configPath,
		Backend:    parsed.backend,
		GitTimeout: timeout,
		Verbose:    parsed.verbose,
	}, err
}

// ParseLogOutputForTesting exposes parseLogOutput for testing.
func ParseLogOutputForTesting(output string) ([]Commit, error) {
	return parseLogOutput(output)
}

// SubjectLineForTesting exposes subjectLine for testing.
func SubjectLineForTesting(message string) string {
	return subjectLine(message)
}

// ResolveRevisionForTesting exposes resolveRevision for testing.
func ResolveRevisionForTesting(repo *git.Repository, revision string) (*object.Commit, error) {
	return resolveRevision(repo, revision)
}

// ValidateConfigForTesting exposes Config.validate for testing.
func ValidateConfigForTesting(config Config) error {
	return config.validate()
}
