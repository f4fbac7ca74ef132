package conventional

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the name of the optional settings file.
const DefaultConfigFile = ".conventional-lint.yml"

// Backend selects how commit ranges are read.
type Backend string

const (
	// BackendGit runs the git binary.
	BackendGit Backend = "git"
	// BackendGoGit reads the repository with go-git.
	BackendGoGit Backend = "go-git"
)

// Config holds the runtime settings of the linter. The header grammar is
// fixed and not configurable.
type Config struct {
	Backend    Backend       `yaml:"backend,omitempty"`
	GitBinary  string        `yaml:"git_binary,omitempty"`
	GitTimeout time.Duration `yaml:"git_timeout,omitempty"`
	Repository string        `yaml:"repository,omitempty"`
}

// DefaultConfig returns the settings used when no settings file exists.
func DefaultConfig() Config {
	return Config{
		Backend:    BackendGit,
		GitBinary:  defaultGitBinary,
		GitTimeout: defaultTimeout,
		Repository: ".",
	}
}

// LoadConfig loads and validates settings from path.
// A missing file is only an error if required is set.
func LoadConfig(path string, required bool) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return config, nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	err = config.validate()
	if err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (c Config) validate() error {
	if c.Backend != BackendGit && c.Backend != BackendGoGit {
		return fmt.Errorf("backend must be '%s' or '%s', got %q", BackendGit, BackendGoGit, c.Backend)
	}

	if c.Backend == BackendGit && c.GitBinary == "" {
		return errors.New("git_binary must not be empty")
	}

	if c.GitTimeout <= 0 {
		return fmt.Errorf("git_timeout must be positive, got %s", c.GitTimeout)
	}

	if c.Repository == "" {
		return errors.New("repository must not be empty")
	}

	return nil
}

// Lister builds the CommitLister for the configured backend.
func (c Config) Lister(logger *slog.Logger) CommitLister {
	if c.Backend == BackendGoGit {
		return RepositoryLister{Path: c.Repository, Timeout: c.GitTimeout, Logger: logger}
	}

	return GitLog{
		Binary:  c.GitBinary,
		Dir:     c.Repository,
		Timeout: c.GitTimeout,
		Logger:  logger,
	}
}
