package conventional

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RepositoryLister lists commits by reading the repository at Path with go-git,
// without requiring a git binary.
type RepositoryLister struct {
	Path    string
	Timeout time.Duration
	Logger  *slog.Logger
}

// CommitsBetween returns the non-merge commits reachable from head but not
// from base, newest first.
func (r RepositoryLister) CommitsBetween(ctx context.Context, base string, head string) ([]Commit, error) {
	commitRange := fmt.Sprintf("%s..%s", base, head)

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	commits, err := r.commitsBetween(ctx, base, head)
	if err != nil {
		return nil, &RangeError{Range: commitRange, Err: err}
	}

	if r.Logger != nil {
		r.Logger.DebugContext(ctx, "read commit range", "range", commitRange, "commits", len(commits), "path", r.Path)
	}

	return commits, nil
}

func (r RepositoryLister) commitsBetween(ctx context.Context, base string, head string) ([]Commit, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	path := r.Path
	if path == "" {
		path = "."
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	baseCommit, err := resolveRevision(repo, base)
	if err != nil {
		return nil, err
	}

	headCommit, err := resolveRevision(repo, head)
	if err != nil {
		return nil, err
	}

	// Everything reachable from base is outside the range.
	excluded := make(map[plumbing.Hash]bool)
	baseIter := object.NewCommitIterCTime(baseCommit, nil, nil)
	err = baseIter.ForEach(func(c *object.Commit) error {
		excluded[c.Hash] = true
		return ctx.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate base commits: %w", err)
	}

	var commits []Commit
	headIter := object.NewCommitIterCTime(headCommit, excluded, nil)
	err = headIter.ForEach(func(c *object.Commit) error {
		if excluded[c.Hash] || c.NumParents() > 1 {
			return ctx.Err()
		}

		commits = append(commits, Commit{
			Hash:    c.Hash.String(),
			Subject: subjectLine(c.Message),
		})

		return ctx.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate head commits: %w", err)
	}

	return commits, nil
}

// resolveRevision resolves a ref name or SHA to a commit object.
// Tries as revision first (branches, tags, HEAD, HEAD^), then as full SHA.
func resolveRevision(repo *git.Repository, revision string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err == nil {
		commit, commitErr := repo.CommitObject(*hash)
		if commitErr == nil {
			return commit, nil
		}
	}

	commit, err := repo.CommitObject(plumbing.NewHash(revision))
	if err == nil {
		return commit, nil
	}

	return nil, fmt.Errorf("failed to resolve '%s' as ref or SHA", revision)
}
