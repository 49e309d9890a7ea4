// Package gitrepo locates candidate repositories and hands the finished
// commit message to git.
package gitrepo

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/plumbing/format/config"
)

const configSection = "cw"

// ErrNoRepository is returned when no candidate repository is available.
var ErrNoRepository = errors.New("no git repository found")

// NotFoundError is returned when an explicitly requested repository
// matches none of the candidates.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no repository matches %q", e.Path)
}

// Candidate is a repository the commit may target.
type Candidate struct {
	Path string // worktree root
	Name string // display name, the root's basename
	Repo *git.Repository
}

// Discover lists candidate repositories for wd: the repository containing
// wd when there is one, otherwise every immediate child directory of wd
// that is a repository root.
func Discover(wd string) ([]Candidate, error) {
	if repos, err := git.PlainOpenWithOptions(wd, &git.PlainOpenOptions{DetectDotGit: true}); err == nil {
		root := wd
		if wt, err := repos.Worktree(); err == nil {
			root = wt.Filesystem.Root()
		}
		return []Candidate{{Path: root, Name: filepath.Base(root), Repo: repos}}, nil
	}

	entries, err := os.ReadDir(wd)
	if err != nil {
		return nil, err
	}

	var cands []Candidate
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p := filepath.Join(wd, e.Name())
		repos, err := git.PlainOpen(p)
		if err != nil {
			continue
		}
		cands = append(cands, Candidate{Path: p, Name: e.Name(), Repo: repos})
	}
	return cands, nil
}

// Resolve picks the target repository. Zero candidates fail with
// ErrNoRepository. An explicit path or name must match a candidate or the
// resolution fails with *NotFoundError. A single candidate is used as is;
// with more than one, pick is asked to choose.
func Resolve(cands []Candidate, explicit string, pick func([]Candidate) (int, error)) (Candidate, error) {
	if len(cands) == 0 {
		return Candidate{}, ErrNoRepository
	}

	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			abs = explicit
		}
		for _, c := range cands {
			if c.Name == explicit || filepath.Clean(c.Path) == filepath.Clean(explicit) || filepath.Clean(c.Path) == abs {
				return c, nil
			}
		}
		return Candidate{}, &NotFoundError{Path: explicit}
	}

	if len(cands) == 1 {
		return cands[0], nil
	}

	i, err := pick(cands)
	if err != nil {
		return Candidate{}, err
	}
	if i < 0 || i >= len(cands) {
		return Candidate{}, ErrNoRepository
	}
	return cands[i], nil
}

// Annotation describes the candidate's HEAD (branch@shorthash) with a "*"
// marker when the worktree has pending changes.
func (c Candidate) Annotation() string {
	if c.Repo == nil {
		return ""
	}

	var parts []string
	if head, err := c.Repo.Head(); err == nil {
		hash := head.Hash().String()
		if len(hash) > 7 {
			hash = hash[:7]
		}
		parts = append(parts, head.Name().Short()+"@"+hash)
	}
	if c.dirty() {
		parts = append(parts, "*")
	}
	return strings.Join(parts, " ")
}

func (c Candidate) dirty() bool {
	wt, err := c.Repo.Worktree()
	if err != nil {
		return false
	}
	st, err := wt.Status()
	if err != nil {
		return false
	}
	return !st.IsClean()
}

// HasStaged reports whether the index holds anything to commit.
func HasStaged(repos *git.Repository) (bool, error) {
	wt, err := repos.Worktree()
	if err != nil {
		return false, err
	}
	st, err := wt.Status()
	if err != nil {
		return false, err
	}
	for _, s := range st {
		if s.Staging != git.Unmodified && s.Staging != git.Untracked {
			return true, nil
		}
	}
	return false, nil
}

// StageAll stages every changed tracked file, as git commit -a would.
func StageAll(repos *git.Repository) error {
	wt, err := repos.Worktree()
	if err != nil {
		return err
	}
	st, err := wt.Status()
	if err != nil {
		return err
	}
	for f, s := range st {
		switch s.Worktree {
		case git.Modified, git.Added, git.Deleted, git.Renamed, git.Copied, git.UpdatedButUnmerged:
			if _, err := wt.Add(f); err != nil {
				return fmt.Errorf("adding %s: %w", f, err)
			}
		default:
			//nop
		}
	}
	return nil
}

// Commit hands msg to the git binary through a temp file so hooks,
// signing and message cleanup behave exactly as a manual commit.
func Commit(root, msg string) error {
	f, err := os.CreateTemp("", "git-cw-*")
	if err != nil {
		return err
	}
	if _, err := f.WriteString(msg); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	f.Close()
	defer os.Remove(f.Name())

	cmd := exec.Command("git", "commit", "-F", f.Name())
	cmd.Dir = root
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git commit: %w\n%s", err, out)
	}
	return nil
}

// ConfigValue reads a key of the [cw] section from the repository's
// gitconfig, nil when absent.
func ConfigValue(repos *git.Repository, key string) *string {
	config, err := repos.Config()
	if err != nil {
		return nil
	}

	var ss *gitconfig.Section
	var found bool
	for _, s := range config.Raw.Sections {
		if s.Name == configSection {
			found = true
			ss = s
		}
	}
	if !found {
		return nil
	}

	if v := ss.Options.Get(key); v != "" {
		return &v
	}
	return nil
}
