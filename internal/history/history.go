// Package history persists the scopes a user has accepted before, so the
// scope prompt can offer them again, most recent first.
package history

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/shu-go/findcfg"
	"github.com/shu-go/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/cwtools/git-cw/internal/gitrepo"
)

const (
	// DefaultFileName is looked up as .cw-scopes.yaml/.yml/.json.
	DefaultFileName = ".cw-scopes"

	userConfigFolder = "git-cw"

	configKeyScopes = "scopes"
)

// History is a set of scope names with the time each was last used.
type History struct {
	entries  map[string]time.Time
	fileName string
}

// Load finds and reads the scope history of the repository, searching the
// same chain as the rule file (gitconfig [cw] scopes=..., worktree root,
// user config dir, executable dir). When no file exists yet, the returned
// History is empty and Save will create it at the fallback path.
func Load(repos *git.Repository) *History {
	var rootDir string
	if wt, err := repos.Worktree(); err == nil {
		rootDir = wt.Filesystem.Root()
	}

	var exactPath string
	if rootDir != "" {
		if cfg := gitrepo.ConfigValue(repos, configKeyScopes); cfg != nil {
			exactPath = filepath.Join(rootDir, *cfg)
		}
	}

	finder := findcfg.New(
		findcfg.Name(DefaultFileName),
		findcfg.ExactPath(exactPath),
		findcfg.YAML(),
		findcfg.JSON(),
		findcfg.Dir(rootDir),
		findcfg.UserConfigDir(userConfigFolder),
		findcfg.ExecutableDir(),
	)
	if found := finder.Find(); found != nil {
		if h, err := ReadFile(found.Path); err == nil {
			return h
		}
	}

	return &History{
		entries:  map[string]time.Time{},
		fileName: finder.FallbackPath(),
	}
}

// ReadFile parses a history file, YAML or JSON by extension, trying both
// when the extension says neither.
func ReadFile(filename string) (*History, error) {
	s, err := os.Stat(filename)
	if err != nil {
		return nil, err
	}
	if s.IsDir() {
		return nil, fmt.Errorf("%s is a directory", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	entries := map[string]time.Time{}

	var err2 error
	switch {
	case isExt(filename, ".yaml", ".yml"):
		err2 = yaml.Unmarshal(content, &entries)
	case isExt(filename, ".json"):
		err2 = json.Unmarshal(content, &entries)
	default:
		if err2 = yaml.Unmarshal(content, &entries); err2 != nil {
			err2 = json.Unmarshal(content, &entries)
		}
	}
	if err2 != nil {
		return nil, err2
	}

	return &History{entries: entries, fileName: filename}, nil
}

// FileName is the path the history was read from or will be written to.
func (h *History) FileName() string { return h.fileName }

// Len is the number of remembered scopes.
func (h *History) Len() int { return len(h.entries) }

// Has reports whether name is already remembered.
func (h *History) Has(name string) bool {
	_, ok := h.entries[name]
	return ok
}

// Add remembers name, stamping it as used now. Adding an existing name
// only bumps its recency.
func (h *History) Add(name string) {
	h.add(name, time.Now())
}

func (h *History) add(name string, ts time.Time) {
	h.entries[name] = ts
}

// Names lists remembered scopes, most recently used first. Ties are
// broken by name so the order is stable.
func (h *History) Names() []string {
	names := make([]string, 0, len(h.entries))
	for n := range h.entries {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		ti, tj := h.entries[names[i]], h.entries[names[j]]
		if ti.Equal(tj) {
			return names[i] < names[j]
		}
		return ti.After(tj)
	})
	return names
}

// Save writes the history back, recency-ordered, YAML or JSON by the
// file's extension. A History without a file name is not persisted.
func (h *History) Save() error {
	if h.fileName == "" {
		return nil
	}

	out := orderedmap.New[string, time.Time]()
	for _, n := range h.Names() {
		out.Set(n, h.entries[n])
	}

	var content []byte
	var err error
	if isExt(h.fileName, ".json") {
		content, err = json.MarshalIndent(out, "", "  ")
	} else {
		content, err = yaml.Marshal(out)
	}
	if err != nil {
		return err
	}

	file, err := os.Create(h.fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write(content)
	return err
}

func isExt(filename string, exts ...string) bool {
	ext := filepath.Ext(filename)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
