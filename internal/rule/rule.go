// Package rule models the per-repository rule file: which commit types
// exist, which steps are prompted, and how the header is formatted.
package rule

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/shu-go/findcfg"
	"github.com/shu-go/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/cwtools/git-cw/internal/gitrepo"
	"github.com/cwtools/git-cw/internal/message"
)

const (
	// DefaultFileName is looked up as .cw.yaml/.cw.yml/.cw.json.
	DefaultFileName = ".cw"

	// UserConfigFolder holds user-wide fallback files.
	UserConfigFolder = "git-cw"

	configKeyRule = "rule"
)

// CommitType describes one selectable commit type.
type CommitType struct {
	Desc  string `json:"description,omitempty" yaml:"description,omitempty"`
	Emoji string `json:"emoji,omitempty" yaml:"emoji,omitempty"`
}

// Rule drives the wizard. Boolean gates are named so that the zero value
// gives the default behavior: scope and body prompted, breaking-change
// and issue steps off, empty and ad-lib types allowed.
type Rule struct {
	HeaderFormat     string `json:"headerFormat" yaml:"headerFormat"`
	HeaderFormatHint string `json:"headerFormatHint,omitempty" yaml:"headerFormatHint,omitempty"`

	Types *orderedmap.OrderedMap[string, CommitType] `json:"types" yaml:"types"`

	DenyEmptyType bool `json:"denyEmptyType" yaml:"denyEmptyType"`
	DenyAdlibType bool `json:"denyAdlibType" yaml:"denyAdlibType"`

	SkipScope bool `json:"skipScope" yaml:"skipScope"`
	SkipBody  bool `json:"skipBody" yaml:"skipBody"`

	UseBreakingChange bool `json:"useBreakingChange" yaml:"useBreakingChange"`
	UseIssues         bool `json:"useIssues" yaml:"useIssues"`

	SubjectLimit int    `json:"subjectLimit,omitempty" yaml:"subjectLimit,omitempty"`
	LineBreak    string `json:"lineBreak,omitempty" yaml:"lineBreak,omitempty"`

	// Prompt labels. NoneLabel is the "empty value" entry of choice
	// steps; the New*Labels are the two entries that open a free input
	// on the scope step.
	NoneLabel    string `json:"noneLabel,omitempty" yaml:"noneLabel,omitempty"`
	AdlibLabel   string `json:"adlibLabel,omitempty" yaml:"adlibLabel,omitempty"`
	NewSaveLabel string `json:"newSaveLabel,omitempty" yaml:"newSaveLabel,omitempty"`
	NewOnceLabel string `json:"newOnceLabel,omitempty" yaml:"newOnceLabel,omitempty"`
}

// Default returns the built-in rule. The type table follows the angular
// commit-message guidelines; emoji codes are seeded when emoji is true.
func Default(emoji bool) Rule {
	iif := func(cond bool, t, f string) string {
		if cond {
			return t
		}
		return f
	}

	ct := orderedmap.New[string, CommitType]()
	ct.Set("# comment1", CommitType{Desc: "comment starts with #"})
	ct.Set("# comment2", CommitType{Desc: "This default definition is from https://github.com/angular/angular/blob/main/CONTRIBUTING.md#-commit-message-guidelines"})

	ct.Set("feat", CommitType{Desc: "A new feature", Emoji: iif(emoji, ":sparkles:", "")})
	ct.Set("fix", CommitType{Desc: "A bug fix", Emoji: iif(emoji, ":bug:", "")})
	ct.Set("docs", CommitType{Desc: "Documentation only changes", Emoji: iif(emoji, ":memo:", "")})
	ct.Set("style", CommitType{Desc: "Changes that do not affect the meaning of the code", Emoji: iif(emoji, ":art:", "")})
	ct.Set("refactor", CommitType{Desc: "A code change that neither fixes a bug nor adds a feature", Emoji: iif(emoji, ":recycle:", "")})
	ct.Set("perf", CommitType{Desc: "A code change that improves performance", Emoji: iif(emoji, ":zap:", "")})
	ct.Set("test", CommitType{Desc: "Adding missing tests or correcting existing tests", Emoji: iif(emoji, ":test_tube:", "")})
	ct.Set("build", CommitType{Desc: "Changes that affect the build system or external dependencies", Emoji: iif(emoji, ":package:", "")})
	ct.Set("ci", CommitType{Desc: "Changes to our CI configuration files and scripts", Emoji: iif(emoji, ":hammer:", "")})
	ct.Set("revert", CommitType{Desc: "Reverts a previous commit", Emoji: iif(emoji, ":rewind:", "")})

	r := Rule{
		HeaderFormat:     message.DefaultHeaderFormat,
		HeaderFormatHint: ".type, .scope, .scope_with_parens, .bang(if BREAKING CHANGE), .emoji, .emoji_unicode, .subject",
		Types:            ct,
	}
	r.normalize()
	return r
}

// Load finds and reads the rule file for the repository: a gitconfig
// [cw] rule=... path relative to the worktree root, then .cw.* in the
// root, the user config dir, and next to the executable. Any failure
// falls back to the default rule. The second return value is the path
// the rule came from, or where it would be written.
func Load(repos *git.Repository) (*Rule, string) {
	var rootDir string
	if wt, err := repos.Worktree(); err == nil {
		rootDir = wt.Filesystem.Root()
	}

	var exactPath string
	if rootDir != "" {
		if cfg := gitrepo.ConfigValue(repos, configKeyRule); cfg != nil {
			exactPath = filepath.Join(rootDir, *cfg)
		}
	}

	finder := findcfg.New(
		findcfg.Name(DefaultFileName),
		findcfg.ExactPath(exactPath),
		findcfg.YAML(),
		findcfg.JSON(),
		findcfg.Dir(rootDir),
		findcfg.UserConfigDir(UserConfigFolder),
		findcfg.ExecutableDir(),
	)
	found := finder.Find()
	if found != nil {
		if r, err := ReadFile(found.Path); err == nil {
			return r, found.Path
		}
	}

	r := Default(false)
	return &r, finder.FallbackPath()
}

// ReadFile parses a rule file, YAML or JSON by extension, trying both
// when the extension says neither.
func ReadFile(filename string) (*Rule, error) {
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

	r := Rule{
		Types: orderedmap.New[string, CommitType](),
	}

	switch {
	case isExt(filename, ".yaml", ".yml"):
		err = yaml.Unmarshal(content, &r)
	case isExt(filename, ".json"):
		err = json.Unmarshal(content, &r)
	default:
		if err = yaml.Unmarshal(content, &r); err != nil {
			err = json.Unmarshal(content, &r)
		}
	}
	if err != nil {
		return nil, err
	}

	r.normalize()
	return &r, nil
}

// EmojiOf returns the raw emoji code of a type, "" when unknown.
func (r *Rule) EmojiOf(typ string) string {
	if r.Types == nil {
		return ""
	}
	if ct, found := r.Types.Get(typ); found {
		return ct.Emoji
	}
	return ""
}

func (r *Rule) normalize() {
	if r.Types == nil {
		r.Types = orderedmap.New[string, CommitType]()
	}
	if r.SubjectLimit == 0 {
		r.SubjectLimit = 72
	}
	if r.LineBreak == "" {
		r.LineBreak = `\n`
	}
	if r.NoneLabel == "" {
		r.NoneLabel = "none"
	}
	if r.AdlibLabel == "" {
		r.AdlibLabel = "type your own"
	}
	if r.NewSaveLabel == "" {
		r.NewSaveLabel = "new scope (remember it)"
	}
	if r.NewOnceLabel == "" {
		r.NewOnceLabel = "new scope (just this once)"
	}
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
