package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	git "github.com/go-git/go-git/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shu-go/gli"

	"github.com/cwtools/git-cw/internal/gitrepo"
	"github.com/cwtools/git-cw/internal/history"
	"github.com/cwtools/git-cw/internal/message"
	"github.com/cwtools/git-cw/internal/rule"
	"github.com/cwtools/git-cw/internal/ui"
	"github.com/cwtools/git-cw/internal/wizard"
)

type globalCmd struct {
	All  bool   `cli:"all,a" help:"stage all changed files before committing"`
	Copy bool   `cli:"copy,c" help:"copy the message to the clipboard instead of committing"`
	Repo string `cli:"repo,C" help:"path or name of the repository to commit in"`

	Debug bool `cli:"debug" default:"false" help:"do not commit, print the message to stdout"`

	Gen genCmd `cli:"generate,gen" help:"generate rule file"`
}

func (c globalCmd) Run() error {
	err := c.run()
	if errors.Is(err, wizard.ErrCancelled) {
		// cancelling any prompt, the repository pick included, is a
		// normal outcome, not a failure
		log.Info().Msg("aborted, nothing committed")
		return nil
	}
	return err
}

func (c globalCmd) run() error {
	if c.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if !ui.IsTTY() {
		return errors.New("an interactive terminal is required")
	}
	prompter := ui.New()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	log.Debug().Str("wd", wd).Msg("discovering repositories")

	cands, err := gitrepo.Discover(wd)
	if err != nil {
		return err
	}
	target, err := gitrepo.Resolve(cands, c.Repo, func(cands []gitrepo.Candidate) (int, error) {
		return pickRepository(prompter, cands)
	})
	if err != nil {
		return err
	}
	log.Debug().Str("repository", target.Path).Msg("resolved")

	r, rulePath := rule.Load(target.Repo)
	log.Debug().Str("rule", rulePath).Msg("loaded")

	hist := history.Load(target.Repo)

	if !c.Debug && c.All {
		if err := gitrepo.StageAll(target.Repo); err != nil {
			return err
		}
	}

	staged, err := gitrepo.HasStaged(target.Repo)
	if err != nil {
		return err
	}
	if !staged {
		fmt.Fprintln(os.Stderr, "no changes")
		if !c.Debug {
			return nil
		}
	}

	steps := wizard.Build(r, hist.Names())
	answers, effects, err := wizard.Run(prompter, steps)
	if err != nil {
		return err
	}

	saveHistory(hist, answers, effects)

	cm := message.Commit{
		Type:     answers[wizard.FieldType],
		Scope:    answers[wizard.FieldScope],
		Subject:  answers[wizard.FieldSubject],
		Body:     answers[wizard.FieldBody],
		Breaking: answers[wizard.FieldBreaking],
		Issues:   answers[wizard.FieldIssues],
	}
	msg := message.Render(cm, message.Options{
		HeaderFormat: r.HeaderFormat,
		LineBreak:    r.LineBreak,
		Emoji:        r.EmojiOf(cm.Type),
	})

	if c.Debug {
		fmt.Println("----------")
		fmt.Println(msg)
		return nil
	}

	if c.Copy {
		if err := clipboard.WriteAll(msg); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		log.Info().Msg("commit message copied to clipboard")
		return nil
	}

	return gitrepo.Commit(target.Path, msg)
}

func pickRepository(prompter ui.Prompter, cands []gitrepo.Candidate) (int, error) {
	opts := make([]wizard.Option, len(cands))
	for i, cand := range cands {
		opts[i] = wizard.Option{Label: cand.Name, Detail: cand.Annotation()}
	}

	label, err := prompter.Pick(wizard.PickRequest{Title: "Repository", Options: opts})
	if err != nil {
		return 0, err
	}
	for i := range opts {
		if opts[i].Label == label {
			return i, nil
		}
	}
	return 0, wizard.ErrCancelled
}

// saveHistory applies the deferred effects of the completed sequence and
// bumps the recency of a reused scope. Nothing is written on a cancelled
// run because the sequencer never returns effects for one.
func saveHistory(hist *history.History, answers wizard.Answers, effects []wizard.Effect) {
	changed := false
	for _, fx := range effects {
		if fx.Bucket == wizard.BucketScopes {
			hist.Add(fx.Value)
			changed = true
		}
	}
	if sc := answers[wizard.FieldScope]; sc != "" && hist.Has(sc) {
		hist.Add(sc)
		changed = true
	}
	if !changed {
		return
	}
	if err := hist.Save(); err != nil {
		log.Warn().Err(err).Str("file", hist.FileName()).Msg("write scope history")
	}
}

// Version is app version
var Version string

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	rulePath, scopePath := getPathToHelp()
	if rulePath != "" {
		rulePath = "\nrule: " + rulePath + "\n"
	}
	if scopePath != "" {
		scopePath = "scopes: " + scopePath + "\n"
	}

	app := gli.NewWith(&globalCmd{})
	app.Name = "git-cw"
	app.Desc = "A conventional commits wizard"
	app.Version = Version
	app.Usage = `
# prepare
# Put git-cw to PATH.

# basic usage
git cw

# customize
git cw gen
(edit .cw.yaml)
git cw
` + rulePath + scopePath + `

# record and complete scope history
(gitconfig: [cw] scopes=.cw-scopes.yaml)`
	app.Copyright = "(C) 2025 git-cw authors"
	app.SuppressErrorOutput = true
	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("git-cw failed")
		os.Exit(1)
	}
}

func getPathToHelp() (rulePath string, scopePath string) {
	repos, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", ""
	}

	_, rulePath = rule.Load(repos)
	scopePath = history.Load(repos).FileName()

	return rulePath, scopePath
}
