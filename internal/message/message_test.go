package message

import (
	"strings"
	"testing"

	"github.com/kyokomi/emoji/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHeaderWithScope(t *testing.T) {
	c := Commit{Type: "feat", Scope: "api", Subject: "add auth"}

	got := Render(c, Options{})

	require.Equal(t, "feat(api): add auth", got)
}

func TestRenderEmptyScopeOmitsParens(t *testing.T) {
	c := Commit{Type: "fix", Subject: "typo"}

	got := Render(c, Options{})

	require.Equal(t, "fix: typo", got)
	assert.NotContains(t, got, "(")
	assert.NotContains(t, got, ")")
}

func TestRenderFooterBlock(t *testing.T) {
	c := Commit{Type: "fix", Subject: "typo", Breaking: "none"}

	got := Render(c, Options{})

	require.Equal(t, "fix: typo\n\nBREAKING CHANGE: none", got)
}

func TestRenderBreakingKeepsDefaultHeaderPlain(t *testing.T) {
	c := Commit{Type: "feat", Scope: "api", Subject: "drop v1", Breaking: "v1 endpoints removed"}

	got := Render(c, Options{})

	require.Equal(t, "feat(api): drop v1\n\nBREAKING CHANGE: v1 endpoints removed", got)
}

func TestRenderBangFieldInCustomFormat(t *testing.T) {
	o := Options{HeaderFormat: "{{.type}}{{.scope_with_parens}}{{.bang}}: {{.subject}}"}

	breaking := Commit{Type: "feat", Scope: "api", Subject: "drop v1", Breaking: "v1 endpoints removed"}
	require.Equal(t,
		"feat(api)!: drop v1\n\nBREAKING CHANGE: v1 endpoints removed",
		Render(breaking, o))

	plain := Commit{Type: "feat", Scope: "api", Subject: "add auth"}
	require.Equal(t, "feat(api): add auth", Render(plain, o))
}

func TestRenderBodyAndFooter(t *testing.T) {
	c := Commit{
		Type:     "refactor",
		Scope:    "parser",
		Subject:  "split lexer",
		Body:     "motivated by readability",
		Breaking: "token stream type changed",
		Issues:   "Closes #7",
	}

	got := Render(c, Options{})

	want := "refactor(parser): split lexer\n\n" +
		"motivated by readability\n\n" +
		"BREAKING CHANGE: token stream type changed\n" +
		"Closes #7"
	require.Equal(t, want, got)
}

func TestRenderLineBreakToken(t *testing.T) {
	c := Commit{Type: "docs", Subject: "rewrite readme", Body: `first\nsecond`}

	got := Render(c, Options{LineBreak: `\n`})

	require.Equal(t, "docs: rewrite readme\n\nfirst\nsecond", got)
}

func TestRenderEmoji(t *testing.T) {
	c := Commit{Type: "feat", Scope: "api", Subject: "add auth"}

	got := Render(c, Options{Emoji: ":sparkles:"})

	want := "feat(api): " + strings.TrimSpace(emoji.Emojize(":sparkles:")) + " add auth"
	require.Equal(t, want, got)
}

func TestRenderBrokenFormatFallsBack(t *testing.T) {
	c := Commit{Type: "feat", Scope: "api", Subject: "add auth"}

	got := Render(c, Options{HeaderFormat: "{{.type"})

	require.Equal(t, "feat(api): add auth", got)
}

func TestRenderDeterministic(t *testing.T) {
	c := Commit{Type: "feat", Scope: "api", Subject: "add auth", Body: "details", Issues: "Closes #1"}
	o := Options{}

	first := Render(c, o)
	second := Render(c, o)

	require.Equal(t, first, second)
}

func TestFooterEmpty(t *testing.T) {
	require.Empty(t, Commit{Type: "feat", Subject: "x"}.Footer())
}
