// Package message renders a collected set of answers into a single
// conventional-commit string. Rendering is pure: the same Commit and
// Options always produce the same output.
package message

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/kyokomi/emoji/v2"
)

// DefaultHeaderFormat is used when a rule file does not define its own.
// Available fields: .type, .scope, .scope_with_parens, .bang, .emoji,
// .emoji_unicode, .subject. The default keeps the header plain even for
// breaking changes; formats that want the "!" marker add {{.bang}}.
const DefaultHeaderFormat = "{{.type}}{{.scope_with_parens}}: {{.emoji_unicode}}{{.subject}}"

// Commit holds the final formatted answer for each prompted field.
type Commit struct {
	Type     string
	Scope    string
	Subject  string
	Body     string
	Breaking string
	Issues   string
}

// Options control rendering. Emoji is the raw emoji code of the commit
// type (e.g. ":sparkles:"), empty when the type has none.
type Options struct {
	HeaderFormat string
	LineBreak    string
	Emoji        string
}

// Footer returns the footer block: the BREAKING CHANGE note followed by
// issue references, one per line.
func (c Commit) Footer() string {
	var lines []string
	if c.Breaking != "" {
		lines = append(lines, "BREAKING CHANGE: "+c.Breaking)
	}
	if c.Issues != "" {
		lines = append(lines, c.Issues)
	}
	return strings.Join(lines, "\n")
}

// Render produces the commit message:
//
//	<header>
//
//	<body>
//
//	<footer>
//
// Empty blocks are omitted together with their separating blank line.
// The LineBreak token is replaced by a real newline inside body and
// footer, and the result is whitespace-trimmed.
func Render(c Commit, o Options) string {
	msg := renderHeader(c, o)

	if body := breakLines(c.Body, o.LineBreak); body != "" {
		msg += "\n\n" + body
	}
	if footer := breakLines(c.Footer(), o.LineBreak); footer != "" {
		msg += "\n\n" + footer
	}

	return strings.TrimSpace(msg)
}

func renderHeader(c Commit, o Options) string {
	var scopeWithParens string
	if c.Scope != "" {
		scopeWithParens = "(" + c.Scope + ")"
	}

	var bang string
	if c.Breaking != "" {
		bang = "!"
	}

	var emojiUnicode string
	if o.Emoji != "" {
		emojiUnicode = strings.TrimSpace(emoji.Emojize(o.Emoji)) + " "
	}

	format := o.HeaderFormat
	if format == "" {
		format = DefaultHeaderFormat
	}

	buf := bytes.Buffer{}
	templ, err := template.New("header").Parse(format)
	if err == nil {
		err = templ.Execute(&buf, map[string]string{
			"type":              c.Type,
			"scope":             c.Scope,
			"scope_with_parens": scopeWithParens,
			"bang":              bang,
			"emoji":             o.Emoji,
			"emoji_unicode":     emojiUnicode,
			"subject":           c.Subject,
		})
	}
	if err != nil {
		// broken custom format, fall back to the canonical header
		buf.Reset()
		buf.WriteString(c.Type)
		buf.WriteString(scopeWithParens)
		buf.WriteString(": ")
		buf.WriteString(c.Subject)
	}
	return buf.String()
}

func breakLines(s, token string) string {
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, "\n")
}
