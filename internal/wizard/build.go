package wizard

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kyokomi/emoji/v2"

	"github.com/cwtools/git-cw/internal/rule"
)

// Answer keys, in prompting order.
const (
	FieldType     = "type"
	FieldScope    = "scope"
	FieldSubject  = "subject"
	FieldBody     = "body"
	FieldBreaking = "breaking"
	FieldIssues   = "issues"
)

// BucketScopes marks effects that grow the scope history.
const BucketScopes = "scopes"

// Build turns a rule and the remembered scopes into the gated, ordered,
// numbered step sequence: type, scope, subject, body, breaking change,
// issue references. r must come from rule.Load or rule.Default.
func Build(r *rule.Rule, scopes []string) []Step {
	steps := make([]Step, 0, 6)

	typeStep := &ChoiceStep{
		Name:          FieldType,
		Title:         "Type of change",
		Options:       typeOptions(r),
		AdlibValidate: wordValidator,
		Format:        strings.TrimSpace,
	}
	if !r.DenyEmptyType {
		typeStep.None = r.NoneLabel
	}
	if !r.DenyAdlibType {
		typeStep.Adlib = r.AdlibLabel
	}
	steps = append(steps, typeStep)

	if !r.SkipScope {
		steps = append(steps, &GrowableStep{
			Name:        FieldScope,
			Title:       "Scope",
			Bucket:      BucketScopes,
			Known:       scopes,
			None:        r.NoneLabel,
			NewSave:     r.NewSaveLabel,
			NewOnce:     r.NewOnceLabel,
			Placeholder: "api, parser, ...",
			Validate:    scopeValidator,
			Format:      strings.TrimSpace,
		})
	}

	steps = append(steps, &TextStep{
		Name:        FieldSubject,
		Title:       "Short description",
		Placeholder: "what does this commit do?",
		Validate:    subjectValidator(r.SubjectLimit),
		Format:      strings.TrimSpace,
	})

	if !r.SkipBody {
		steps = append(steps, &TextStep{
			Name:      FieldBody,
			Title:     "Body",
			Multiline: true,
			Format:    strings.TrimSpace,
		})
	}

	if r.UseBreakingChange {
		steps = append(steps, &TextStep{
			Name:        FieldBreaking,
			Title:       "BREAKING CHANGE",
			Placeholder: "leave empty if none",
			Format:      strings.TrimSpace,
		})
	}

	if r.UseIssues {
		steps = append(steps, &TextStep{
			Name:        FieldIssues,
			Title:       "Issue references",
			Placeholder: "Closes #123",
			Format:      strings.TrimSpace,
		})
	}

	number(steps)
	return steps
}

func typeOptions(r *rule.Rule) []Option {
	var opts []Option
	for _, k := range r.Types.Keys() {
		if strings.HasPrefix(k, "#") {
			continue
		}
		ct, ok := r.Types.Get(k)
		if !ok || ct.Desc == "" {
			continue
		}

		detail := ct.Desc
		if ct.Emoji != "" {
			detail = strings.TrimSpace(emoji.Emojize(ct.Emoji)) + " " + ct.Desc
		}
		opts = append(opts, Option{Label: k, Detail: detail})
	}
	return opts
}

// subjectValidator requires a non-empty description within limit runes
// and without a trailing period.
func subjectValidator(limit int) func(string) error {
	return func(v string) error {
		v = strings.TrimSpace(v)
		if v == "" {
			return errors.New("description is required")
		}
		if limit > 0 && utf8.RuneCountInString(v) > limit {
			return fmt.Errorf("keep it under %d characters", limit)
		}
		if strings.HasSuffix(v, ".") {
			return errors.New("drop the trailing period")
		}
		return nil
	}
}

// wordValidator requires a single non-empty word.
func wordValidator(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("a value is required")
	}
	if strings.IndexFunc(v, unicode.IsSpace) >= 0 {
		return errors.New("no whitespace allowed")
	}
	return nil
}

// scopeValidator allows an empty entry (same as picking none) but
// rejects whitespace and parentheses inside a scope.
func scopeValidator(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if strings.IndexFunc(v, unicode.IsSpace) >= 0 {
		return errors.New("no whitespace allowed")
	}
	if strings.ContainsAny(v, "()") {
		return errors.New("no parentheses allowed")
	}
	return nil
}
