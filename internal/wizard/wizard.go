// Package wizard walks the user through an ordered sequence of prompts
// and assembles the answers for the commit message. The sequence is
// strictly sequential: a step runs only after the previous one resolved,
// and dismissing any prompt aborts the whole run.
package wizard

import (
	"errors"
	"fmt"
)

// ErrCancelled reports that the user dismissed a prompt. It is an
// outcome, not a failure; callers stop quietly without committing or
// persisting anything.
var ErrCancelled = errors.New("cancelled by user")

// Position is the step's place in the sequence, shown as "(n/total)".
type Position struct {
	N     int
	Total int
}

func (p Position) String() string {
	if p.Total == 0 {
		return ""
	}
	return fmt.Sprintf("(%d/%d)", p.N, p.Total)
}

// Option is one selectable entry of a choice prompt.
type Option struct {
	Label  string
	Detail string
}

// PickRequest asks the user to select one option.
type PickRequest struct {
	Title    string
	Position Position
	Options  []Option
}

// InputRequest asks for a single line of text. Validate, when set, runs
// on every keystroke; a non-nil result is shown to the user and blocks
// acceptance until the value passes.
type InputRequest struct {
	Title       string
	Position    Position
	Placeholder string
	Validate    func(string) error
}

// EditRequest asks for multi-line text.
type EditRequest struct {
	Title       string
	Position    Position
	Placeholder string
}

// UI renders the three interaction kinds. Implementations return
// ErrCancelled when the user dismisses the prompt without a value.
type UI interface {
	Pick(PickRequest) (string, error)
	Input(InputRequest) (string, error)
	Edit(EditRequest) (string, error)
}

// Answers maps a step's field name to its final formatted value.
type Answers map[string]string

// Effect is a deferred persistence request produced by a step, applied
// by the caller only after the whole sequence has completed.
type Effect struct {
	Bucket string
	Value  string
}

// Run executes the steps in order. The first cancellation or failure
// aborts the run: no partial answers, no effects.
func Run(ui UI, steps []Step) (Answers, []Effect, error) {
	ans := make(Answers, len(steps))
	var effects []Effect

	for _, s := range steps {
		v, fx, err := s.Run(ui)
		if err != nil {
			return nil, nil, err
		}
		ans[s.Field()] = v
		effects = append(effects, fx...)
	}

	return ans, effects, nil
}

// number assigns positions in traversal order.
func number(steps []Step) {
	for i, s := range steps {
		s.setPos(i+1, len(steps))
	}
}
