package wizard

// Formatter post-processes a raw answer into its final form.
type Formatter func(string) string

// Step is one prompt of the sequence. The set of implementations is
// closed: ChoiceStep, TextStep and GrowableStep, one per interaction
// kind.
type Step interface {
	// Field is the answer key the step fills.
	Field() string
	// Run performs the interaction and returns the formatted answer
	// plus any deferred effects.
	Run(ui UI) (string, []Effect, error)

	setPos(n, total int)
}

// ChoiceStep selects one value from a fixed list. A None label, when
// set, is offered first and coerces to the empty string. An Adlib label,
// when set, is offered last and opens a nested free input.
type ChoiceStep struct {
	Name  string
	Title string
	Pos   Position

	Options []Option
	None    string
	Adlib   string

	AdlibValidate func(string) error
	Format        Formatter
}

func (s *ChoiceStep) Field() string       { return s.Name }
func (s *ChoiceStep) setPos(n, total int) { s.Pos = Position{N: n, Total: total} }

func (s *ChoiceStep) Run(ui UI) (string, []Effect, error) {
	opts := make([]Option, 0, len(s.Options)+2)
	if s.None != "" {
		opts = append(opts, Option{Label: s.None})
	}
	opts = append(opts, s.Options...)
	if s.Adlib != "" {
		opts = append(opts, Option{Label: s.Adlib, Detail: "enter a value not in the list"})
	}

	label, err := ui.Pick(PickRequest{Title: s.Title, Position: s.Pos, Options: opts})
	if err != nil {
		return "", nil, err
	}

	switch {
	case s.None != "" && label == s.None:
		label = ""
	case s.Adlib != "" && label == s.Adlib:
		v, err := ui.Input(InputRequest{
			Title:    s.Title,
			Position: s.Pos,
			Validate: s.AdlibValidate,
		})
		if err != nil {
			return "", nil, err
		}
		label = v
	}

	return s.format(label), nil, nil
}

func (s *ChoiceStep) format(v string) string {
	if s.Format == nil {
		return v
	}
	return s.Format(v)
}

// TextStep collects free text, single- or multi-line. For single-line
// input, Validate runs live on every keystroke and blocks acceptance.
type TextStep struct {
	Name        string
	Title       string
	Pos         Position
	Placeholder string

	Multiline bool
	Validate  func(string) error
	Format    Formatter
}

func (s *TextStep) Field() string       { return s.Name }
func (s *TextStep) setPos(n, total int) { s.Pos = Position{N: n, Total: total} }

func (s *TextStep) Run(ui UI) (string, []Effect, error) {
	var v string
	var err error
	if s.Multiline {
		v, err = ui.Edit(EditRequest{Title: s.Title, Position: s.Pos, Placeholder: s.Placeholder})
	} else {
		v, err = ui.Input(InputRequest{Title: s.Title, Position: s.Pos, Placeholder: s.Placeholder, Validate: s.Validate})
	}
	if err != nil {
		return "", nil, err
	}
	return s.format(v), nil, nil
}

func (s *TextStep) format(v string) string {
	if s.Format == nil {
		return v
	}
	return s.Format(v)
}

// GrowableStep selects from previously remembered values, and offers two
// synthetic entries that open a nested input: NewSave remembers the
// entered value for future runs (as a deferred Effect on Bucket),
// NewOnce uses it for this run only.
type GrowableStep struct {
	Name  string
	Title string
	Pos   Position

	Bucket string
	Known  []string

	None    string
	NewSave string
	NewOnce string

	Placeholder string
	Validate    func(string) error
	Format      Formatter
}

func (s *GrowableStep) Field() string       { return s.Name }
func (s *GrowableStep) setPos(n, total int) { s.Pos = Position{N: n, Total: total} }

func (s *GrowableStep) Run(ui UI) (string, []Effect, error) {
	opts := make([]Option, 0, len(s.Known)+3)
	if s.None != "" {
		opts = append(opts, Option{Label: s.None})
	}
	for _, k := range s.Known {
		opts = append(opts, Option{Label: k})
	}
	opts = append(opts,
		Option{Label: s.NewSave, Detail: "enter a new value and remember it"},
		Option{Label: s.NewOnce, Detail: "enter a new value for this commit only"},
	)

	label, err := ui.Pick(PickRequest{Title: s.Title, Position: s.Pos, Options: opts})
	if err != nil {
		return "", nil, err
	}

	remember := false
	switch {
	case s.None != "" && label == s.None:
		label = ""
	case label == s.NewSave, label == s.NewOnce:
		remember = label == s.NewSave
		v, err := ui.Input(InputRequest{
			Title:       s.Title,
			Position:    s.Pos,
			Placeholder: s.Placeholder,
			Validate:    s.Validate,
		})
		if err != nil {
			return "", nil, err
		}
		label = v
	}

	answer := s.format(label)

	var effects []Effect
	if remember && answer != "" {
		effects = append(effects, Effect{Bucket: s.Bucket, Value: answer})
	}
	return answer, effects, nil
}

func (s *GrowableStep) format(v string) string {
	if s.Format == nil {
		return v
	}
	return s.Format(v)
}
