package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt: aborted")

// Kind selects how a question is presented.
type Kind int

const (
	// KindLine is a single line of free text.
	KindLine Kind = iota
	// KindConfirm is a yes/no question; answers are "true" or "false".
	KindConfirm
	// KindChoice picks one of Options; the answer is the option text.
	KindChoice
	// KindMultiline accepts several lines, e.g. table rows as JSON.
	KindMultiline
)

// Question is one prompt for one template variable. Answers are always
// strings; the collector converts them per variable type.
type Question struct {
	Kind     Kind
	Name     string
	Message  string
	Help     string
	Default  string
	Options  []string
	Validate func(string) error
}

// Driver asks questions. Terminal, scripted and remote front ends implement
// it.
type Driver interface {
	Ask(ctx context.Context, q Question) (string, error)
	Announce(ctx context.Context, title string) error
}

// SurveyDriver asks on the terminal with survey.
type SurveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

// NewSurveyDriver binds to the process terminal; opts (survey.WithStdio and
// friends) apply to every question.
func NewSurveyDriver(opts ...survey.AskOpt) *SurveyDriver {
	return &SurveyDriver{out: os.Stderr, opts: opts}
}

func (d *SurveyDriver) Ask(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	opts := d.opts
	if q.Validate != nil && (q.Kind == KindLine || q.Kind == KindMultiline) {
		validate := q.Validate
		opts = append(append([]survey.AskOpt(nil), d.opts...), survey.WithValidator(func(ans any) error {
			return validate(fmt.Sprint(ans))
		}))
	}

	var (
		answer string
		err    error
	)
	switch q.Kind {
	case KindConfirm:
		def, _ := strconv.ParseBool(q.Default)
		var yes bool
		err = survey.AskOne(&survey.Confirm{Message: q.Message, Help: q.Help, Default: def}, &yes, opts...)
		answer = strconv.FormatBool(yes)
	case KindChoice:
		choice := &survey.Select{Message: q.Message, Help: q.Help, Options: q.Options}
		for _, option := range q.Options {
			if option == q.Default {
				choice.Default = option
			}
		}
		err = survey.AskOne(choice, &answer, opts...)
	case KindMultiline:
		err = survey.AskOne(&survey.Multiline{Message: q.Message, Help: q.Help, Default: q.Default}, &answer, opts...)
	default:
		err = survey.AskOne(&survey.Input{Message: q.Message, Help: q.Help, Default: q.Default}, &answer, opts...)
	}
	if errors.Is(err, terminal.InterruptErr) {
		return "", ErrAborted
	}
	return answer, err
}

func (d *SurveyDriver) Announce(ctx context.Context, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(d.out, "== %s ==\n", title)
	return err
}
