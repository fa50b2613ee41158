// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/rapidcopper/rapidcopper/internal/pipeline"
	"github.com/rapidcopper/rapidcopper/internal/resolve"
)

var (
	// ErrCancelled is returned when the user aborts a prompt.
	ErrCancelled = errors.New("prompt cancelled")
	// ErrInvalidChoice is returned when a choice answer is not a number.
	ErrInvalidChoice = errors.New("invalid choice")
)

var _ pipeline.FrontEnd = (*LineFrontEnd)(nil)

type (
	// LineFrontEnd answers interpreter prompts one line at a time with huh
	// fields. In accessible mode it prints numbered candidate lists and reads
	// plain lines, which also makes it scriptable through a pipe.
	LineFrontEnd struct {
		cfg        Config
		out        io.Writer
		in         *bufio.Reader
		accessible bool
		// shown holds the candidates of the last ShowCandidates call per stage.
		shown map[int][]resolve.Candidate
	}

	// lineReader yields a single line of src, then io.EOF. huh wraps each
	// accessible prompt's reader in a fresh bufio.Scanner, which would
	// otherwise consume answers meant for later prompts.
	lineReader struct {
		src  *bufio.Reader
		buf  []byte
		read bool
	}
)

// NewLineFrontEnd returns a front end configured by cfg.
func NewLineFrontEnd(cfg Config) *LineFrontEnd {
	return &LineFrontEnd{
		cfg:        cfg,
		out:        getOutputWriter(cfg),
		in:         bufio.NewReader(getInputReader(cfg)),
		accessible: shouldUseAccessible(cfg),
		shown:      make(map[int][]resolve.Candidate),
	}
}

// PromptText asks for one line of free text.
func (fe *LineFrontEnd) PromptText(ctx context.Context, _ int, msg string) (string, error) {
	var value string
	field := huh.NewInput().
		Title(msg).
		Value(&value)
	if err := fe.run(ctx, field); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// PromptChoice asks for a 0-based index into the candidates last shown for
// the stage. Outside accessible mode the candidates are offered as a select
// list; otherwise the index is typed.
func (fe *LineFrontEnd) PromptChoice(ctx context.Context, stage int, msg string) (int, error) {
	if cs := fe.shown[stage]; !fe.accessible && len(cs) > 0 {
		choice := 0
		options := make([]huh.Option[int], len(cs))
		for i, c := range cs {
			options[i] = huh.NewOption(fmt.Sprintf("%s - %s", c.Name, c.Description), i)
		}
		field := huh.NewSelect[int]().
			Title(msg).
			Options(options...).
			Value(&choice)
		if err := fe.run(ctx, field); err != nil {
			return 0, err
		}
		return choice, nil
	}

	var value string
	field := huh.NewInput().
		Title(msg).
		Validate(validateChoice).
		Value(&value)
	if err := fe.run(ctx, field); err != nil {
		return 0, err
	}
	return parseChoice(value)
}

// ShowCandidates prints the numbered candidate list in accessible mode and
// remembers the candidates for the following PromptChoice.
func (fe *LineFrontEnd) ShowCandidates(_ context.Context, stage int, cs []resolve.Candidate) error {
	fe.shown[stage] = cs
	if !fe.accessible {
		return nil
	}
	_, err := io.WriteString(fe.out, FormatCandidates(cs))
	return err
}

func (fe *LineFrontEnd) run(ctx context.Context, field huh.Field) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(getHuhTheme(fe.cfg.Theme)).
		WithAccessible(fe.accessible).
		WithShowHelp(!fe.accessible).
		WithOutput(fe.out)
	if fe.accessible {
		form = form.WithInput(&lineReader{src: fe.in})
	}
	if fe.cfg.Width > 0 {
		form = form.WithWidth(fe.cfg.Width)
	}
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

func validateChoice(s string) error {
	_, err := parseChoice(s)
	return err
}

func parseChoice(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: no choice entered", ErrInvalidChoice)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidChoice, s)
	}
	return n, nil
}

func (r *lineReader) Read(p []byte) (int, error) {
	if !r.read {
		r.read = true
		line, err := r.src.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
		r.buf = []byte(line)
	}
	if len(r.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}
