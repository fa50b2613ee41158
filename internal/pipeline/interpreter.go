// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
	"github.com/rapidcopper/rapidcopper/internal/plugin"
	"github.com/rapidcopper/rapidcopper/internal/resolve"
)

const (
	// ArgumentsPrompt asks for the arguments of an action typed without any.
	ArgumentsPrompt = "Enter arguments: "
	// ChoicePrompt asks for a 0-based candidate index.
	ChoicePrompt = "Enter choice: "
)

type (
	// FrontEnd is how the interpreter talks to the user. The interpreter never
	// touches a terminal itself.
	FrontEnd interface {
		// PromptText asks for free text, e.g. action arguments.
		PromptText(ctx context.Context, stage int, msg string) (string, error)
		// PromptChoice asks for a 0-based index into the candidates last shown.
		PromptChoice(ctx context.Context, stage int, msg string) (int, error)
		// ShowCandidates presents the ranked candidates of a stage.
		ShowCandidates(ctx context.Context, stage int, candidates []resolve.Candidate) error
	}

	// Resolver ranks catalog entries for a token.
	Resolver interface {
		Resolve(ctx context.Context, kinds catalog.KindSet, token string) ([]resolve.Candidate, error)
	}

	// Binder turns a catalog entry into something runnable.
	Binder interface {
		Bind(entry catalog.Entry) (plugin.Runnable, error)
	}

	// Interpreter evaluates command lines against the catalog.
	Interpreter struct {
		resolver Resolver
		binder   Binder
		logger   *log.Logger
	}

	// Option configures an Interpreter.
	Option func(*Interpreter)
)

// WithLogger sets the logger used to trace evaluation.
func WithLogger(l *log.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.logger = l
		}
	}
}

// New creates an Interpreter.
func New(resolver Resolver, binder Binder, opts ...Option) *Interpreter {
	in := &Interpreter{resolver: resolver, binder: binder, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Evaluate splits raw on whitespace and evaluates it. See EvaluateWords.
func (in *Interpreter) Evaluate(ctx context.Context, fe FrontEnd, raw string) Outcome {
	return in.EvaluateWords(ctx, fe, strings.Fields(raw))
}

// EvaluateWords evaluates an already tokenized command line.
func (in *Interpreter) EvaluateWords(ctx context.Context, fe FrontEnd, words []string) Outcome {
	stages := SplitWords(words)
	if len(stages) == 0 {
		return Failed(&MalformedPipelineError{Reason: "empty command line"})
	}
	for i, st := range stages[1:] {
		if len(st.Args) > 0 {
			return Failed(&MalformedPipelineError{
				Stage:  i + 1,
				Reason: fmt.Sprintf("pipe stage %q takes no arguments", st.String()),
			})
		}
	}

	// Resolution is read-only, so every stage is resolved up front: an unknown
	// token must not leave earlier stages executed.
	candidates := make([][]resolve.Candidate, len(stages))
	for i, st := range stages {
		kinds := resolve.KindsFor(i, len(st.Args))
		cs, err := in.resolver.Resolve(ctx, kinds, st.Token)
		if err != nil {
			return Failed(fmt.Errorf("stage %d: %w", i, err))
		}
		if len(cs) == 0 {
			return Failed(&NotFoundError{Stage: i, Token: st.Token, Kinds: kinds})
		}
		in.logger.Debug("resolved stage", "stage", i, "token", st.Token, "candidates", len(cs))
		candidates[i] = cs
	}

	var current plugin.Value
	for i, st := range stages {
		entry, err := in.choose(ctx, fe, i, candidates[i])
		if err != nil {
			return Failed(err)
		}
		if entry.Kind == catalog.KindApplication {
			if len(stages) > 1 {
				return Failed(&MalformedPipelineError{
					Stage:  i,
					Reason: fmt.Sprintf("application %q produces no value to pipe", entry.Name),
				})
			}
			return in.launch(ctx, entry)
		}

		args, err := in.arguments(ctx, fe, i, st, current)
		if err != nil {
			return Failed(err)
		}
		if err := ctx.Err(); err != nil {
			return Failed(err)
		}
		current, err = in.execute(ctx, i, entry, args)
		if err != nil {
			return Failed(err)
		}
	}
	return Produced(current)
}

// choose returns the only candidate, or asks the front end to pick one.
func (in *Interpreter) choose(ctx context.Context, fe FrontEnd, stage int, cs []resolve.Candidate) (catalog.Entry, error) {
	if len(cs) == 1 {
		return cs[0].Entry, nil
	}
	if err := fe.ShowCandidates(ctx, stage, cs); err != nil {
		return catalog.Entry{}, fmt.Errorf("stage %d: failed to show candidates: %w", stage, err)
	}
	choice, err := fe.PromptChoice(ctx, stage, ChoicePrompt)
	if err != nil {
		return catalog.Entry{}, fmt.Errorf("stage %d: %w", stage, err)
	}
	if choice < 0 || choice >= len(cs) {
		return catalog.Entry{}, &ChoiceError{Stage: stage, Choice: choice, Count: len(cs)}
	}
	return cs[choice].Entry, nil
}

// arguments builds the positional arguments of a stage. The first stage uses
// its literal words, prompting for them when there are none; later stages get
// the previous value.
func (in *Interpreter) arguments(ctx context.Context, fe FrontEnd, stage int, st Stage, prev plugin.Value) ([]plugin.Value, error) {
	if stage > 0 {
		return []plugin.Value{prev}, nil
	}
	words := st.Args
	if len(words) == 0 {
		text, err := fe.PromptText(ctx, stage, ArgumentsPrompt)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", stage, err)
		}
		words = strings.Fields(text)
	}
	args := make([]plugin.Value, len(words))
	for i, w := range words {
		args[i] = w
	}
	return args, nil
}

func (in *Interpreter) execute(ctx context.Context, stage int, entry catalog.Entry, args []plugin.Value) (plugin.Value, error) {
	r, err := in.binder.Bind(entry)
	if err != nil {
		return nil, &ExecutionError{Stage: stage, Entry: entry, Err: err}
	}
	in.logger.Debug("executing stage", "stage", stage, "kind", entry.Kind, "name", entry.Name, "args", len(args))
	v, err := r.Run(ctx, args)
	if err != nil {
		return nil, &ExecutionError{Stage: stage, Entry: entry, Err: err}
	}
	return v, nil
}

// launch starts an application. Launch failures are the runnable's concern and
// never fail the pipeline; a bind failure does.
func (in *Interpreter) launch(ctx context.Context, entry catalog.Entry) Outcome {
	r, err := in.binder.Bind(entry)
	if err != nil {
		return Failed(&ExecutionError{Entry: entry, Err: err})
	}
	in.logger.Debug("launching application", "name", entry.Name, "location", entry.Location)
	if _, err := r.Run(ctx, nil); err != nil {
		in.logger.Warn("application launch failed", "name", entry.Name, "error", err)
	}
	return Launched()
}
