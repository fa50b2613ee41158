// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
	"github.com/rapidcopper/rapidcopper/internal/plugin"
	"github.com/rapidcopper/rapidcopper/internal/resolve"
)

// scriptedFrontEnd answers prompts from queues and records what it was shown.
type scriptedFrontEnd struct {
	texts   []string
	choices []int
	err     error

	prompts []string
	shown   [][]string
}

func (f *scriptedFrontEnd) PromptText(_ context.Context, stage int, msg string) (string, error) {
	f.prompts = append(f.prompts, fmt.Sprintf("%d:%s", stage, msg))
	if f.err != nil {
		return "", f.err
	}
	if len(f.texts) == 0 {
		return "", errors.New("unexpected text prompt")
	}
	t := f.texts[0]
	f.texts = f.texts[1:]
	return t, nil
}

func (f *scriptedFrontEnd) PromptChoice(_ context.Context, stage int, msg string) (int, error) {
	f.prompts = append(f.prompts, fmt.Sprintf("%d:%s", stage, msg))
	if f.err != nil {
		return 0, f.err
	}
	if len(f.choices) == 0 {
		return 0, errors.New("unexpected choice prompt")
	}
	c := f.choices[0]
	f.choices = f.choices[1:]
	return c, nil
}

func (f *scriptedFrontEnd) ShowCandidates(_ context.Context, _ int, cs []resolve.Candidate) error {
	var names []string
	for _, c := range cs {
		names = append(names, c.Kind.String()+":"+c.Name)
	}
	f.shown = append(f.shown, names)
	return nil
}

// recordingBinder binds every entry to a function that logs the call.
type recordingBinder struct {
	mu    sync.Mutex
	calls []string
	// results maps an entry name to its behaviour. Missing names echo their args.
	results map[string]func(args []plugin.Value) (plugin.Value, error)
	bindErr map[string]error
}

func (b *recordingBinder) Bind(e catalog.Entry) (plugin.Runnable, error) {
	if err := b.bindErr[e.Name]; err != nil {
		return nil, err
	}
	return plugin.RunnableFunc(func(_ context.Context, args []plugin.Value) (plugin.Value, error) {
		b.mu.Lock()
		b.calls = append(b.calls, fmt.Sprintf("%s:%s(%s)", e.Kind, e.Name, strings.Join(plugin.Strings(args), ",")))
		b.mu.Unlock()
		if e.Kind == catalog.KindApplication {
			return nil, nil
		}
		if fn, ok := b.results[e.Name]; ok {
			return fn(args)
		}
		return e.Name + "(" + strings.Join(plugin.Strings(args), ",") + ")", nil
	}), nil
}
