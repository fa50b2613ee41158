// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"errors"
	"testing"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
	"github.com/rapidcopper/rapidcopper/internal/plugin"
)

func run(t *testing.T, module string, args ...plugin.Value) (plugin.Value, error) {
	t.Helper()
	b, ok := plugin.DefaultRegistry.Lookup(module)
	if !ok {
		t.Fatalf("builtin %q not registered", module)
	}
	return b.Run(context.Background(), args)
}

func TestBuiltins(t *testing.T) {
	t.Parallel()
	tests := []struct {
		module string
		args   []plugin.Value
		want   plugin.Value
	}{
		{"action_greet", []plugin.Value{"world"}, "hello world"},
		{"action_greet", []plugin.Value{"big", "world"}, "hello big world"},
		{"action_greet", nil, "hello "},
		{"action_echo", []plugin.Value{"a", 1, true}, "a 1 true"},
		{"pipe_upper", []plugin.Value{"hello world"}, "HELLO WORLD"},
		{"pipe_lower", []plugin.Value{"HeLLo"}, "hello"},
		{"pipe_trim", []plugin.Value{"  x \n"}, "x"},
		{"pipe_reverse", []plugin.Value{"héllo"}, "olléh"},
		{"pipe_sort", []plugin.Value{"b\na\nc\n"}, "a\nb\nc"},
		{"pipe_wc", []plugin.Value{"one two\nthree"}, "2 3 13"},
		{"pipe_wc", []plugin.Value{""}, "0 0 0"},
		{"pipe_base64", []plugin.Value{"hi"}, "aGk="},
		{"pipe_upper", []plugin.Value{nil}, ""},
	}
	for _, tt := range tests {
		got, err := run(t, tt.module, tt.args...)
		if err != nil {
			t.Errorf("%s(%v) error: %v", tt.module, tt.args, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s(%v) = %q, want %q", tt.module, tt.args, got, tt.want)
		}
	}
}

func TestPipesRequireExactlyOneValue(t *testing.T) {
	t.Parallel()
	for _, module := range plugin.DefaultRegistry.Modules() {
		kind, _, ok := plugin.ParseSourceName(module)
		if !ok {
			t.Errorf("module %q does not follow the naming convention", module)
			continue
		}
		if kind != catalog.KindPipe {
			continue
		}
		for _, args := range [][]plugin.Value{nil, {"a", "b"}} {
			if _, err := run(t, module, args...); !errors.Is(err, ErrArity) {
				t.Errorf("%s with %d args: error = %v, want ErrArity", module, len(args), err)
			}
		}
	}
}

func TestBuiltinsAreDocumented(t *testing.T) {
	t.Parallel()
	for _, module := range plugin.DefaultRegistry.Modules() {
		b, _ := plugin.DefaultRegistry.Lookup(module)
		if b.Doc == "" {
			t.Errorf("builtin %q has no doc string", module)
		}
	}
}
