// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"reflect"
	"testing"

	"gust-cli/internal/runtime"
	"gust-cli/pkg/justfile"
)

func compileSource(t *testing.T, src string) *justfile.Justfile {
	t.Helper()
	dir := t.TempDir()
	jf, err := justfile.Compile(src, dir+"/justfile", dir)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return jf
}

func TestSplitOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		args          []string
		wantOverrides map[string]string
		wantWords     []string
	}{
		{
			name:          "no arguments",
			args:          nil,
			wantOverrides: map[string]string{},
			wantWords:     nil,
		},
		{
			name:          "targets only",
			args:          []string{"build", "test"},
			wantOverrides: map[string]string{},
			wantWords:     []string{"build", "test"},
		},
		{
			name:          "overrides only",
			args:          []string{"a=1", "b=two"},
			wantOverrides: map[string]string{"a": "1", "b": "two"},
			wantWords:     nil,
		},
		{
			name:          "overrides then targets",
			args:          []string{"version=2", "build"},
			wantOverrides: map[string]string{"version": "2"},
			wantWords:     []string{"build"},
		},
		{
			name:          "equals after first target stays an argument",
			args:          []string{"build", "flag=value"},
			wantOverrides: map[string]string{},
			wantWords:     []string{"build", "flag=value"},
		},
		{
			name:          "empty value",
			args:          []string{"a=", "build"},
			wantOverrides: map[string]string{"a": ""},
			wantWords:     []string{"build"},
		},
		{
			name:          "non-name before equals is a target",
			args:          []string{"./x=1"},
			wantOverrides: map[string]string{},
			wantWords:     []string{"./x=1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			overrides, words := splitOverrides(tt.args)
			if !reflect.DeepEqual(overrides, tt.wantOverrides) {
				t.Errorf("overrides = %v, want %v", overrides, tt.wantOverrides)
			}
			if !reflect.DeepEqual(words, tt.wantWords) {
				t.Errorf("words = %v, want %v", words, tt.wantWords)
			}
		})
	}
}

func TestGroupRequestsDefaultRecipe(t *testing.T) {
	t.Parallel()

	jf := compileSource(t, "_hidden:\n\techo hidden\nbuild:\n\techo built\n")
	requests, err := groupRequests(jf, nil)
	if err != nil {
		t.Fatalf("groupRequests() error = %v", err)
	}
	if len(requests) != 1 || requests[0].Target != "build" {
		t.Errorf("requests = %v, want [build]", requests)
	}
}

func TestGroupRequestsNoRecipes(t *testing.T) {
	t.Parallel()

	jf := compileSource(t, "a := \"1\"\n")
	if _, err := groupRequests(jf, nil); err == nil {
		t.Error("groupRequests() error = nil, want no-recipes error")
	}
}

func TestGroupRequestsGreedyArguments(t *testing.T) {
	t.Parallel()

	jf := compileSource(t, "greet name:\n\techo {{name}}\nclean:\n\techo clean\n")
	requests, err := groupRequests(jf, []string{"greet", "world", "clean"})
	if err != nil {
		t.Fatalf("groupRequests() error = %v", err)
	}
	want := []runtime.Request{
		{Target: "greet", Arguments: []string{"world"}},
		{Target: "clean", Arguments: []string{}},
	}
	if len(requests) != len(want) {
		t.Fatalf("requests = %v, want %v", requests, want)
	}
	for i := range want {
		if requests[i].Target != want[i].Target {
			t.Errorf("requests[%d].Target = %q, want %q", i, requests[i].Target, want[i].Target)
		}
		if len(requests[i].Arguments) != len(want[i].Arguments) {
			t.Errorf("requests[%d].Arguments = %v, want %v", i, requests[i].Arguments, want[i].Arguments)
		}
	}
}

func TestGroupRequestsVariadicTakesRest(t *testing.T) {
	t.Parallel()

	jf := compileSource(t, "collect *files:\n\techo {{files}}\nclean:\n\techo clean\n")
	requests, err := groupRequests(jf, []string{"collect", "a", "b", "clean"})
	if err != nil {
		t.Fatalf("groupRequests() error = %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("requests = %v, want a single variadic request", requests)
	}
	if got := requests[0].Arguments; !reflect.DeepEqual(got, []string{"a", "b", "clean"}) {
		t.Errorf("Arguments = %v, want [a b clean]", got)
	}
}

func TestGroupRequestsUnknownTarget(t *testing.T) {
	t.Parallel()

	jf := compileSource(t, "build:\n\techo built\n")
	_, err := groupRequests(jf, []string{"biuld"})
	var unknownErr *runtime.UnknownRecipeError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("groupRequests() error = %v, want UnknownRecipeError", err)
	}
	if unknownErr.Suggestion != "build" {
		t.Errorf("Suggestion = %q, want %q", unknownErr.Suggestion, "build")
	}
}

func TestIsName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s    string
		want bool
	}{
		{"name", true},
		{"_name", true},
		{"name-2", true},
		{"Name", true},
		{"2name", false},
		{"-name", false},
		{"./path", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isName(tt.s); got != tt.want {
			t.Errorf("isName(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
