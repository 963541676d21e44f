package slug

import (
	"context"
	"errors"
	"testing"

	"github.com/chapternet/directory-api/pkg/apperr"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple title", input: "Hello World", expected: "hello-world"},
		{name: "punctuation stripped", input: "Hello, World!", expected: "hello-world"},
		{name: "numbers kept", input: "Chapter 42 Meetup", expected: "chapter-42-meetup"},
		{name: "accents folded", input: "Café résumé", expected: "cafe-resume"},
		{name: "multiple spaces", input: "Hello   World", expected: "hello-world"},
		{name: "stray hyphens", input: "Hello - World", expected: "hello-world"},
		{name: "leading and trailing spaces", input: "  Hello World  ", expected: "hello-world"},
		{name: "only special characters", input: "!@#$%^&*()", expected: ""},
		{name: "umlauts", input: "Über München", expected: "uber-munchen"},
		{name: "empty", input: "", expected: ""},
		{name: "mixed case", input: "HeLLo WoRLd", expected: "hello-world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.input); got != tt.expected {
				t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func existsIn(taken ...string) ExistsFunc {
	set := map[string]bool{}
	for _, s := range taken {
		set[s] = true
	}
	return func(_ context.Context, c string) (bool, error) {
		return set[c], nil
	}
}

func TestAllocate(t *testing.T) {
	ctx := context.Background()

	t.Run("free base returned as-is", func(t *testing.T) {
		got, err := Allocate(ctx, "Hello, World!", existsIn())
		if err != nil {
			t.Fatal(err)
		}
		if got != "hello-world" {
			t.Errorf("got %q, want hello-world", got)
		}
	})

	t.Run("collision takes next suffix", func(t *testing.T) {
		got, err := Allocate(ctx, "Hello World", existsIn("hello-world"))
		if err != nil {
			t.Fatal(err)
		}
		if got != "hello-world-1" {
			t.Errorf("got %q, want hello-world-1", got)
		}
	})

	t.Run("smallest free suffix wins", func(t *testing.T) {
		got, err := Allocate(ctx, "Hello World", existsIn("hello-world", "hello-world-1", "hello-world-2"))
		if err != nil {
			t.Fatal(err)
		}
		if got != "hello-world-3" {
			t.Errorf("got %q, want hello-world-3", got)
		}
	})

	t.Run("empty title gets placeholder", func(t *testing.T) {
		got, err := Allocate(ctx, "!!!", existsIn())
		if err != nil {
			t.Fatal(err)
		}
		if got != Placeholder {
			t.Errorf("got %q, want %q", got, Placeholder)
		}
	})

	t.Run("oracle error propagates", func(t *testing.T) {
		boom := errors.New("store down")
		_, err := Allocate(ctx, "Hello", func(context.Context, string) (bool, error) {
			return false, boom
		})
		if !errors.Is(err, boom) {
			t.Errorf("got %v, want wrapped store error", err)
		}
	})

	t.Run("exhausted attempts surface a conflict", func(t *testing.T) {
		all := func(context.Context, string) (bool, error) { return true, nil }
		_, err := Allocate(ctx, "Hello", all)
		if apperr.KindOf(err) != apperr.KindConflict {
			t.Errorf("got %v, want conflict", err)
		}
	})
}

func TestNext(t *testing.T) {
	if got := Next("hello", 0); got != "hello" {
		t.Errorf("Next(hello, 0) = %q", got)
	}
	if got := Next("hello", 2); got != "hello-2" {
		t.Errorf("Next(hello, 2) = %q", got)
	}
	if got := Next("", 0); got != Placeholder {
		t.Errorf("Next(empty, 0) = %q", got)
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"hello", "hello-world", "hello-world-12", "42"}
	for _, s := range valid {
		if !IsValid(s) {
			t.Errorf("IsValid(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "Hello", "hello world", "-hello", "hello-", "a--b", "héllo"}
	for _, s := range invalid {
		if IsValid(s) {
			t.Errorf("IsValid(%q) = true, want false", s)
		}
	}
}
