// Package slug derives URL-safe, unique-per-namespace identifiers from
// display titles. Uniqueness is checked cooperatively through an existence
// oracle; the storage layer's unique index on each slug column is the
// authoritative guard against concurrent allocation.
package slug

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/chapternet/directory-api/pkg/apperr"
)

// Placeholder is used when a title normalizes to nothing at all.
const Placeholder = "untitled"

// maxAttempts bounds the allocation loop; past it the caller gets a conflict
// instead of an unbounded scan.
const maxAttempts = 1000

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Make converts display text into the base slug form: accents folded,
// lower-cased, whitespace and punctuation collapsed to single hyphens,
// anything outside [a-z0-9-] stripped, hyphens trimmed at both ends.
func Make(s string) string {
	// Decompose accents and drop combining marks
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, _ := transform.String(t, s)

	out = strings.ToLower(out)
	out = strings.Join(strings.Fields(out), "-")
	out = nonSlugChars.ReplaceAllString(out, "")
	out = multipleHyphens.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// ExistsFunc reports whether a candidate slug is already taken within one
// entity namespace.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Allocate returns the first free slug for the given display text: base,
// then base-1, base-2, ... (smallest suffix wins). Empty bases fall back to
// the placeholder literal. The loop is capped; exhausting it surfaces a
// conflict error rather than spinning.
func Allocate(ctx context.Context, text string, exists ExistsFunc) (string, error) {
	base := Make(text)
	if base == "" {
		base = Placeholder
	}

	candidate := base
	for counter := 1; counter <= maxAttempts; counter++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(counter)
	}
	return "", apperr.Conflict("no free slug for " + strconv.Quote(base))
}

// Next returns the candidate for a given retry counter without consulting
// the oracle. Counter zero yields the bare base; used by the registration
// orchestrator when the store's unique index rejects a write that raced.
func Next(base string, counter int) string {
	if base == "" {
		base = Placeholder
	}
	if counter <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(counter)
}

// IsValid checks the persisted slug format: lower-case ASCII alphanumerics
// and single hyphens, no leading/trailing hyphen.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' || strings.Contains(s, "--") {
		return false
	}
	return true
}
