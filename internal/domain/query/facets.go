// Package query turns optional search facets into store-native predicates.
// Composition is pure and deterministic: the same facet set always yields the
// same parameterized SQL fragment, and an absent facet contributes no
// constraint at all. Repositories embed the fragment into their SELECTs.
package query

import (
	"strconv"
	"strings"
)

// Sentinel values the transport layer still sends for "no filter". They are
// mapped to absent here, once, instead of at every call site.
const (
	sentinelAllCategories = "all categories"
	sentinelAllLevels     = "all levels"
)

// Predicate is a parameterized WHERE fragment ($1.. placeholders) ready to be
// embedded by a repository. SQL is never empty; an unconstrained predicate is
// the literal TRUE.
type Predicate struct {
	SQL  string
	Args []any
}

// MemberFacets are the optional dimensions of a public member search.
// A nil field means "no constraint". Build values through NewMemberFacets so
// sentinel mapping stays centralized.
type MemberFacets struct {
	Search       *string
	Industry     *string
	Location     *string // chapter identity, not chapter name
	Experience   *string
	VerifiedOnly bool
}

// NewMemberFacets trims raw inputs and maps empty strings and the
// "all levels" sentinel to absent.
func NewMemberFacets(search, industry, location, experience string, verifiedOnly bool) MemberFacets {
	return MemberFacets{
		Search:       optional(search),
		Industry:     optional(industry),
		Location:     optional(location),
		Experience:   optionalExcept(experience, sentinelAllLevels),
		VerifiedOnly: verifiedOnly,
	}
}

// ArticleFacets are the optional dimensions of the article listing.
type ArticleFacets struct {
	Search   *string
	Category *string
}

// NewArticleFacets trims raw inputs and maps empty strings and the
// "all categories" sentinel to absent.
func NewArticleFacets(search, category string) ArticleFacets {
	return ArticleFacets{
		Search:   optional(search),
		Category: optionalExcept(category, sentinelAllCategories),
	}
}

// AccountFacets drive the admin account list: free text split into terms,
// each term matched against name and email, terms OR-combined.
type AccountFacets struct {
	Terms []string
}

// NewAccountFacets splits free text on whitespace into search terms.
func NewAccountFacets(search string) AccountFacets {
	return AccountFacets{Terms: strings.Fields(search)}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalExcept(s, sentinel string) *string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, sentinel) {
		return nil
	}
	return &s
}

// likePattern wraps a term for case-insensitive substring matching, escaping
// the LIKE metacharacters in user input.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// builder accumulates AND-combined conditions with sequential placeholders.
type builder struct {
	conds []string
	args  []any
}

func (b *builder) next() string {
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) add(cond string, args ...any) {
	for _, a := range args {
		b.args = append(b.args, a)
		cond = strings.Replace(cond, "?", b.next(), 1)
	}
	b.conds = append(b.conds, cond)
}

func (b *builder) predicate() Predicate {
	if len(b.conds) == 0 {
		return Predicate{SQL: "TRUE"}
	}
	return Predicate{SQL: strings.Join(b.conds, " AND "), Args: b.args}
}

// ComposeMembers builds the public directory predicate over users u joined
// with profiles p. The visibility gate is injected unconditionally and first;
// callers cannot disable it. All other facets AND onto it, with the free-text
// facet contributing a single OR-group.
func ComposeMembers(f MemberFacets) Predicate {
	b := &builder{}
	b.add("p.is_public = TRUE")

	if f.Search != nil {
		b.add("(u.first_name ILIKE ? OR u.last_name ILIKE ? OR p.title ILIKE ? OR p.company_name ILIKE ? OR p.bio ILIKE ? OR p.skills::text ILIKE ?)",
			repeat(likePattern(*f.Search), 6)...)
	}
	if f.Industry != nil {
		b.add("LOWER(p.industry) = LOWER(?)", *f.Industry)
	}
	if f.Location != nil {
		b.add("u.chapter_id = ?", *f.Location)
	}
	if f.Experience != nil {
		b.add("LOWER(p.experience) = LOWER(?)", *f.Experience)
	}
	if f.VerifiedOnly {
		b.add("u.is_verified = TRUE")
	}
	return b.predicate()
}

// ComposeArticles builds the article listing predicate over articles a.
func ComposeArticles(f ArticleFacets) Predicate {
	b := &builder{}
	if f.Search != nil {
		b.add("(a.title ILIKE ? OR a.tags::text ILIKE ?)", repeat(likePattern(*f.Search), 2)...)
	}
	if f.Category != nil {
		b.add("LOWER(a.category) = LOWER(?)", *f.Category)
	}
	return b.predicate()
}

// ComposeAccounts builds the admin account list predicate over users u.
// No visibility gate: this path is role-protected, not public.
func ComposeAccounts(f AccountFacets) Predicate {
	if len(f.Terms) == 0 {
		return Predicate{SQL: "TRUE"}
	}
	b := &builder{}
	groups := make([]string, 0, len(f.Terms))
	for _, term := range f.Terms {
		p := likePattern(term)
		b.args = append(b.args, p)
		n := b.next()
		groups = append(groups, "(u.first_name ILIKE "+n+" OR u.last_name ILIKE "+n+" OR u.email ILIKE "+n+")")
	}
	return Predicate{SQL: strings.Join(groups, " OR "), Args: b.args}
}

func repeat(v any, n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = v
	}
	return out
}
