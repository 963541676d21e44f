package query

import (
	"reflect"
	"strings"
	"testing"
)

func TestNewMemberFacetsSentinels(t *testing.T) {
	f := NewMemberFacets("  lead  ", "", "", "All Levels", false)
	if f.Search == nil || *f.Search != "lead" {
		t.Errorf("search not trimmed: %+v", f.Search)
	}
	if f.Industry != nil {
		t.Error("empty industry should be absent")
	}
	if f.Experience != nil {
		t.Error("'All Levels' sentinel should map to absent")
	}
}

func TestNewArticleFacetsSentinels(t *testing.T) {
	f := NewArticleFacets("", "all categories")
	if f.Search != nil || f.Category != nil {
		t.Errorf("sentinels should be absent, got %+v", f)
	}
	f = NewArticleFacets("go", "Tech")
	if f.Category == nil || *f.Category != "Tech" {
		t.Errorf("real category dropped: %+v", f.Category)
	}
}

func TestComposeMembersVisibilityGate(t *testing.T) {
	// The gate is present for every facet combination and always leads.
	cases := []MemberFacets{
		{},
		NewMemberFacets("lead", "", "", "", false),
		NewMemberFacets("", "Finance", "chapter-1", "Senior", true),
	}
	for _, f := range cases {
		p := ComposeMembers(f)
		if !strings.HasPrefix(p.SQL, "p.is_public = TRUE") {
			t.Errorf("visibility gate missing or not first: %q", p.SQL)
		}
	}
}

func TestComposeMembersNoFacets(t *testing.T) {
	p := ComposeMembers(MemberFacets{})
	if p.SQL != "p.is_public = TRUE" {
		t.Errorf("unexpected SQL: %q", p.SQL)
	}
	if len(p.Args) != 0 {
		t.Errorf("unexpected args: %v", p.Args)
	}
}

func TestComposeMembersAllFacets(t *testing.T) {
	f := NewMemberFacets("lead", "Finance", "chapter-1", "Senior", true)
	p := ComposeMembers(f)

	want := "p.is_public = TRUE" +
		" AND (u.first_name ILIKE $1 OR u.last_name ILIKE $2 OR p.title ILIKE $3 OR p.company_name ILIKE $4 OR p.bio ILIKE $5 OR p.skills::text ILIKE $6)" +
		" AND LOWER(p.industry) = LOWER($7)" +
		" AND u.chapter_id = $8" +
		" AND LOWER(p.experience) = LOWER($9)" +
		" AND u.is_verified = TRUE"
	if p.SQL != want {
		t.Errorf("SQL mismatch:\n got %q\nwant %q", p.SQL, want)
	}

	wantArgs := []any{"%lead%", "%lead%", "%lead%", "%lead%", "%lead%", "%lead%", "Finance", "chapter-1", "Senior"}
	if !reflect.DeepEqual(p.Args, wantArgs) {
		t.Errorf("args mismatch: got %v want %v", p.Args, wantArgs)
	}
}

func TestComposeMembersDeterministic(t *testing.T) {
	f := NewMemberFacets("ann", "Finance", "", "", true)
	a := ComposeMembers(f)
	b := ComposeMembers(f)
	if a.SQL != b.SQL || !reflect.DeepEqual(a.Args, b.Args) {
		t.Errorf("composition is not deterministic: %v vs %v", a, b)
	}
}

func TestComposeMembersAbsentFacetRelaxes(t *testing.T) {
	// Removing a facet must drop its condition, never add one.
	full := ComposeMembers(NewMemberFacets("lead", "Finance", "c1", "Senior", true))
	relaxed := ComposeMembers(NewMemberFacets("lead", "", "c1", "Senior", true))

	if strings.Count(relaxed.SQL, " AND ") >= strings.Count(full.SQL, " AND ") {
		t.Errorf("dropping a facet did not relax the predicate:\nfull    %q\nrelaxed %q", full.SQL, relaxed.SQL)
	}
	if strings.Contains(relaxed.SQL, "p.industry") {
		t.Error("absent industry facet still constrained")
	}
}

func TestComposeMembersEscapesLikeInput(t *testing.T) {
	p := ComposeMembers(NewMemberFacets("100%_done", "", "", "", false))
	got, ok := p.Args[0].(string)
	if !ok || got != `%100\%\_done%` {
		t.Errorf("LIKE metacharacters not escaped: %v", p.Args[0])
	}
}

func TestComposeArticles(t *testing.T) {
	t.Run("no facets is TRUE", func(t *testing.T) {
		p := ComposeArticles(ArticleFacets{})
		if p.SQL != "TRUE" || len(p.Args) != 0 {
			t.Errorf("got %v", p)
		}
	})

	t.Run("search and category", func(t *testing.T) {
		p := ComposeArticles(NewArticleFacets("go", "Tech"))
		want := "(a.title ILIKE $1 OR a.tags::text ILIKE $2) AND LOWER(a.category) = LOWER($3)"
		if p.SQL != want {
			t.Errorf("got %q want %q", p.SQL, want)
		}
		if !reflect.DeepEqual(p.Args, []any{"%go%", "%go%", "Tech"}) {
			t.Errorf("args: %v", p.Args)
		}
	})
}

func TestComposeAccounts(t *testing.T) {
	t.Run("no terms is TRUE", func(t *testing.T) {
		p := ComposeAccounts(NewAccountFacets("   "))
		if p.SQL != "TRUE" {
			t.Errorf("got %q", p.SQL)
		}
	})

	t.Run("terms OR-combined", func(t *testing.T) {
		p := ComposeAccounts(NewAccountFacets("ann lead"))
		want := "(u.first_name ILIKE $1 OR u.last_name ILIKE $1 OR u.email ILIKE $1)" +
			" OR (u.first_name ILIKE $2 OR u.last_name ILIKE $2 OR u.email ILIKE $2)"
		if p.SQL != want {
			t.Errorf("got %q want %q", p.SQL, want)
		}
		if !reflect.DeepEqual(p.Args, []any{"%ann%", "%lead%"}) {
			t.Errorf("args: %v", p.Args)
		}
	})
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in   string
		want Sort
	}{
		{"latest", SortLatest},
		{"popular", SortPopular},
		{"read-time", SortReadTime},
		{"", SortLatest},
		{"bogus", SortLatest},
	}
	for _, tt := range tests {
		if got := ParseSort(tt.in); got != tt.want {
			t.Errorf("ParseSort(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArticleOrder(t *testing.T) {
	if SortPopular.ArticleOrder() != "a.views DESC, a.created_at DESC" {
		t.Error("popular ordering must tie-break on created_at DESC")
	}
	if SortReadTime.ArticleOrder() != "a.read_time ASC, a.created_at DESC" {
		t.Error("read-time ordering must be ascending with created_at tie-break")
	}
	if SortLatest.ArticleOrder() != "a.created_at DESC" {
		t.Error("latest ordering must be created_at DESC")
	}
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		number, size         int
		wantNumber, wantSize int
	}{
		{0, 0, 1, DefaultPageSize},
		{-3, -1, 1, DefaultPageSize},
		{2, 25, 2, 25},
		{1, 500, 1, MaxPageSize},
	}
	for _, tt := range tests {
		p := NewPage(tt.number, tt.size)
		if p.Number != tt.wantNumber || p.Size != tt.wantSize {
			t.Errorf("NewPage(%d, %d) = %+v", tt.number, tt.size, p)
		}
	}
	if p := NewPage(3, 10); p.Offset() != 20 || p.Limit() != 10 {
		t.Errorf("offset/limit wrong: %+v", p)
	}
}
