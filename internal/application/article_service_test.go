package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chapternet/directory-api/pkg/apperr"
)

func TestReadTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{400, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		body := strings.TrimSpace(strings.Repeat("word ", tt.words))
		if got := readTime(body); got != tt.want {
			t.Errorf("readTime(%d words) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestArticleCreateDerivesSlugAndReadTime(t *testing.T) {
	articles := newFakeArticleRepo()
	svc := NewArticleService(articles)

	a, err := svc.Create(context.Background(), "author-1", ArticleInput{
		Title:       "Scaling Postgres Connections",
		ContentBody: strings.Repeat("word ", 450),
		Category:    "Tech",
	})
	require.NoError(t, err)
	require.Equal(t, "scaling-postgres-connections", a.Slug)
	require.Equal(t, 3, a.ReadTime)
	require.Equal(t, "author-1", a.AuthorID)

	// Same title again lands on a suffixed slug, not a failure.
	b, err := svc.Create(context.Background(), "author-2", ArticleInput{
		Title:       "Scaling Postgres Connections",
		ContentBody: "short body",
	})
	require.NoError(t, err)
	require.Equal(t, "scaling-postgres-connections-1", b.Slug)
}

func TestArticleCreateValidation(t *testing.T) {
	svc := NewArticleService(newFakeArticleRepo())

	_, err := svc.Create(context.Background(), "author-1", ArticleInput{Title: " ", ContentBody: "x"})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), "author-1", ArticleInput{Title: "Hi", ContentBody: ""})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestArticleUpdateKeepsSlug(t *testing.T) {
	articles := newFakeArticleRepo()
	svc := NewArticleService(articles)

	a, err := svc.Create(context.Background(), "author-1", ArticleInput{
		Title:       "Original Title",
		ContentBody: "body text here",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), a.ID, ArticleInput{
		Title:       "Completely Different Title",
		ContentBody: strings.Repeat("word ", 250),
	})
	require.NoError(t, err)
	require.Equal(t, "original-title", updated.Slug, "published URLs stay stable")
	require.Equal(t, "Completely Different Title", updated.Title)
	require.Equal(t, 2, updated.ReadTime, "read time follows the new body")
}

func TestArticleGetBySlugBumpsViewsAndRelated(t *testing.T) {
	articles := newFakeArticleRepo()
	svc := NewArticleService(articles)

	main, err := svc.Create(context.Background(), "a1", ArticleInput{Title: "Main", ContentBody: "b", Category: "Tech"})
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		_, err := svc.Create(context.Background(), "a1", ArticleInput{Title: "Other", ContentBody: "b", Category: "Tech"})
		require.NoError(t, err)
	}
	_, err = svc.Create(context.Background(), "a1", ArticleInput{Title: "Off Topic", ContentBody: "b", Category: "Culture"})
	require.NoError(t, err)

	detail, err := svc.GetBySlug(context.Background(), "main")
	require.NoError(t, err)
	require.Equal(t, int64(1), detail.Article.Views, "response reflects the bump")
	require.Equal(t, []string{main.ID}, articles.viewBumps)
	require.Len(t, detail.Related, 5, "related capped at five")
	for _, r := range detail.Related {
		require.NotEqual(t, main.ID, r.ID)
		require.Equal(t, "Tech", r.Category)
	}
}

func TestArticleListUsesRequestedOrder(t *testing.T) {
	articles := newFakeArticleRepo()
	svc := NewArticleService(articles)

	_, err := svc.List(context.Background(), ArticleListInput{Sort: "popular"})
	require.NoError(t, err)
	require.Equal(t, "a.views DESC, a.created_at DESC", articles.gotOrderBy)

	_, err = svc.List(context.Background(), ArticleListInput{Sort: "nonsense"})
	require.NoError(t, err)
	require.Equal(t, "a.created_at DESC", articles.gotOrderBy, "unknown sort falls back to latest")
}
