package repository

import (
	"context"

	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/domain/query"
)

// ArticleRepository defines article record store operations.
type ArticleRepository interface {
	Create(ctx context.Context, a *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Article, error)
	Update(ctx context.Context, a *entity.Article) error
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug string) (bool, error)

	List(ctx context.Context, pred query.Predicate, orderBy string, limit, offset int) ([]entity.Article, error)
	Count(ctx context.Context, pred query.Predicate) (int64, error)
	ListByChapter(ctx context.Context, chapterID string) ([]entity.Article, error)

	// ListRelated returns up to limit articles sharing a category,
	// excluding the article itself, newest first.
	ListRelated(ctx context.Context, category, excludeID string, limit int) ([]entity.Article, error)

	IncrementViews(ctx context.Context, id string) error
}
