package repository

import (
	"context"

	"github.com/chapternet/directory-api/internal/domain/entity"
)

// EventRepository defines event record store operations. List orders by
// start time ascending.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Event, error)
	List(ctx context.Context) ([]entity.Event, error)
	ListByChapter(ctx context.Context, chapterID string) ([]entity.Event, error)
	Update(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}
