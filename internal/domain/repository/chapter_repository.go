package repository

import (
	"context"

	"github.com/chapternet/directory-api/internal/domain/entity"
)

// ChapterRepository defines chapter record store operations.
type ChapterRepository interface {
	Create(ctx context.Context, c *entity.Chapter) error
	GetByID(ctx context.Context, id string) (*entity.Chapter, error)
	List(ctx context.Context) ([]entity.Chapter, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}
