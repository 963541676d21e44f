package repository

import (
	"context"

	"github.com/chapternet/directory-api/internal/domain/entity"
)

// ProfileRepository defines profile record store operations. SlugExists is
// the uniqueness oracle handed to the slug allocator, scoped to the profile
// namespace.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}
