package repository

import (
	"context"

	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/domain/query"
)

// MemberRecord is the joined read model returned by directory searches:
// the account, its profile, and the chapter when one is assigned.
type MemberRecord struct {
	User    entity.User
	Profile entity.Profile
	Chapter *entity.Chapter
}

// UserRepository defines user-related record store operations.
// Search methods take a composed predicate; they never build facet logic
// themselves.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	SetVerified(ctx context.Context, id string) error
	IsVerified(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error

	// SearchMembers applies a member predicate over users joined with
	// profiles and chapters, deduplicated by user identity before paging.
	SearchMembers(ctx context.Context, pred query.Predicate, limit, offset int) ([]MemberRecord, error)
	CountMembers(ctx context.Context, pred query.Predicate) (int64, error)

	// ListAccounts applies an account predicate for the admin listing,
	// ordered by creation time descending.
	ListAccounts(ctx context.Context, pred query.Predicate, limit, offset int) ([]MemberRecord, error)
	CountAccounts(ctx context.Context, pred query.Predicate) (int64, error)

	ListByChapter(ctx context.Context, chapterID string) ([]MemberRecord, error)
}
