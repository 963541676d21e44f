package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/domain/repository"
	"github.com/chapternet/directory-api/pkg/apperr"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *entity.Subscription) error {
	row := db(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO subscriptions (email)
		VALUES ($1)
		RETURNING id, subscribed_at
	`, s.Email)
	if err := row.Scan(&s.ID, &s.SubscribedAt); err != nil {
		if IsUniqueViolation(err, "subscriptions_email_key") {
			return apperr.ConflictField("email", "email is already subscribed")
		}
		return err
	}
	return nil
}

var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)
