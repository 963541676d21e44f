package repository

import (
	"context"

	"github.com/chapternet/directory-api/internal/domain/entity"
)

// SubscriptionRepository stores newsletter signups.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *entity.Subscription) error
}
