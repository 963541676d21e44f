package application

import (
	"context"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chapternet/directory-api/config"
	"github.com/chapternet/directory-api/internal/domain/entity"
	repo "github.com/chapternet/directory-api/internal/domain/repository"
	"github.com/chapternet/directory-api/pkg/apperr"
	"github.com/chapternet/directory-api/pkg/helpers"
	"github.com/chapternet/directory-api/pkg/mailer"
)

// NewsletterService records subscriptions and queues the welcome email.
type NewsletterService struct {
	Subs   repo.SubscriptionRepository
	Queue  *helpers.RabbitPublisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewNewsletterService(subs repo.SubscriptionRepository, queue *helpers.RabbitPublisher,
	cfg *config.Config, logger *logrus.Logger) *NewsletterService {
	return &NewsletterService{Subs: subs, Queue: queue, Cfg: cfg, Logger: logger}
}

// Subscribe stores the address and queues a welcome email. A duplicate
// address reports a conflict; the welcome email is best-effort.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*entity.Subscription, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation("email", "must be a valid email")
	}

	sub := &entity.Subscription{Email: email}
	if err := s.Subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	if s.Queue != nil {
		job := mailer.EmailJob{
			To:       email,
			Template: mailer.TplNewsletterWelcome,
			Data: map[string]any{
				"SiteName":     s.Cfg.SiteName,
				"DirectoryURL": s.Cfg.DirectoryURL,
			},
		}
		if err := s.Queue.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Warn("queue welcome email failed")
		}
	}
	return sub, nil
}
