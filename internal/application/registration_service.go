package application

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/chapternet/directory-api/config"
	"github.com/chapternet/directory-api/internal/domain/entity"
	repo "github.com/chapternet/directory-api/internal/domain/repository"
	"github.com/chapternet/directory-api/internal/domain/slug"
	"github.com/chapternet/directory-api/internal/infrastructure/postgres"
	"github.com/chapternet/directory-api/internal/infrastructure/search"
	"github.com/chapternet/directory-api/pkg/apperr"
	"github.com/chapternet/directory-api/pkg/helpers"
	"github.com/chapternet/directory-api/pkg/mailer"
)

// slugRetries bounds how many times a registration is replayed when the
// store's unique index rejects a slug that raced with a concurrent signup.
const slugRetries = 3

const verifyTokenTTL = 24 * time.Hour

// RegistrationService creates the account and its profile as one atomic unit.
// Either both rows exist afterwards, or neither does.
type RegistrationService struct {
	Users    repo.UserRepository
	Profiles repo.ProfileRepository
	Tx       repo.TxManager
	Redis    *redis.Client
	Queue    *helpers.RabbitPublisher
	Index    *search.MemberIndex
	Cfg      *config.Config
	Logger   *logrus.Logger
}

func NewRegistrationService(users repo.UserRepository, profiles repo.ProfileRepository, tx repo.TxManager,
	rdb *redis.Client, queue *helpers.RabbitPublisher, index *search.MemberIndex,
	cfg *config.Config, logger *logrus.Logger) *RegistrationService {
	return &RegistrationService{
		Users: users, Profiles: profiles, Tx: tx,
		Redis: rdb, Queue: queue, Index: index,
		Cfg: cfg, Logger: logger,
	}
}

// RegisterInput is the full signup payload: account fields plus the profile
// that goes live in the directory.
type RegisterInput struct {
	Email                string
	Password             string
	PasswordConfirmation string
	FirstName            string
	LastName             string
	ChapterID            string

	Title          string
	CompanyName    string
	Bio            string
	Industry       string
	Location       string
	Skills         []string
	Certifications []string
	FAQs           []entity.FAQ
	Experience     string
	Status         string
	IsPublic       bool
	Website        string
	LinkedIn       string
	Twitter        string
	Contact        string
	WhatsApp       string
}

func (in *RegisterInput) validate() (entity.ProfileStatus, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return "", apperr.Validation("email", "must be a valid email")
	}
	if len(in.Password) < 8 {
		return "", apperr.Validation("password", "must be at least 8 characters long")
	}
	if in.Password != in.PasswordConfirmation {
		return "", apperr.Validation("password_confirmation", "passwords do not match")
	}
	if strings.TrimSpace(in.FirstName) == "" && strings.TrimSpace(in.LastName) == "" {
		return "", apperr.Validation("first_name", "a name is required")
	}

	status := entity.StatusPending
	if strings.TrimSpace(in.Status) != "" {
		parsed, ok := entity.ParseProfileStatus(in.Status)
		if !ok {
			return "", apperr.Validation("status", "must be one of: ACTIVE, INACTIVE, PENDING")
		}
		status = parsed
	}
	return status, nil
}

// Register allocates a profile slug, then creates user and profile inside one
// transaction. A concurrent signup can steal the slug between the allocator's
// check and our insert; the unique index reports that as a 23505 on the slug
// constraint, and we replay with the next candidate a bounded number of times.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (*repo.MemberRecord, error) {
	status, err := in.validate()
	if err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	// The slug comes from the profile title, scoped to the profile namespace.
	base := slug.Make(in.Title)
	if base == "" {
		base = slug.Placeholder
	}
	allocated, err := slug.Allocate(ctx, in.Title, s.Profiles.SlugExists)
	if err != nil {
		return nil, err
	}

	var rec *repo.MemberRecord
	candidate := allocated
	retryFrom := 0
	for attempt := 0; ; attempt++ {
		rec, err = s.create(ctx, in, hash, status, candidate)
		if err == nil {
			break
		}
		if !postgres.IsUniqueViolation(err, postgres.ProfileSlugConstraint) || attempt >= slugRetries {
			return nil, err
		}
		// Lost the race for this slug; move past it without re-walking
		// candidates we already saw fail.
		candidate, retryFrom, err = s.nextFree(ctx, base, retryFrom)
		if err != nil {
			return nil, err
		}
	}

	s.afterRegister(ctx, rec)
	return rec, nil
}

func (s *RegistrationService) create(ctx context.Context, in RegisterInput, hash string, status entity.ProfileStatus, slugVal string) (*repo.MemberRecord, error) {
	u := &entity.User{
		Email:      in.Email,
		Password:   hash,
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Role:       entity.RoleMember,
		ChapterID:  in.ChapterID,
		IsVerified: false,
	}
	p := &entity.Profile{
		Title:          in.Title,
		CompanyName:    in.CompanyName,
		Bio:            in.Bio,
		Industry:       in.Industry,
		Location:       in.Location,
		Skills:         in.Skills,
		Certifications: in.Certifications,
		FAQs:           in.FAQs,
		Experience:     in.Experience,
		Status:         status,
		IsPublic:       in.IsPublic,
		Website:        in.Website,
		LinkedIn:       in.LinkedIn,
		Twitter:        in.Twitter,
		Contact:        in.Contact,
		WhatsApp:       in.WhatsApp,
		Slug:           slugVal,
	}

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Users.Create(ctx, u); err != nil {
			return err
		}
		p.UserID = u.ID
		return s.Profiles.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return &repo.MemberRecord{User: *u, Profile: *p}, nil
}

// nextFree walks base-N candidates starting past the last counter tried and
// returns the first one the oracle reports free.
func (s *RegistrationService) nextFree(ctx context.Context, base string, from int) (string, int, error) {
	for counter := from + 1; counter <= from+1000; counter++ {
		candidate := slug.Next(base, counter)
		taken, err := s.Profiles.SlugExists(ctx, candidate)
		if err != nil {
			return "", 0, err
		}
		if !taken {
			return candidate, counter, nil
		}
	}
	return "", 0, apperr.Conflict("no free slug for " + base)
}

// afterRegister runs the best-effort side effects: verification email and
// search indexing. Neither can fail the signup that already committed.
func (s *RegistrationService) afterRegister(ctx context.Context, rec *repo.MemberRecord) {
	if err := s.sendVerificationEmail(ctx, &rec.User); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", rec.User.ID).Warn("queue verification email failed")
	}
	if rec.Profile.IsPublic {
		_ = s.Index.Index(ctx, rec)
	}
}

func (s *RegistrationService) sendVerificationEmail(ctx context.Context, u *entity.User) error {
	if s.Redis == nil || s.Queue == nil {
		return nil
	}
	token, err := helpers.GenToken()
	if err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, helpers.KeyVerifyToken(token), u.ID, verifyTokenTTL).Err(); err != nil {
		return err
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TplVerifyEmail,
		Data: map[string]any{
			"Name":      u.FullName(),
			"SiteName":  s.Cfg.SiteName,
			"VerifyURL": s.Cfg.VerifyEmailURL + "?token=" + token,
		},
	}
	return s.Queue.PublishJSON(ctx, job)
}
