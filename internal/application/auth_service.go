package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/chapternet/directory-api/config"
	"github.com/chapternet/directory-api/internal/domain/entity"
	repo "github.com/chapternet/directory-api/internal/domain/repository"
	"github.com/chapternet/directory-api/pkg/apperr"
	"github.com/chapternet/directory-api/pkg/helpers"
	"github.com/chapternet/directory-api/pkg/mailer"
)

const (
	sessionTTL    = 24 * time.Hour
	resetTokenTTL = time.Hour
)

// AuthService handles login, token rotation and the verify/reset email flows.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Queue  *helpers.RabbitPublisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client,
	queue *helpers.RabbitPublisher, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Queue: queue, Cfg: cfg, Logger: logger}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Login validates credentials and issues a token pair. Unverified accounts
// can not log in; they are told to check their inbox instead.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, TokenPair{}, apperr.Unauthorized("invalid credentials")
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, apperr.Unauthorized("invalid credentials")
	}
	if !u.IsVerified {
		return nil, TokenPair{}, apperr.Forbidden("email not verified")
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// issueTokens generates an access/refresh pair and records the session in
// Redis keyed by user; the session id inside ties the pair together.
func (s *AuthService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := helpers.KeySession(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.FullName(),
			"role":       string(u.Role),
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session: the refresh token must carry the session id
// currently on record, and both ids change on success.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", apperr.Unauthorized("invalid refresh token")
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", apperr.Unauthorized("invalid refresh token")
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, helpers.KeySession(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", apperr.Unauthorized("session expired")
		}
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the server-side session; outstanding tokens become useless.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, helpers.KeySession(userID)).Err()
}

// VerifyEmail consumes a verification token and marks the account verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperr.Validation("token", "is required")
	}
	uid, err := s.Redis.Get(ctx, helpers.KeyVerifyToken(token)).Result()
	if err == redis.Nil {
		return apperr.Unauthorized("invalid or expired token")
	}
	if err != nil {
		return apperr.Transient(err)
	}
	if err := s.Users.SetVerified(ctx, uid); err != nil {
		return err
	}
	return s.Redis.Del(ctx, helpers.KeyVerifyToken(token)).Err()
}

// RequestVerification re-issues the verification email for the logged-in
// account. Already-verified accounts get a conflict.
func (s *AuthService) RequestVerification(ctx context.Context, userID string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.IsVerified {
		return apperr.Conflict("email already verified")
	}
	token, err := helpers.GenToken()
	if err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, helpers.KeyVerifyToken(token), u.ID, verifyTokenTTL).Err(); err != nil {
		return apperr.Transient(err)
	}
	if s.Queue == nil {
		return nil
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

// RequestPasswordReset queues a reset email when the address is known. The
// response is the same either way so the endpoint can not be used to probe
// for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil
	}
	token, err := helpers.GenToken()
	if err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, helpers.KeyResetToken(token), u.ID, resetTokenTTL).Err(); err != nil {
		return apperr.Transient(err)
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TplResetPassword,
		Data: map[string]any{
			"Name":     u.FullName(),
			"SiteName": s.Cfg.SiteName,
			"ResetURL": s.Cfg.ResetPasswordURL + "?token=" + token,
		},
	}
	if s.Queue == nil {
		return nil
	}
	return s.Queue.PublishJSON(ctx, job)
}

// ResetPassword consumes a reset token, rewrites the hash and kills any
// active session.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirmation string) error {
	if len(password) < 8 {
		return apperr.Validation("password", "must be at least 8 characters long")
	}
	if password != confirmation {
		return apperr.Validation("password_confirmation", "passwords do not match")
	}
	uid, err := s.Redis.Get(ctx, helpers.KeyResetToken(token)).Result()
	if err == redis.Nil {
		return apperr.Unauthorized("invalid or expired token")
	}
	if err != nil {
		return apperr.Transient(err)
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, uid, hash); err != nil {
		return err
	}
	pipe := s.Redis.Pipeline()
	pipe.Del(ctx, helpers.KeyResetToken(token))
	pipe.Del(ctx, helpers.KeySession(uid))
	_, _ = pipe.Exec(ctx)
	return nil
}
