package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/domain/query"
	repo "github.com/chapternet/directory-api/internal/domain/repository"
	"github.com/chapternet/directory-api/internal/infrastructure/search"
	"github.com/chapternet/directory-api/pkg/apperr"
	"github.com/chapternet/directory-api/pkg/helpers"
)

var errGCSUnavailable = errors.New("media storage not configured")

// UserService serves the authenticated member's own account and the admin
// back office over accounts.
type UserService struct {
	Users    repo.UserRepository
	Profiles repo.ProfileRepository
	Chapters repo.ChapterRepository
	GCS      *storage.Client
	Bucket   string
	Redis    *redis.Client
	Index    *search.MemberIndex
	Logger   *logrus.Logger
}

func NewUserService(users repo.UserRepository, profiles repo.ProfileRepository, chapters repo.ChapterRepository,
	gcs *storage.Client, bucket string, rdb *redis.Client, index *search.MemberIndex, logger *logrus.Logger) *UserService {
	return &UserService{
		Users: users, Profiles: profiles, Chapters: chapters,
		GCS: gcs, Bucket: bucket, Redis: rdb, Index: index, Logger: logger,
	}
}

// Me returns the caller's account, profile and chapter.
func (s *UserService) Me(ctx context.Context, userID string) (*repo.MemberRecord, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec := &repo.MemberRecord{User: *u, Profile: *p}
	if u.ChapterID != "" {
		if c, cErr := s.Chapters.GetByID(ctx, u.ChapterID); cErr == nil {
			rec.Chapter = c
		}
	}
	return rec, nil
}

// UpdateProfileInput carries the mutable profile fields. Nil pointers mean
// "leave unchanged"; the slug is not here at all, it never changes.
type UpdateProfileInput struct {
	Title          *string
	CompanyName    *string
	Bio            *string
	Industry       *string
	Location       *string
	Skills         []string
	Certifications []string
	FAQs           []entity.FAQ
	Experience     *string
	Status         *string
	IsPublic       *bool
	Website        *string
	LinkedIn       *string
	Twitter        *string
	Contact        *string
	WhatsApp       *string
}

// UpdateProfile applies partial changes to the caller's profile and keeps the
// search index in step with the visibility flag.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setStr(&p.Title, in.Title)
	setStr(&p.CompanyName, in.CompanyName)
	setStr(&p.Bio, in.Bio)
	setStr(&p.Industry, in.Industry)
	setStr(&p.Location, in.Location)
	setStr(&p.Experience, in.Experience)
	setStr(&p.Website, in.Website)
	setStr(&p.LinkedIn, in.LinkedIn)
	setStr(&p.Twitter, in.Twitter)
	setStr(&p.Contact, in.Contact)
	setStr(&p.WhatsApp, in.WhatsApp)
	if in.Skills != nil {
		p.Skills = in.Skills
	}
	if in.Certifications != nil {
		p.Certifications = in.Certifications
	}
	if in.FAQs != nil {
		p.FAQs = in.FAQs
	}
	if in.Status != nil {
		status, ok := entity.ParseProfileStatus(*in.Status)
		if !ok {
			return nil, apperr.Validation("status", "must be one of: ACTIVE, INACTIVE, PENDING")
		}
		p.Status = status
	}
	if in.IsPublic != nil {
		p.IsPublic = *in.IsPublic
	}

	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	s.reindex(ctx, userID, p)
	return p, nil
}

// UploadAvatar stores the image in GCS under avatars/<uid>/ and records the
// public URL on the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.Bucket == "" {
		return "", apperr.Transient(errGCSUnavailable)
	}
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.Bucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	p.ImageURL = url
	if err := s.Profiles.Update(ctx, p); err != nil {
		return "", err
	}
	s.reindex(ctx, userID, p)
	return url, nil
}

func (s *UserService) reindex(ctx context.Context, userID string, p *entity.Profile) {
	if s.Index == nil {
		return
	}
	if !p.IsPublic {
		_ = s.Index.Remove(ctx, userID)
		return
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return
	}
	_ = s.Index.Index(ctx, &repo.MemberRecord{User: *u, Profile: *p})
}

// --- admin back office ---

// ListAccountsInput drives the admin account listing.
type ListAccountsInput struct {
	Search   string
	Page     int
	PageSize int
}

// ListAccounts returns one page of accounts matching the free-text search,
// newest first. No visibility gate: this path is role-protected.
func (s *UserService) ListAccounts(ctx context.Context, in ListAccountsInput) (*MemberPage, error) {
	pred := query.ComposeAccounts(query.NewAccountFacets(in.Search))
	page := query.NewPage(in.Page, in.PageSize)

	total, err := s.Users.CountAccounts(ctx, pred)
	if err != nil {
		return nil, err
	}
	items, err := s.Users.ListAccounts(ctx, pred, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return &MemberPage{
		Items:      items,
		Total:      total,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: totalPages(total, page.Size),
	}, nil
}

// AdminUpdateInput carries the account fields only admins may touch.
type AdminUpdateInput struct {
	Role      *string
	ChapterID *string
	Verified  *bool
}

func (s *UserService) AdminUpdateUser(ctx context.Context, userID string, in AdminUpdateInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		role, ok := entity.ParseRole(*in.Role)
		if !ok {
			return nil, apperr.Validation("role", "unknown role")
		}
		u.Role = role
	}
	if in.ChapterID != nil {
		u.ChapterID = *in.ChapterID
	}
	if in.Verified != nil {
		u.IsVerified = *in.Verified
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// AdminDeleteUser removes the account; the profile row cascades, and the
// session and search document go with it.
func (s *UserService) AdminDeleteUser(ctx context.Context, userID string) error {
	if err := s.Users.Delete(ctx, userID); err != nil {
		return err
	}
	if s.Redis != nil {
		_ = s.Redis.Del(ctx, helpers.KeySession(userID)).Err()
	}
	if s.Index != nil {
		_ = s.Index.Remove(ctx, userID)
	}
	return nil
}

// QuickSearch is the admin type-ahead over the Elasticsearch member index.
func (s *UserService) QuickSearch(ctx context.Context, q string, size int) ([]search.MemberDoc, error) {
	return s.Index.Quick(ctx, q, size)
}
