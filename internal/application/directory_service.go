package application

import (
	"context"

	repo "github.com/chapternet/directory-api/internal/domain/repository"
	"github.com/chapternet/directory-api/internal/domain/query"
	"github.com/chapternet/directory-api/pkg/apperr"
)

// DirectoryService answers the public member directory: faceted search with
// stable ordering and bounded pages. Only public profiles are ever visible
// through this service, regardless of what the caller asks for.
type DirectoryService struct {
	Users    repo.UserRepository
	Profiles repo.ProfileRepository
	Chapters repo.ChapterRepository
}

func NewDirectoryService(users repo.UserRepository, profiles repo.ProfileRepository, chapters repo.ChapterRepository) *DirectoryService {
	return &DirectoryService{Users: users, Profiles: profiles, Chapters: chapters}
}

// MemberSearchInput carries the raw facet strings from the transport layer.
type MemberSearchInput struct {
	Search       string
	Industry     string
	Location     string // chapter id
	Experience   string
	VerifiedOnly bool
	Page         int
	PageSize     int
}

// MemberPage is one page of directory results with pagination metadata.
type MemberPage struct {
	Items      []repo.MemberRecord
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// SearchMembers composes the facet predicate and fetches one page plus the
// total count for the same predicate.
func (s *DirectoryService) SearchMembers(ctx context.Context, in MemberSearchInput) (*MemberPage, error) {
	facets := query.NewMemberFacets(in.Search, in.Industry, in.Location, in.Experience, in.VerifiedOnly)
	pred := query.ComposeMembers(facets)
	page := query.NewPage(in.Page, in.PageSize)

	total, err := s.Users.CountMembers(ctx, pred)
	if err != nil {
		return nil, err
	}
	items, err := s.Users.SearchMembers(ctx, pred, page.Limit(), page.Offset())
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

// GetBySlug resolves a single public member profile by its slug. Private
// profiles are indistinguishable from missing ones.
func (s *DirectoryService) GetBySlug(ctx context.Context, slugVal string) (*repo.MemberRecord, error) {
	p, err := s.Profiles.GetBySlug(ctx, slugVal)
	if err != nil {
		return nil, err
	}
	if !p.IsPublic {
		return nil, apperr.NotFound("member not found")
	}
	u, err := s.Users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	rec := &repo.MemberRecord{User: *u, Profile: *p}
	if u.ChapterID != "" {
		if c, err := s.Chapters.GetByID(ctx, u.ChapterID); err == nil {
			rec.Chapter = c
		}
	}
	return rec, nil
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := int(total) / size
	if int(total)%size != 0 {
		pages++
	}
	return pages
}
