package application

import (
	"context"
	"strings"

	"github.com/chapternet/directory-api/internal/domain/entity"
	repo "github.com/chapternet/directory-api/internal/domain/repository"
	"github.com/chapternet/directory-api/internal/domain/slug"
	"github.com/chapternet/directory-api/pkg/apperr"
)

// ChapterService serves the chapter list and the editor dashboard: one
// chapter with its members, articles and events.
type ChapterService struct {
	Chapters repo.ChapterRepository
	Users    repo.UserRepository
	Articles repo.ArticleRepository
	Events   repo.EventRepository
}

func NewChapterService(chapters repo.ChapterRepository, users repo.UserRepository,
	articles repo.ArticleRepository, events repo.EventRepository) *ChapterService {
	return &ChapterService{Chapters: chapters, Users: users, Articles: articles, Events: events}
}

func (s *ChapterService) List(ctx context.Context) ([]entity.Chapter, error) {
	return s.Chapters.List(ctx)
}

func (s *ChapterService) Create(ctx context.Context, name string) (*entity.Chapter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "is required")
	}
	allocated, err := slug.Allocate(ctx, name, s.Chapters.SlugExists)
	if err != nil {
		return nil, err
	}
	c := &entity.Chapter{Name: name, Slug: allocated}
	if err := s.Chapters.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Dashboard aggregates everything an editor sees for one chapter.
type Dashboard struct {
	Chapter  entity.Chapter
	Members  []repo.MemberRecord
	Articles []entity.Article
	Events   []entity.Event
}

// Dashboard loads one chapter's view. Editors only see the chapter they are
// assigned to; admins see any.
func (s *ChapterService) Dashboard(ctx context.Context, chapterID, requesterID string, role entity.Role) (*Dashboard, error) {
	if role != entity.RoleAdmin {
		u, err := s.Users.GetByID(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		if u.ChapterID != chapterID {
			return nil, apperr.Forbidden("not your chapter")
		}
	}
	c, err := s.Chapters.GetByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	members, err := s.Users.ListByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	articles, err := s.Articles.ListByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	events, err := s.Events.ListByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Chapter: *c, Members: members, Articles: articles, Events: events}, nil
}
