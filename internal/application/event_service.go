package application

import (
	"context"
	"strings"
	"time"

	"github.com/chapternet/directory-api/internal/domain/entity"
	repo "github.com/chapternet/directory-api/internal/domain/repository"
	"github.com/chapternet/directory-api/internal/domain/slug"
	"github.com/chapternet/directory-api/pkg/apperr"
)

// EventService serves chapter events. Event slugs are checked against the
// events table only; every entity type owns its slug namespace.
type EventService struct {
	Events repo.EventRepository
}

func NewEventService(events repo.EventRepository) *EventService {
	return &EventService{Events: events}
}

func (s *EventService) List(ctx context.Context) ([]entity.Event, error) {
	return s.Events.List(ctx)
}

func (s *EventService) ListByChapter(ctx context.Context, chapterID string) ([]entity.Event, error) {
	return s.Events.ListByChapter(ctx, chapterID)
}

func (s *EventService) GetBySlug(ctx context.Context, slugVal string) (*entity.Event, error) {
	return s.Events.GetBySlug(ctx, slugVal)
}

// EventInput carries the create/update payload.
type EventInput struct {
	Title       string
	Description string
	Category    string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	ChapterID   string
}

func (in *EventInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validation("title", "is required")
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return apperr.Validation("start_time", "start and end times are required")
	}
	if !in.EndTime.After(in.StartTime) {
		return apperr.Validation("end_time", "must be after start_time")
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, createdBy string, in EventInput) (*entity.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	allocated, err := slug.Allocate(ctx, in.Title, s.Events.SlugExists)
	if err != nil {
		return nil, err
	}
	e := &entity.Event{
		Title:       strings.TrimSpace(in.Title),
		Slug:        allocated,
		Description: in.Description,
		Category:    in.Category,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Location:    in.Location,
		ChapterID:   in.ChapterID,
		CreatedBy:   createdBy,
	}
	if err := s.Events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Update(ctx context.Context, id string, in EventInput) (*entity.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	e, err := s.Events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Title = strings.TrimSpace(in.Title)
	e.Description = in.Description
	e.Category = in.Category
	e.StartTime = in.StartTime
	e.EndTime = in.EndTime
	e.Location = in.Location
	e.ChapterID = in.ChapterID
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.Events.Delete(ctx, id)
}
