package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chapternet/directory-api/pkg/apperr"
)

func TestEventCreateValidatesTimeRange(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), "u1", EventInput{
		Title:     "Monthly Meetup",
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	require.Equal(t, "end_time", apperr.FieldOf(err))

	_, err = svc.Create(context.Background(), "u1", EventInput{
		Title:     "Monthly Meetup",
		StartTime: start,
		EndTime:   start,
	})
	require.Error(t, err, "zero-length events are rejected")
}

func TestEventCreateAllocatesOwnSlugNamespace(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewEventService(events)
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	e1, err := svc.Create(context.Background(), "u1", EventInput{
		Title: "Monthly Meetup", StartTime: start, EndTime: start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, "monthly-meetup", e1.Slug)
	require.Equal(t, "u1", e1.CreatedBy)

	e2, err := svc.Create(context.Background(), "u2", EventInput{
		Title: "Monthly Meetup", StartTime: start.AddDate(0, 1, 0), EndTime: start.AddDate(0, 1, 0).Add(2 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, "monthly-meetup-1", e2.Slug)
}

func TestEventUpdateKeepsSlugAndCreator(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewEventService(events)
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	e, err := svc.Create(context.Background(), "u1", EventInput{
		Title: "Monthly Meetup", StartTime: start, EndTime: start.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), e.ID, EventInput{
		Title: "Quarterly Summit", StartTime: start, EndTime: start.Add(3 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, "monthly-meetup", updated.Slug)
	require.Equal(t, "u1", updated.CreatedBy)
	require.Equal(t, "Quarterly Summit", updated.Title)
}
