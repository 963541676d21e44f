package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chapternet/directory-api/pkg/apperr"
)

func TestSubscribeNormalizesEmail(t *testing.T) {
	subs := &fakeSubscriptionRepo{}
	svc := NewNewsletterService(subs, nil, nil, nil)

	sub, err := svc.Subscribe(context.Background(), "  Jane@Example.COM ")
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", sub.Email)
	require.True(t, subs.emails["jane@example.com"])
}

func TestSubscribeRejectsBadAddress(t *testing.T) {
	svc := NewNewsletterService(&fakeSubscriptionRepo{}, nil, nil, nil)

	_, err := svc.Subscribe(context.Background(), "not an address")
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSubscribeSurfacesDuplicateConflict(t *testing.T) {
	subs := &fakeSubscriptionRepo{err: apperr.ConflictField("email", "already subscribed")}
	svc := NewNewsletterService(subs, nil, nil, nil)

	_, err := svc.Subscribe(context.Background(), "jane@example.com")
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
