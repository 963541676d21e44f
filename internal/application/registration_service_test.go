package application

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/pkg/apperr"
	"github.com/chapternet/directory-api/pkg/helpers"
)

func newRegistrationFixture() (*RegistrationService, *fakeUserRepo, *fakeProfileRepo, *fakeTx) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	tx := &fakeTx{users: users, profiles: profiles}
	svc := NewRegistrationService(users, profiles, tx, nil, nil, nil, nil, nil)
	return svc, users, profiles, tx
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:                "jane@example.com",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
		FirstName:            "Jane",
		LastName:             "Doe",
		Title:                "CTO",
		Industry:             "Finance",
		IsPublic:             true,
	}
}

func slugConflict() *pgconn.PgError {
	return &pgconn.PgError{Code: "23505", ConstraintName: "profiles_slug_key"}
}

func TestRegisterCreatesAccountAndProfile(t *testing.T) {
	svc, users, profiles, tx := newRegistrationFixture()

	rec, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	require.Equal(t, "cto", rec.Profile.Slug, "slug derives from the profile title")
	require.Equal(t, entity.RoleMember, rec.User.Role, "role must never come from the payload")
	require.False(t, rec.User.IsVerified)
	require.Equal(t, entity.StatusPending, rec.Profile.Status, "missing status defaults to PENDING")
	require.Equal(t, rec.User.ID, rec.Profile.UserID)
	require.Equal(t, 1, tx.calls, "account and profile must share one transaction")

	require.Len(t, users.users, 1)
	require.Len(t, profiles.byUser, 1)
	require.True(t, helpers.CompareHashAndPassword(rec.User.Password, "supersecret"))
	require.NotEqual(t, "supersecret", rec.User.Password)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
		field  string
	}{
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"short password", func(in *RegisterInput) { in.Password, in.PasswordConfirmation = "short", "short" }, "password"},
		{"mismatched confirmation", func(in *RegisterInput) { in.PasswordConfirmation = "different1" }, "password_confirmation"},
		{"no name", func(in *RegisterInput) { in.FirstName, in.LastName = " ", "" }, "first_name"},
		{"unknown status", func(in *RegisterInput) { in.Status = "SUSPENDED" }, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _, _ := newRegistrationFixture()
			in := validRegisterInput()
			tt.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			require.Error(t, err)
			require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			require.Equal(t, tt.field, apperr.FieldOf(err))
			require.Empty(t, users.users, "no rows on validation failure")
		})
	}
}

func TestRegisterStatusNormalized(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture()
	in := validRegisterInput()
	in.Status = "active"

	rec, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, entity.StatusActive, rec.Profile.Status)
}

func TestRegisterSuffixesTakenSlug(t *testing.T) {
	svc, _, profiles, _ := newRegistrationFixture()
	profiles.taken["cto"] = true
	profiles.taken["cto-1"] = true

	rec, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	require.Equal(t, "cto-2", rec.Profile.Slug, "smallest free suffix wins")
}

func TestRegisterEmptyTitleGetsPlaceholderSlug(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture()
	in := validRegisterInput()
	in.Title = "  !!!  "

	rec, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "untitled", rec.Profile.Slug)
}

func TestRegisterRetriesOnSlugRace(t *testing.T) {
	svc, _, profiles, tx := newRegistrationFixture()
	// The oracle says cto is free, but a concurrent signup wins the insert;
	// the unique index rejects ours once.
	profiles.createErr["cto"] = slugConflict()

	rec, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	require.Equal(t, "cto-1", rec.Profile.Slug)
	require.Equal(t, 2, tx.calls, "first transaction rolled back, second committed")
}

func TestRegisterGivesUpAfterBoundedRetries(t *testing.T) {
	svc, users, profiles, tx := newRegistrationFixture()
	profiles.failAll = slugConflict()

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.Error(t, err)
	require.Equal(t, slugRetries+1, tx.calls, "one initial attempt plus bounded retries")
	require.Empty(t, users.users, "every failed replay must roll back its account row")
}

func TestRegisterOtherConstraintNotRetried(t *testing.T) {
	svc, users, profiles, tx := newRegistrationFixture()
	profiles.failAll = &pgconn.PgError{Code: "23505", ConstraintName: "profiles_user_id_key"}

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.Error(t, err)
	require.Equal(t, 1, tx.calls, "only the slug constraint triggers a replay")
	require.Empty(t, users.users)
}

func TestRegisterRollsBackAccountOnProfileFailure(t *testing.T) {
	svc, users, profiles, tx := newRegistrationFixture()
	profiles.failAll = errors.New("profile insert failed")

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.Error(t, err)
	require.Equal(t, 1, tx.calls, "a non-constraint failure is not replayed")
	require.Empty(t, users.users, "the account row must not survive the rolled-back transaction")
	require.Empty(t, profiles.byUser)
}
