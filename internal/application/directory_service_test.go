package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chapternet/directory-api/internal/domain/entity"
	repo "github.com/chapternet/directory-api/internal/domain/repository"
	"github.com/chapternet/directory-api/pkg/apperr"
)

func seedMembers(users *fakeUserRepo, n int) {
	for i := 0; i < n; i++ {
		users.members = append(users.members, repo.MemberRecord{
			User:    entity.User{ID: "user-" + strings.Repeat("x", i+1)},
			Profile: entity.Profile{IsPublic: true},
		})
	}
	users.total = int64(n)
}

func TestSearchMembersPaging(t *testing.T) {
	users := newFakeUserRepo()
	seedMembers(users, 25)
	svc := NewDirectoryService(users, newFakeProfileRepo(), newFakeChapterRepo())

	page, err := svc.SearchMembers(context.Background(), MemberSearchInput{Page: 2, PageSize: 10})
	require.NoError(t, err)

	require.Equal(t, int64(25), page.Total)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 10, page.PageSize)
	require.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 10)
	require.Equal(t, 10, users.gotLimit)
	require.Equal(t, 10, users.gotOffset)
}

func TestSearchMembersDefaultsAndCaps(t *testing.T) {
	users := newFakeUserRepo()
	seedMembers(users, 3)
	svc := NewDirectoryService(users, newFakeProfileRepo(), newFakeChapterRepo())

	_, err := svc.SearchMembers(context.Background(), MemberSearchInput{Page: -1, PageSize: 0})
	require.NoError(t, err)
	require.Equal(t, 10, users.gotLimit, "default page size")
	require.Equal(t, 0, users.gotOffset, "page floors at 1")

	_, err = svc.SearchMembers(context.Background(), MemberSearchInput{Page: 1, PageSize: 10_000})
	require.NoError(t, err)
	require.Equal(t, 100, users.gotLimit, "page size is capped")
}

func TestSearchMembersAlwaysGatesOnVisibility(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewDirectoryService(users, newFakeProfileRepo(), newFakeChapterRepo())

	_, err := svc.SearchMembers(context.Background(), MemberSearchInput{Search: "ann"})
	require.NoError(t, err)
	require.Contains(t, users.gotPred.SQL, "p.is_public = TRUE")
}

func TestGetBySlugAttachesChapter(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	chapters := newFakeChapterRepo()

	ch := &entity.Chapter{Name: "Jakarta", Slug: "jakarta"}
	require.NoError(t, chapters.Create(context.Background(), ch))

	u := &entity.User{Email: "jane@example.com", ChapterID: ch.ID}
	require.NoError(t, users.Create(context.Background(), u))
	require.NoError(t, profiles.Create(context.Background(), &entity.Profile{
		UserID: u.ID, Slug: "jane-doe", IsPublic: true,
	}))

	svc := NewDirectoryService(users, profiles, chapters)
	rec, err := svc.GetBySlug(context.Background(), "jane-doe")
	require.NoError(t, err)
	require.Equal(t, u.ID, rec.User.ID)
	require.NotNil(t, rec.Chapter)
	require.Equal(t, "Jakarta", rec.Chapter.Name)
}

func TestGetBySlugHidesPrivateProfiles(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()

	u := &entity.User{Email: "jane@example.com"}
	require.NoError(t, users.Create(context.Background(), u))
	require.NoError(t, profiles.Create(context.Background(), &entity.Profile{
		UserID: u.ID, Slug: "jane-doe", IsPublic: false,
	}))

	svc := NewDirectoryService(users, profiles, newFakeChapterRepo())

	_, err := svc.GetBySlug(context.Background(), "jane-doe")
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "private must look exactly like missing")

	_, errMissing := svc.GetBySlug(context.Background(), "no-such-member")
	require.Equal(t, apperr.KindOf(errMissing), apperr.KindOf(err))
}
