package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/chapternet/directory-api/internal/application"
	"github.com/chapternet/directory-api/internal/domain/query"
	repo "github.com/chapternet/directory-api/internal/domain/repository"
)

// stubUserRepo captures what the handler-composed search asks the store for.
// Only the search methods are real; anything else panics on purpose.
type stubUserRepo struct {
	repo.UserRepository
	gotPred   query.Predicate
	gotLimit  int
	gotOffset int
}

func (s *stubUserRepo) SearchMembers(_ context.Context, pred query.Predicate, limit, offset int) ([]repo.MemberRecord, error) {
	s.gotPred, s.gotLimit, s.gotOffset = pred, limit, offset
	return nil, nil
}

func (s *stubUserRepo) CountMembers(_ context.Context, pred query.Predicate) (int64, error) {
	return 0, nil
}

func directorySearch(t *testing.T, rawQuery string) (*stubUserRepo, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &stubUserRepo{}
	h := NewDirectoryHandler(application.NewDirectoryService(store, nil, nil))

	r := gin.New()
	r.GET("/api/directory", h.Search)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/directory?"+rawQuery, nil)
	r.ServeHTTP(w, req)
	return store, w
}

func TestDirectorySearchParsesFacets(t *testing.T) {
	store, w := directorySearch(t, "search=golang&industry=Tech&location=ch-1&experience=Senior&verified_only=true&page=2&page_size=5")

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.HasPrefix(store.gotPred.SQL, "p.is_public = TRUE"),
		"visibility gate must come first")
	require.Contains(t, store.gotPred.SQL, "u.chapter_id =")
	require.Contains(t, store.gotPred.SQL, "u.is_verified = TRUE")
	require.Contains(t, store.gotPred.Args, "%golang%")
	require.Contains(t, store.gotPred.Args, "ch-1")
	require.Equal(t, 5, store.gotLimit)
	require.Equal(t, 5, store.gotOffset, "page 2 of size 5 starts at offset 5")
}

func TestDirectorySearchSentinelMeansNoFilter(t *testing.T) {
	store, w := directorySearch(t, "experience=All+Levels")

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "p.is_public = TRUE", store.gotPred.SQL,
		"the sentinel contributes no condition")
	require.Empty(t, store.gotPred.Args)
}

func TestDirectorySearchPageBounds(t *testing.T) {
	store, w := directorySearch(t, "page=-3&page_size=0")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, query.DefaultPageSize, store.gotLimit)
	require.Equal(t, 0, store.gotOffset)

	store, w = directorySearch(t, "page_size=5000")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, query.MaxPageSize, store.gotLimit)
}
