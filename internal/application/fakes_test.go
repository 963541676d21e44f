package application

import (
	"context"
	"strconv"

	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/domain/query"
	repo "github.com/chapternet/directory-api/internal/domain/repository"
	"github.com/chapternet/directory-api/pkg/apperr"
)

// In-memory fakes for the repository interfaces. Only the behaviour the
// services under test actually exercise is modelled.

var errFakeNotFound = apperr.NotFound("record not found")

var (
	_ repo.TxManager              = (*fakeTx)(nil)
	_ repo.UserRepository         = (*fakeUserRepo)(nil)
	_ repo.ProfileRepository      = (*fakeProfileRepo)(nil)
	_ repo.ChapterRepository      = (*fakeChapterRepo)(nil)
	_ repo.ArticleRepository      = (*fakeArticleRepo)(nil)
	_ repo.EventRepository        = (*fakeEventRepo)(nil)
	_ repo.SubscriptionRepository = (*fakeSubscriptionRepo)(nil)
)

// fakeTx counts transactions and models rollback: the row stores are
// snapshotted when the callback starts and restored when it errors. The
// profile repo's taken oracle is deliberately not restored — it stands in
// for rows committed by concurrent sessions, which a rollback of our own
// transaction would not undo.
type fakeTx struct {
	calls    int
	users    *fakeUserRepo
	profiles *fakeProfileRepo
}

func (t *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	var usersBefore map[string]*entity.User
	var profilesByUser, profilesBySlug map[string]*entity.Profile
	if t.users != nil {
		usersBefore = cloneRefMap(t.users.users)
	}
	if t.profiles != nil {
		profilesByUser = cloneRefMap(t.profiles.byUser)
		profilesBySlug = cloneRefMap(t.profiles.bySlug)
	}

	err := fn(ctx)
	if err != nil {
		if t.users != nil {
			t.users.users = usersBefore
		}
		if t.profiles != nil {
			t.profiles.byUser = profilesByUser
			t.profiles.bySlug = profilesBySlug
		}
	}
	return err
}

func cloneRefMap[V any](m map[string]*V) map[string]*V {
	out := make(map[string]*V, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}

type fakeUserRepo struct {
	users  map[string]*entity.User
	nextID int

	members []repo.MemberRecord
	total   int64

	gotLimit  int
	gotOffset int
	gotPred   query.Predicate
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.nextID++
	u.ID = "user-" + strconv.Itoa(r.nextID)
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errFakeNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	if u, ok := r.users[id]; ok {
		u.Password = hash
	}
	return nil
}

func (r *fakeUserRepo) SetVerified(ctx context.Context, id string) error {
	if u, ok := r.users[id]; ok {
		u.IsVerified = true
	}
	return nil
}

func (r *fakeUserRepo) IsVerified(ctx context.Context, id string) (bool, error) {
	if u, ok := r.users[id]; ok {
		return u.IsVerified, nil
	}
	return false, errFakeNotFound
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) SearchMembers(ctx context.Context, pred query.Predicate, limit, offset int) ([]repo.MemberRecord, error) {
	r.gotPred, r.gotLimit, r.gotOffset = pred, limit, offset
	lo := offset
	if lo > len(r.members) {
		lo = len(r.members)
	}
	hi := lo + limit
	if hi > len(r.members) {
		hi = len(r.members)
	}
	return r.members[lo:hi], nil
}

func (r *fakeUserRepo) CountMembers(ctx context.Context, pred query.Predicate) (int64, error) {
	return r.total, nil
}

func (r *fakeUserRepo) ListAccounts(ctx context.Context, pred query.Predicate, limit, offset int) ([]repo.MemberRecord, error) {
	return r.SearchMembers(ctx, pred, limit, offset)
}

func (r *fakeUserRepo) CountAccounts(ctx context.Context, pred query.Predicate) (int64, error) {
	return r.total, nil
}

func (r *fakeUserRepo) ListByChapter(ctx context.Context, chapterID string) ([]repo.MemberRecord, error) {
	return r.members, nil
}

type fakeProfileRepo struct {
	byUser map[string]*entity.Profile
	bySlug map[string]*entity.Profile
	taken  map[string]bool

	// createErr, when set for a slug, fails the next Create with that error
	// and then clears itself. Simulates losing a unique-index race.
	createErr map[string]error
	// failAll, when set, fails every Create. The slug still gets marked
	// taken, as a real unique index would after the racing insert.
	failAll error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		byUser:    map[string]*entity.Profile{},
		bySlug:    map[string]*entity.Profile{},
		taken:     map[string]bool{},
		createErr: map[string]error{},
	}
}

func (r *fakeProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	if r.failAll != nil {
		r.taken[p.Slug] = true
		return r.failAll
	}
	if err, ok := r.createErr[p.Slug]; ok {
		delete(r.createErr, p.Slug)
		r.taken[p.Slug] = true
		return err
	}
	p.ID = "profile-" + p.UserID
	cp := *p
	r.byUser[p.UserID] = &cp
	r.bySlug[p.Slug] = &cp
	r.taken[p.Slug] = true
	return nil
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, errFakeNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) GetBySlug(ctx context.Context, slug string) (*entity.Profile, error) {
	p, ok := r.bySlug[slug]
	if !ok {
		return nil, errFakeNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, p *entity.Profile) error {
	cp := *p
	r.byUser[p.UserID] = &cp
	r.bySlug[p.Slug] = &cp
	return nil
}

func (r *fakeProfileRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.taken[slug], nil
}

type fakeChapterRepo struct {
	chapters map[string]*entity.Chapter
}

func newFakeChapterRepo() *fakeChapterRepo {
	return &fakeChapterRepo{chapters: map[string]*entity.Chapter{}}
}

func (r *fakeChapterRepo) Create(ctx context.Context, c *entity.Chapter) error {
	if c.ID == "" {
		c.ID = "chapter-" + strconv.Itoa(len(r.chapters)+1)
	}
	cp := *c
	r.chapters[c.ID] = &cp
	return nil
}

func (r *fakeChapterRepo) GetByID(ctx context.Context, id string) (*entity.Chapter, error) {
	c, ok := r.chapters[id]
	if !ok {
		return nil, errFakeNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeChapterRepo) List(ctx context.Context) ([]entity.Chapter, error) {
	out := make([]entity.Chapter, 0, len(r.chapters))
	for _, c := range r.chapters {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeChapterRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, c := range r.chapters {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type fakeArticleRepo struct {
	articles map[string]*entity.Article
	nextID   int

	gotOrderBy string
	viewBumps  []string
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: map[string]*entity.Article{}}
}

func (r *fakeArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	r.nextID++
	a.ID = "article-" + strconv.Itoa(r.nextID)
	cp := *a
	r.articles[a.ID] = &cp
	return nil
}

func (r *fakeArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, errFakeNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeArticleRepo) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	for _, a := range r.articles {
		if a.Slug == slug {
			cp := *a
			return &cp, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	if _, ok := r.articles[a.ID]; !ok {
		return errFakeNotFound
	}
	cp := *a
	r.articles[a.ID] = &cp
	return nil
}

func (r *fakeArticleRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.articles[id]; !ok {
		return errFakeNotFound
	}
	delete(r.articles, id)
	return nil
}

func (r *fakeArticleRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, a := range r.articles {
		if a.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeArticleRepo) List(ctx context.Context, pred query.Predicate, orderBy string, limit, offset int) ([]entity.Article, error) {
	r.gotOrderBy = orderBy
	out := make([]entity.Article, 0, len(r.articles))
	for _, a := range r.articles {
		out = append(out, *a)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeArticleRepo) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	return int64(len(r.articles)), nil
}

func (r *fakeArticleRepo) ListByChapter(ctx context.Context, chapterID string) ([]entity.Article, error) {
	out := make([]entity.Article, 0)
	for _, a := range r.articles {
		if a.ChapterID == chapterID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeArticleRepo) ListRelated(ctx context.Context, category, excludeID string, limit int) ([]entity.Article, error) {
	out := make([]entity.Article, 0)
	for _, a := range r.articles {
		if a.ID == excludeID || a.Category != category {
			continue
		}
		out = append(out, *a)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeArticleRepo) IncrementViews(ctx context.Context, id string) error {
	r.viewBumps = append(r.viewBumps, id)
	if a, ok := r.articles[id]; ok {
		a.Views++
	}
	return nil
}

type fakeEventRepo struct {
	events map[string]*entity.Event
	nextID int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*entity.Event{}}
}

func (r *fakeEventRepo) Create(ctx context.Context, e *entity.Event) error {
	r.nextID++
	e.ID = "event-" + strconv.Itoa(r.nextID)
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, errFakeNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*entity.Event, error) {
	for _, e := range r.events {
		if e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeEventRepo) List(ctx context.Context) ([]entity.Event, error) {
	out := make([]entity.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEventRepo) ListByChapter(ctx context.Context, chapterID string) ([]entity.Event, error) {
	out := make([]entity.Event, 0)
	for _, e := range r.events {
		if e.ChapterID == chapterID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, e *entity.Event) error {
	if _, ok := r.events[e.ID]; !ok {
		return errFakeNotFound
	}
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return errFakeNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, e := range r.events {
		if e.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type fakeSubscriptionRepo struct {
	emails map[string]bool
	err    error
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	if r.err != nil {
		return r.err
	}
	if r.emails == nil {
		r.emails = map[string]bool{}
	}
	r.emails[s.Email] = true
	return nil
}
