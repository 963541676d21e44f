package application

import (
	"context"
	"strings"

	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/domain/query"
	repo "github.com/chapternet/directory-api/internal/domain/repository"
	"github.com/chapternet/directory-api/internal/domain/slug"
	"github.com/chapternet/directory-api/pkg/apperr"
)

// wordsPerMinute drives the derived read-time estimate.
const wordsPerMinute = 200

const relatedLimit = 5

// ArticleService serves the public article listing and the editor CRUD.
// Article slugs live in their own namespace, checked against the articles
// table only.
type ArticleService struct {
	Articles repo.ArticleRepository
}

func NewArticleService(articles repo.ArticleRepository) *ArticleService {
	return &ArticleService{Articles: articles}
}

// ArticleListInput carries raw listing parameters from the transport layer.
type ArticleListInput struct {
	Search   string
	Category string
	Sort     string
	Page     int
	PageSize int
}

// ArticlePage is one page of articles with pagination metadata.
type ArticlePage struct {
	Items      []entity.Article
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// List composes the facet predicate and sort order, then fetches one page.
func (s *ArticleService) List(ctx context.Context, in ArticleListInput) (*ArticlePage, error) {
	pred := query.ComposeArticles(query.NewArticleFacets(in.Search, in.Category))
	sort := query.ParseSort(in.Sort)
	page := query.NewPage(in.Page, in.PageSize)

	total, err := s.Articles.Count(ctx, pred)
	if err != nil {
		return nil, err
	}
	items, err := s.Articles.List(ctx, pred, sort.ArticleOrder(), page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return &ArticlePage{
		Items:      items,
		Total:      total,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: totalPages(total, page.Size),
	}, nil
}

// ArticleDetail is an article plus its same-category neighbours.
type ArticleDetail struct {
	Article entity.Article
	Related []entity.Article
}

// GetBySlug resolves an article, bumps its view counter and attaches up to
// five related articles from the same category. The counter bump is
// best-effort; a failed bump never hides the article.
func (s *ArticleService) GetBySlug(ctx context.Context, slugVal string) (*ArticleDetail, error) {
	a, err := s.Articles.GetBySlug(ctx, slugVal)
	if err != nil {
		return nil, err
	}
	_ = s.Articles.IncrementViews(ctx, a.ID)
	a.Views++

	related, err := s.Articles.ListRelated(ctx, a.Category, a.ID, relatedLimit)
	if err != nil {
		return nil, err
	}
	return &ArticleDetail{Article: *a, Related: related}, nil
}

// ArticleInput carries the editor-facing create/update payload.
type ArticleInput struct {
	Title       string
	ContentBody string
	VideoURL    string
	Tags        []string
	Category    string
	ChapterID   string
}

func (in *ArticleInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validation("title", "is required")
	}
	if strings.TrimSpace(in.ContentBody) == "" {
		return apperr.Validation("content_body", "is required")
	}
	return nil
}

// Create allocates a slug from the title and derives the read time from the
// body length.
func (s *ArticleService) Create(ctx context.Context, authorID string, in ArticleInput) (*entity.Article, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	allocated, err := slug.Allocate(ctx, in.Title, s.Articles.SlugExists)
	if err != nil {
		return nil, err
	}
	a := &entity.Article{
		Title:       strings.TrimSpace(in.Title),
		Slug:        allocated,
		ContentBody: in.ContentBody,
		VideoURL:    in.VideoURL,
		Tags:        in.Tags,
		Category:    in.Category,
		ReadTime:    readTime(in.ContentBody),
		AuthorID:    authorID,
		ChapterID:   in.ChapterID,
	}
	if err := s.Articles.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update rewrites the mutable fields. The slug keeps its original value even
// when the title changes; published URLs stay stable.
func (s *ArticleService) Update(ctx context.Context, id string, in ArticleInput) (*entity.Article, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	a, err := s.Articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Title = strings.TrimSpace(in.Title)
	a.ContentBody = in.ContentBody
	a.VideoURL = in.VideoURL
	a.Tags = in.Tags
	a.Category = in.Category
	a.ReadTime = readTime(in.ContentBody)
	a.ChapterID = in.ChapterID
	if err := s.Articles.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ArticleService) Delete(ctx context.Context, id string) error {
	return s.Articles.Delete(ctx, id)
}

// readTime estimates reading minutes from word count, minimum one minute.
func readTime(body string) int {
	words := len(strings.Fields(body))
	minutes := words / wordsPerMinute
	if words%wordsPerMinute != 0 {
		minutes++
	}
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
