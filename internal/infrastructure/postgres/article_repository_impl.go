package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/domain/query"
	"github.com/chapternet/directory-api/internal/domain/repository"
)

type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

const articleColumns = `a.id, a.title, a.slug, a.content_body, a.video_url, a.tags,
	a.category, a.views, a.read_time, a.author_id, a.chapter_id, a.created_at`

func (r *ArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	row := db(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO articles (title, slug, content_body, video_url, tags, category, read_time, author_id, chapter_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, views, created_at
	`, a.Title, a.Slug, a.ContentBody, a.VideoURL, toJSON(a.Tags), a.Category,
		a.ReadTime, nullStr(a.AuthorID), nullStr(a.ChapterID))
	return row.Scan(&a.ID, &a.Views, &a.CreatedAt)
}

func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return r.getBy(ctx, "a.id", id)
}

func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	return r.getBy(ctx, "a.slug", slug)
}

func (r *ArticleRepository) getBy(ctx context.Context, col, val string) (*entity.Article, error) {
	row := db(ctx, r.pool).QueryRow(ctx,
		`SELECT `+articleColumns+` FROM articles a WHERE `+col+` = $1`, val)
	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *ArticleRepository) Update(ctx context.Context, a *entity.Article) error {
	res, err := db(ctx, r.pool).Exec(ctx, `
		UPDATE articles
		SET title = $1, content_body = $2, video_url = $3, tags = $4, category = $5,
			read_time = $6, chapter_id = $7
		WHERE id = $8
	`, a.Title, a.ContentBody, a.VideoURL, toJSON(a.Tags), a.Category,
		a.ReadTime, nullStr(a.ChapterID), a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := db(ctx, r.pool).Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *ArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (r *ArticleRepository) List(ctx context.Context, pred query.Predicate, orderBy string, limit, offset int) ([]entity.Article, error) {
	args := append([]any{}, pred.Args...)
	sql := `SELECT ` + articleColumns + ` FROM articles a WHERE ` + pred.SQL +
		` ORDER BY ` + orderBy
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}
	return r.selectArticles(ctx, sql, args...)
}

func (r *ArticleRepository) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	var n int64
	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM articles a WHERE `+pred.SQL, pred.Args...).Scan(&n)
	return n, err
}

func (r *ArticleRepository) ListByChapter(ctx context.Context, chapterID string) ([]entity.Article, error) {
	return r.selectArticles(ctx,
		`SELECT `+articleColumns+` FROM articles a WHERE a.chapter_id = $1 ORDER BY a.created_at DESC`,
		chapterID)
}

func (r *ArticleRepository) ListRelated(ctx context.Context, category, excludeID string, limit int) ([]entity.Article, error) {
	return r.selectArticles(ctx,
		`SELECT `+articleColumns+` FROM articles a
		 WHERE a.category = $1 AND a.id <> $2
		 ORDER BY a.created_at DESC
		 LIMIT $3`,
		category, excludeID, limit)
}

func (r *ArticleRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := db(ctx, r.pool).Exec(ctx,
		`UPDATE articles SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *ArticleRepository) selectArticles(ctx context.Context, sql string, args ...any) ([]entity.Article, error) {
	rows, err := db(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanArticle(row pgx.Row) (*entity.Article, error) {
	a := &entity.Article{}
	var tags []byte
	var authorID, chapterID *string
	if err := row.Scan(&a.ID, &a.Title, &a.Slug, &a.ContentBody, &a.VideoURL,
		&tags, &a.Category, &a.Views, &a.ReadTime, &authorID, &chapterID,
		&a.CreatedAt); err != nil {
		return nil, err
	}
	a.Tags = fromJSON[[]string](tags)
	a.AuthorID = deref(authorID)
	a.ChapterID = deref(chapterID)
	return a, nil
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)
