package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/domain/repository"
)

type ChapterRepository struct {
	pool *pgxpool.Pool
}

func NewChapterRepository(pool *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{pool: pool}
}

func (r *ChapterRepository) Create(ctx context.Context, c *entity.Chapter) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	row := db(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO chapters (id, name, slug)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`, c.ID, c.Name, c.Slug)
	return row.Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *ChapterRepository) GetByID(ctx context.Context, id string) (*entity.Chapter, error) {
	c := &entity.Chapter{}
	row := db(ctx, r.pool).QueryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM chapters WHERE id = $1`, id)
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *ChapterRepository) List(ctx context.Context) ([]entity.Chapter, error) {
	rows, err := db(ctx, r.pool).Query(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM chapters ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Chapter, 0)
	for rows.Next() {
		var c entity.Chapter
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ChapterRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM chapters WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

var _ repository.ChapterRepository = (*ChapterRepository)(nil)
