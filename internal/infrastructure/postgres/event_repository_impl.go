package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/domain/repository"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, title, slug, description, category, start_time, end_time,
	location, chapter_id, created_by, updated_at`

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := db(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO events (title, slug, description, category, start_time, end_time, location, chapter_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, updated_at
	`, e.Title, e.Slug, e.Description, e.Category, e.StartTime, e.EndTime,
		e.Location, nullStr(e.ChapterID), nullStr(e.CreatedBy))
	return row.Scan(&e.ID, &e.UpdatedAt)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	return r.getBy(ctx, "id", id)
}

func (r *EventRepository) GetBySlug(ctx context.Context, slug string) (*entity.Event, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *EventRepository) getBy(ctx context.Context, col, val string) (*entity.Event, error) {
	row := db(ctx, r.pool).QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE `+col+` = $1`, val)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EventRepository) List(ctx context.Context) ([]entity.Event, error) {
	return r.selectEvents(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY start_time ASC`)
}

func (r *EventRepository) ListByChapter(ctx context.Context, chapterID string) ([]entity.Event, error) {
	return r.selectEvents(ctx,
		`SELECT `+eventColumns+` FROM events WHERE chapter_id = $1 ORDER BY start_time ASC`,
		chapterID)
}

func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	e.UpdatedAt = time.Now()
	res, err := db(ctx, r.pool).Exec(ctx, `
		UPDATE events
		SET title = $1, description = $2, category = $3, start_time = $4, end_time = $5,
			location = $6, chapter_id = $7, updated_at = $8
		WHERE id = $9
	`, e.Title, e.Description, e.Category, e.StartTime, e.EndTime,
		e.Location, nullStr(e.ChapterID), e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := db(ctx, r.pool).Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *EventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (r *EventRepository) selectEvents(ctx context.Context, sql string, args ...any) ([]entity.Event, error) {
	rows, err := db(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	e := &entity.Event{}
	var chapterID, createdBy *string
	if err := row.Scan(&e.ID, &e.Title, &e.Slug, &e.Description, &e.Category,
		&e.StartTime, &e.EndTime, &e.Location, &chapterID, &createdBy,
		&e.UpdatedAt); err != nil {
		return nil, err
	}
	e.ChapterID = deref(chapterID)
	e.CreatedBy = deref(createdBy)
	return e, nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
