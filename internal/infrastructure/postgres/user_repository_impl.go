package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/domain/query"
	"github.com/chapternet/directory-api/internal/domain/repository"
	"github.com/chapternet/directory-api/pkg/apperr"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, first_name, last_name, role, chapter_id, is_verified, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := db(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, role, chapter_id, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.FirstName, u.LastName, string(u.Role), nullStr(u.ChapterID), u.IsVerified)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if IsUniqueViolation(err, "users_email_key") {
			return apperr.ConflictField("email", "email is already registered")
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, col, val string) (*entity.User, error) {
	u := &entity.User{}
	var role string
	var chapterID *string

	row := db(ctx, r.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+col+` = $1`, val)
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&role, &chapterID, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	u.Role = entity.Role(role)
	u.ChapterID = deref(chapterID)
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := db(ctx, r.pool).Exec(ctx, `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, role = $4, chapter_id = $5, updated_at = $6
		WHERE id = $7
	`, u.Email, u.FirstName, u.LastName, string(u.Role), nullStr(u.ChapterID), u.UpdatedAt, u.ID)
	if err != nil {
		if IsUniqueViolation(err, "users_email_key") {
			return apperr.ConflictField("email", "email is already registered")
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := db(ctx, r.pool).Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, hash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id string) error {
	res, err := db(ctx, r.pool).Exec(ctx,
		`UPDATE users SET is_verified = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *UserRepository) IsVerified(ctx context.Context, id string) (bool, error) {
	var verified bool
	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT is_verified FROM users WHERE id = $1`, id).Scan(&verified)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, errNotFound
	}
	return verified, err
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := db(ctx, r.pool).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

// memberSelect joins the account with its profile and optional chapter.
// Profiles are one-to-one by unique index, so each user yields exactly one
// row; DISTINCT keeps the dedup-by-identity contract explicit regardless.
const memberSelect = `
	SELECT DISTINCT
		u.id, u.email, u.first_name, u.last_name, u.role, u.chapter_id, u.is_verified, u.created_at, u.updated_at,
		p.id, p.title, p.company_name, p.bio, p.industry, p.location,
		p.skills, p.certifications, p.faqs,
		p.experience, p.status, p.is_public, p.image_url,
		p.website, p.linkedin, p.twitter, p.contact, p.whatsapp,
		p.slug, p.created_at, p.updated_at,
		c.id, c.name, c.slug
	FROM users u
	JOIN profiles p ON p.user_id = u.id
	LEFT JOIN chapters c ON c.id = u.chapter_id`

func (r *UserRepository) SearchMembers(ctx context.Context, pred query.Predicate, limit, offset int) ([]repository.MemberRecord, error) {
	return r.selectMembers(ctx, pred, "u.created_at DESC, u.id", limit, offset)
}

func (r *UserRepository) CountMembers(ctx context.Context, pred query.Predicate) (int64, error) {
	return r.countMembers(ctx, pred)
}

func (r *UserRepository) ListAccounts(ctx context.Context, pred query.Predicate, limit, offset int) ([]repository.MemberRecord, error) {
	return r.selectMembers(ctx, pred, "u.created_at DESC, u.id", limit, offset)
}

func (r *UserRepository) CountAccounts(ctx context.Context, pred query.Predicate) (int64, error) {
	return r.countMembers(ctx, pred)
}

func (r *UserRepository) ListByChapter(ctx context.Context, chapterID string) ([]repository.MemberRecord, error) {
	pred := query.Predicate{SQL: "u.chapter_id = $1", Args: []any{chapterID}}
	return r.selectMembers(ctx, pred, "u.created_at DESC, u.id", 0, 0)
}

func (r *UserRepository) selectMembers(ctx context.Context, pred query.Predicate, orderBy string, limit, offset int) ([]repository.MemberRecord, error) {
	sql := memberSelect + " WHERE " + pred.SQL + " ORDER BY " + orderBy
	args := append([]any{}, pred.Args...)
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := db(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.MemberRecord, 0)
	for rows.Next() {
		rec, err := scanMemberRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *UserRepository) countMembers(ctx context.Context, pred query.Predicate) (int64, error) {
	sql := `
		SELECT COUNT(DISTINCT u.id)
		FROM users u
		JOIN profiles p ON p.user_id = u.id
		LEFT JOIN chapters c ON c.id = u.chapter_id
		WHERE ` + pred.SQL
	var n int64
	err := db(ctx, r.pool).QueryRow(ctx, sql, pred.Args...).Scan(&n)
	return n, err
}

func scanMemberRow(rows pgx.Rows) (repository.MemberRecord, error) {
	var rec repository.MemberRecord
	var role, status string
	var chapterID *string
	var skills, certs, faqs []byte
	var cID, cName, cSlug *string

	err := rows.Scan(
		&rec.User.ID, &rec.User.Email, &rec.User.FirstName, &rec.User.LastName,
		&role, &chapterID, &rec.User.IsVerified, &rec.User.CreatedAt, &rec.User.UpdatedAt,
		&rec.Profile.ID, &rec.Profile.Title, &rec.Profile.CompanyName, &rec.Profile.Bio,
		&rec.Profile.Industry, &rec.Profile.Location,
		&skills, &certs, &faqs,
		&rec.Profile.Experience, &status, &rec.Profile.IsPublic, &rec.Profile.ImageURL,
		&rec.Profile.Website, &rec.Profile.LinkedIn, &rec.Profile.Twitter,
		&rec.Profile.Contact, &rec.Profile.WhatsApp,
		&rec.Profile.Slug, &rec.Profile.CreatedAt, &rec.Profile.UpdatedAt,
		&cID, &cName, &cSlug,
	)
	if err != nil {
		return rec, err
	}

	rec.User.Role = entity.Role(role)
	rec.User.ChapterID = deref(chapterID)
	rec.Profile.UserID = rec.User.ID
	rec.Profile.Status = entity.ProfileStatus(status)
	rec.Profile.Skills = fromJSON[[]string](skills)
	rec.Profile.Certifications = fromJSON[[]string](certs)
	rec.Profile.FAQs = fromJSON[[]entity.FAQ](faqs)
	if cID != nil {
		rec.Chapter = &entity.Chapter{ID: *cID, Name: deref(cName), Slug: deref(cSlug)}
	}
	return rec, nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ repository.UserRepository = (*UserRepository)(nil)
