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

// ProfileSlugConstraint names the unique index guarding the profile slug
// namespace; the registration orchestrator keys its retry on it.
const ProfileSlugConstraint = "profiles_slug_key"

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `id, user_id, title, company_name, bio, industry, location,
	skills, certifications, faqs, experience, status, is_public, image_url,
	website, linkedin, twitter, contact, whatsapp, slug, created_at, updated_at`

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	row := db(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO profiles (user_id, title, company_name, bio, industry, location,
			skills, certifications, faqs, experience, status, is_public, image_url,
			website, linkedin, twitter, contact, whatsapp, slug)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Title, p.CompanyName, p.Bio, p.Industry, p.Location,
		toJSON(p.Skills), toJSON(p.Certifications), toJSON(p.FAQs),
		p.Experience, string(p.Status), p.IsPublic, p.ImageURL,
		p.Website, p.LinkedIn, p.Twitter, p.Contact, p.WhatsApp, p.Slug)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	return r.getBy(ctx, "user_id", userID)
}

func (r *ProfileRepository) GetBySlug(ctx context.Context, slug string) (*entity.Profile, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *ProfileRepository) getBy(ctx context.Context, col, val string) (*entity.Profile, error) {
	p := &entity.Profile{}
	var status string
	var skills, certs, faqs []byte

	row := db(ctx, r.pool).QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE `+col+` = $1`, val)
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.CompanyName, &p.Bio,
		&p.Industry, &p.Location, &skills, &certs, &faqs,
		&p.Experience, &status, &p.IsPublic, &p.ImageURL,
		&p.Website, &p.LinkedIn, &p.Twitter, &p.Contact, &p.WhatsApp,
		&p.Slug, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	p.Status = entity.ProfileStatus(status)
	p.Skills = fromJSON[[]string](skills)
	p.Certifications = fromJSON[[]string](certs)
	p.FAQs = fromJSON[[]entity.FAQ](faqs)
	return p, nil
}

// Update persists every mutable field. Slug is deliberately not in the SET
// list: it is immutable once assigned.
func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	p.UpdatedAt = time.Now()
	res, err := db(ctx, r.pool).Exec(ctx, `
		UPDATE profiles
		SET title = $1, company_name = $2, bio = $3, industry = $4, location = $5,
			skills = $6, certifications = $7, faqs = $8, experience = $9,
			status = $10, is_public = $11, image_url = $12,
			website = $13, linkedin = $14, twitter = $15, contact = $16, whatsapp = $17,
			updated_at = $18
		WHERE id = $19
	`, p.Title, p.CompanyName, p.Bio, p.Industry, p.Location,
		toJSON(p.Skills), toJSON(p.Certifications), toJSON(p.FAQs), p.Experience,
		string(p.Status), p.IsPublic, p.ImageURL,
		p.Website, p.LinkedIn, p.Twitter, p.Contact, p.WhatsApp,
		p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *ProfileRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
