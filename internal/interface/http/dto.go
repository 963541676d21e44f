package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/chapternet/directory-api/internal/application"
	"github.com/chapternet/directory-api/internal/domain/entity"
	repo "github.com/chapternet/directory-api/internal/domain/repository"
)

// Response shaping shared across handlers. Entities never leave the process
// as-is; password hashes and private emails stay out of public payloads.

func chapterDTO(c *entity.Chapter) gin.H {
	if c == nil {
		return nil
	}
	return gin.H{"id": c.ID, "name": c.Name, "slug": c.Slug}
}

func profileDTO(p *entity.Profile) gin.H {
	return gin.H{
		"title":          p.Title,
		"company_name":   p.CompanyName,
		"bio":            p.Bio,
		"industry":       p.Industry,
		"location":       p.Location,
		"skills":         p.Skills,
		"certifications": p.Certifications,
		"faqs":           p.FAQs,
		"experience":     p.Experience,
		"status":         p.Status,
		"is_public":      p.IsPublic,
		"image_url":      p.ImageURL,
		"website":        p.Website,
		"linkedin":       p.LinkedIn,
		"twitter":        p.Twitter,
		"contact":        p.Contact,
		"whatsapp":       p.WhatsApp,
		"slug":           p.Slug,
	}
}

// memberDTO is the public directory card: no email, no verification internals.
func memberDTO(rec *repo.MemberRecord) gin.H {
	out := profileDTO(&rec.Profile)
	out["id"] = rec.User.ID
	out["name"] = rec.User.FullName()
	out["is_verified"] = rec.User.IsVerified
	out["chapter"] = chapterDTO(rec.Chapter)
	return out
}

// accountDTO is the owner/admin view: adds identity fields.
func accountDTO(rec *repo.MemberRecord) gin.H {
	out := memberDTO(rec)
	out["email"] = rec.User.Email
	out["first_name"] = rec.User.FirstName
	out["last_name"] = rec.User.LastName
	out["role"] = rec.User.Role
	out["chapter_id"] = rec.User.ChapterID
	out["created_at"] = rec.User.CreatedAt
	return out
}

func memberListDTO(items []repo.MemberRecord, public bool) []gin.H {
	out := make([]gin.H, 0, len(items))
	for i := range items {
		if public {
			out = append(out, memberDTO(&items[i]))
		} else {
			out = append(out, accountDTO(&items[i]))
		}
	}
	return out
}

func articleDTO(a *entity.Article) gin.H {
	return gin.H{
		"id":           a.ID,
		"title":        a.Title,
		"slug":         a.Slug,
		"content_body": a.ContentBody,
		"video_url":    a.VideoURL,
		"tags":         a.Tags,
		"category":     a.Category,
		"views":        a.Views,
		"read_time":    a.ReadTime,
		"author_id":    a.AuthorID,
		"chapter_id":   a.ChapterID,
		"created_at":   a.CreatedAt,
	}
}

func articleListDTO(items []entity.Article) []gin.H {
	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, articleDTO(&items[i]))
	}
	return out
}

func eventDTO(e *entity.Event) gin.H {
	return gin.H{
		"id":          e.ID,
		"title":       e.Title,
		"slug":        e.Slug,
		"description": e.Description,
		"category":    e.Category,
		"start_time":  e.StartTime,
		"end_time":    e.EndTime,
		"location":    e.Location,
		"chapter_id":  e.ChapterID,
	}
}

func eventListDTO(items []entity.Event) []gin.H {
	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, eventDTO(&items[i]))
	}
	return out
}

func pageMeta(total int64, page, size, totalPages int) gin.H {
	return gin.H{
		"total":       total,
		"page":        page,
		"page_size":   size,
		"total_pages": totalPages,
	}
}

func memberPageMeta(p *application.MemberPage) gin.H {
	return pageMeta(p.Total, p.Page, p.PageSize, p.TotalPages)
}
