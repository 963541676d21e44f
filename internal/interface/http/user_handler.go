package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chapternet/directory-api/internal/application"
	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/interface/middleware"
	"github.com/chapternet/directory-api/pkg/response"
	"github.com/chapternet/directory-api/pkg/validation"
)

// maxAvatarBytes caps avatar uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Me GET /api/me (auth required)
func (h *UserHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	rec, err := h.Svc.Me(c.Request.Context(), uid)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, accountDTO(rec), "profile", nil)
	c.JSON(resp.Status, resp)
}

type updateProfileRequest struct {
	Title          *string      `json:"title"`
	CompanyName    *string      `json:"company_name"`
	Bio            *string      `json:"bio"`
	Industry       *string      `json:"industry"`
	Location       *string      `json:"location"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
	FAQs           []faqRequest `json:"faqs"`
	Experience     *string      `json:"experience"`
	Status         *string      `json:"status"`
	IsPublic       *bool        `json:"is_public"`
	Website        *string      `json:"website"`
	LinkedIn       *string      `json:"linkedin"`
	Twitter        *string      `json:"twitter"`
	Contact        *string      `json:"contact"`
	WhatsApp       *string      `json:"whatsapp"`
}

// UpdateProfile PUT /api/me/profile (auth required). Partial update: absent
// fields keep their value. The slug is not accepted here at all.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	var faqs []entity.FAQ
	if req.FAQs != nil {
		faqs = make([]entity.FAQ, 0, len(req.FAQs))
		for _, f := range req.FAQs {
			faqs = append(faqs, entity.FAQ{Question: f.Question, Answer: f.Answer})
		}
	}

	p, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Title:          req.Title,
		CompanyName:    req.CompanyName,
		Bio:            req.Bio,
		Industry:       req.Industry,
		Location:       req.Location,
		Skills:         req.Skills,
		Certifications: req.Certifications,
		FAQs:           faqs,
		Experience:     req.Experience,
		Status:         req.Status,
		IsPublic:       req.IsPublic,
		Website:        req.Website,
		LinkedIn:       req.LinkedIn,
		Twitter:        req.Twitter,
		Contact:        req.Contact,
		WhatsApp:       req.WhatsApp,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, profileDTO(p), "profile updated", nil)
	c.JSON(resp.Status, resp)
}

// UploadAvatar POST /api/me/avatar (auth required, multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	fh, err := c.FormFile("avatar")
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "avatar file is required", nil)
		c.JSON(resp.Status, resp)
		return
	}
	if fh.Size > maxAvatarBytes {
		resp := response.Error[any](c, http.StatusBadRequest, "avatar too large", nil)
		c.JSON(resp.Status, resp)
		return
	}
	f, err := fh.Open()
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "unreadable upload", nil)
		c.JSON(resp.Status, resp)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"image_url": url}, "avatar uploaded", nil)
	c.JSON(resp.Status, resp)
}

// --- admin ---

// ListAccounts GET /api/admin/users (admin only)
func (h *UserHandler) ListAccounts(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))

	res, err := h.Svc.ListAccounts(c.Request.Context(), application.ListAccountsInput{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, memberListDTO(res.Items, false), "accounts", memberPageMeta(res))
	c.JSON(resp.Status, resp)
}

type adminUpdateRequest struct {
	Role      *string `json:"role"`
	ChapterID *string `json:"chapter_id"`
	Verified  *bool   `json:"verified"`
}

// AdminUpdate PUT /api/admin/users/:id (admin only)
func (h *UserHandler) AdminUpdate(c *gin.Context) {
	var req adminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	u, err := h.Svc.AdminUpdateUser(c.Request.Context(), c.Param("id"), application.AdminUpdateInput{
		Role:      req.Role,
		ChapterID: req.ChapterID,
		Verified:  req.Verified,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"role":        u.Role,
		"chapter_id":  u.ChapterID,
		"is_verified": u.IsVerified,
	}, "account updated", nil)
	c.JSON(resp.Status, resp)
}

// AdminDelete DELETE /api/admin/users/:id (admin only)
func (h *UserHandler) AdminDelete(c *gin.Context) {
	if err := h.Svc.AdminDeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "account deleted", nil)
	c.JSON(resp.Status, resp)
}

// QuickSearch GET /api/members/search?q= (auth required)
func (h *UserHandler) QuickSearch(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	docs, err := h.Svc.QuickSearch(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, docs, "results", nil)
	c.JSON(resp.Status, resp)
}
