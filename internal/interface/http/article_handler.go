package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chapternet/directory-api/internal/application"
	"github.com/chapternet/directory-api/internal/interface/middleware"
	"github.com/chapternet/directory-api/pkg/response"
	"github.com/chapternet/directory-api/pkg/validation"
)

type ArticleHandler struct {
	Svc *application.ArticleService
}

func NewArticleHandler(svc *application.ArticleService) *ArticleHandler {
	return &ArticleHandler{Svc: svc}
}

// List GET /api/articles
// Query: search, category, sort (latest|popular|read-time), page, page_size.
func (h *ArticleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))

	res, err := h.Svc.List(c.Request.Context(), application.ArticleListInput{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, articleListDTO(res.Items), "articles",
		pageMeta(res.Total, res.Page, res.PageSize, res.TotalPages))
	c.JSON(resp.Status, resp)
}

// Get GET /api/articles/:slug
func (h *ArticleHandler) Get(c *gin.Context) {
	detail, err := h.Svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	out := articleDTO(&detail.Article)
	out["related"] = articleListDTO(detail.Related)
	resp := response.Success(c, http.StatusOK, out, "article", nil)
	c.JSON(resp.Status, resp)
}

type articleRequest struct {
	Title       string   `json:"title" binding:"required"`
	ContentBody string   `json:"content_body" binding:"required"`
	VideoURL    string   `json:"video_url"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	ChapterID   string   `json:"chapter_id"`
}

func (r *articleRequest) input() application.ArticleInput {
	return application.ArticleInput{
		Title:       r.Title,
		ContentBody: r.ContentBody,
		VideoURL:    r.VideoURL,
		Tags:        r.Tags,
		Category:    r.Category,
		ChapterID:   r.ChapterID,
	}
}

// Create POST /api/articles (editor/admin)
func (h *ArticleHandler) Create(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), req.input())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, articleDTO(a), "article created", nil)
	c.JSON(resp.Status, resp)
}

// Update PUT /api/articles/:id (editor/admin)
func (h *ArticleHandler) Update(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, articleDTO(a), "article updated", nil)
	c.JSON(resp.Status, resp)
}

// Delete DELETE /api/articles/:id (editor/admin)
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "article deleted", nil)
	c.JSON(resp.Status, resp)
}
