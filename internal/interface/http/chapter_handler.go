package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chapternet/directory-api/internal/application"
	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/interface/middleware"
	"github.com/chapternet/directory-api/pkg/response"
	"github.com/chapternet/directory-api/pkg/validation"
)

type ChapterHandler struct {
	Svc *application.ChapterService
}

func NewChapterHandler(svc *application.ChapterService) *ChapterHandler {
	return &ChapterHandler{Svc: svc}
}

// List GET /api/chapters
func (h *ChapterHandler) List(c *gin.Context) {
	chapters, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	out := make([]gin.H, 0, len(chapters))
	for i := range chapters {
		out = append(out, chapterDTO(&chapters[i]))
	}
	resp := response.Success(c, http.StatusOK, out, "chapters", nil)
	c.JSON(resp.Status, resp)
}

// Create POST /api/chapters (admin only)
func (h *ChapterHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	ch, err := h.Svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, chapterDTO(ch), "chapter created", nil)
	c.JSON(resp.Status, resp)
}

// Dashboard GET /api/chapters/:id/dashboard (editor/admin)
func (h *ChapterHandler) Dashboard(c *gin.Context) {
	role, _ := entity.ParseRole(c.GetString(middleware.CtxUserRole))
	d, err := h.Svc.Dashboard(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID), role)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{
		"chapter":  chapterDTO(&d.Chapter),
		"members":  memberListDTO(d.Members, false),
		"articles": articleListDTO(d.Articles),
		"events":   eventListDTO(d.Events),
	}, "dashboard", nil)
	c.JSON(resp.Status, resp)
}
