package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chapternet/directory-api/internal/application"
	"github.com/chapternet/directory-api/internal/interface/middleware"
	"github.com/chapternet/directory-api/pkg/response"
	"github.com/chapternet/directory-api/pkg/validation"
)

type EventHandler struct {
	Svc *application.EventService
}

func NewEventHandler(svc *application.EventService) *EventHandler {
	return &EventHandler{Svc: svc}
}

// List GET /api/events (optionally ?chapter_id=)
func (h *EventHandler) List(c *gin.Context) {
	var (
		events any
		err    error
	)
	if chapterID := c.Query("chapter_id"); chapterID != "" {
		items, lErr := h.Svc.ListByChapter(c.Request.Context(), chapterID)
		events, err = eventListDTO(items), lErr
	} else {
		items, lErr := h.Svc.List(c.Request.Context())
		events, err = eventListDTO(items), lErr
	}
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, events, "events", nil)
	c.JSON(resp.Status, resp)
}

// Get GET /api/events/:slug
func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.Svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, eventDTO(e), "event", nil)
	c.JSON(resp.Status, resp)
}

type eventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Location    string    `json:"location"`
	ChapterID   string    `json:"chapter_id"`
}

func (r *eventRequest) input() application.EventInput {
	return application.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Location:    r.Location,
		ChapterID:   r.ChapterID,
	}
}

// Create POST /api/events (editor/admin)
func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	e, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), req.input())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, eventDTO(e), "event created", nil)
	c.JSON(resp.Status, resp)
}

// Update PUT /api/events/:id (editor/admin)
func (h *EventHandler) Update(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	e, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, eventDTO(e), "event updated", nil)
	c.JSON(resp.Status, resp)
}

// Delete DELETE /api/events/:id (editor/admin)
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "event deleted", nil)
	c.JSON(resp.Status, resp)
}
