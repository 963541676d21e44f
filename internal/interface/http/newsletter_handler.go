package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chapternet/directory-api/internal/application"
	"github.com/chapternet/directory-api/pkg/response"
	"github.com/chapternet/directory-api/pkg/validation"
)

type NewsletterHandler struct {
	Svc *application.NewsletterService
}

func NewNewsletterHandler(svc *application.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{Svc: svc}
}

// Subscribe POST /api/newsletter/subscribe {email}
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	sub, err := h.Svc.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, gin.H{
		"email":         sub.Email,
		"subscribed_at": sub.SubscribedAt,
	}, "subscribed", nil)
	c.JSON(resp.Status, resp)
}
