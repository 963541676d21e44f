package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chapternet/directory-api/config"
	"github.com/chapternet/directory-api/pkg/helpers"
	"github.com/chapternet/directory-api/pkg/mailer"
	"github.com/chapternet/directory-api/pkg/response"
	"github.com/chapternet/directory-api/pkg/validation"
)

// EmailHandler lets admins enqueue one-off emails, e.g. for support replies.
type EmailHandler struct {
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewEmailHandler(pub *helpers.RabbitPublisher, logger *logrus.Logger, cfg *config.Config) *EmailHandler {
	return &EmailHandler{Pub: pub, Logger: logger, Cfg: cfg}
}

type sendEmailRequest struct {
	To       string         `json:"to" binding:"required,email"`
	Template string         `json:"template"` // optional: verify_email, reset_password, newsletter_welcome
	Data     map[string]any `json:"data"`     // optional template data
	Subject  string         `json:"subject"`  // required if no template
	Text     string         `json:"text"`     // optional if html provided
	HTML     string         `json:"html"`     // optional if text provided
}

// Send POST /api/admin/email/send (admin only). Enqueues an email job.
func (h *EmailHandler) Send(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	if req.Template == "" {
		if req.Subject == "" || (req.Text == "" && req.HTML == "") {
			resp := response.Error[any](c, http.StatusBadRequest, "either template or subject with text/html is required", nil)
			c.JSON(resp.Status, resp)
			return
		}
	}

	if h.Cfg != nil && !h.Cfg.MailSendEnabled {
		resp := response.Success[any](c, http.StatusAccepted, gin.H{"enqueued": false, "disabled": true}, "email sending disabled", nil)
		c.JSON(resp.Status, resp)
		return
	}

	job := mailer.EmailJob{To: req.To}
	if req.Template != "" {
		job.Template = req.Template
		job.Data = req.Data
	} else {
		job.Subject = req.Subject
		job.Text = req.Text
		job.HTML = req.HTML
	}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("failed to publish email job")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "failed to enqueue", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success[any](c, http.StatusAccepted, gin.H{"enqueued": true}, "email enqueued", nil)
	c.JSON(resp.Status, resp)
}
