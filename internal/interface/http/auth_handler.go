package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chapternet/directory-api/internal/application"
	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/internal/interface/middleware"
	"github.com/chapternet/directory-api/pkg/helpers"
	"github.com/chapternet/directory-api/pkg/response"
	"github.com/chapternet/directory-api/pkg/validation"
)

type AuthHandler struct {
	Reg     *application.RegistrationService
	Auth    *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(reg *application.RegistrationService, auth *application.AuthService,
	logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Reg: reg, Auth: auth, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type registerRequest struct {
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,pwd"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	ChapterID            string `json:"chapter_id"`

	Title          string       `json:"title"`
	CompanyName    string       `json:"company_name"`
	Bio            string       `json:"bio"`
	Industry       string       `json:"industry"`
	Location       string       `json:"location"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
	FAQs           []faqRequest `json:"faqs"`
	Experience     string       `json:"experience"`
	Status         string       `json:"status"`
	IsPublic       *bool        `json:"is_public"`
	Website        string       `json:"website"`
	LinkedIn       string       `json:"linkedin"`
	Twitter        string       `json:"twitter"`
	Contact        string       `json:"contact"`
	WhatsApp       string       `json:"whatsapp"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	faqs := make([]entity.FAQ, 0, len(req.FAQs))
	for _, f := range req.FAQs {
		faqs = append(faqs, entity.FAQ{Question: f.Question, Answer: f.Answer})
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	rec, err := h.Reg.Register(c.Request.Context(), application.RegisterInput{
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		ChapterID:            req.ChapterID,
		Title:                req.Title,
		CompanyName:          req.CompanyName,
		Bio:                  req.Bio,
		Industry:             req.Industry,
		Location:             req.Location,
		Skills:               req.Skills,
		Certifications:       req.Certifications,
		FAQs:                 faqs,
		Experience:           req.Experience,
		Status:               req.Status,
		IsPublic:             isPublic,
		Website:              req.Website,
		LinkedIn:             req.LinkedIn,
		Twitter:              req.Twitter,
		Contact:              req.Contact,
		WhatsApp:             req.WhatsApp,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}

	resp := response.Success(c, http.StatusCreated, accountDTO(rec), "registered; check your inbox to verify", nil)
	c.JSON(resp.Status, resp)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	u, pair, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	resp := response.Success(c, http.StatusOK, gin.H{
		"user_id": u.ID,
		"email":   u.Email,
		"name":    u.FullName(),
		"role":    u.Role,
	}, "login successful", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
	c.JSON(resp.Status, resp)
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		resp := response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		c.JSON(resp.Status, resp)
		return
	}
	pair, _, err := h.Auth.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	resp := response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
	c.JSON(resp.Status, resp)
}

// Logout POST /api/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	_ = h.Auth.Logout(c.Request.Context(), uid)
	h.Cookies.Clear(c)
	resp := response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
	c.JSON(resp.Status, resp)
}

// VerifyInit POST /api/auth/verify/init (auth required). Re-sends the
// verification email for an unverified account.
func (h *AuthHandler) VerifyInit(c *gin.Context) {
	if err := h.Auth.RequestVerification(c.Request.Context(), c.GetString(middleware.CtxUserID)); err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "verification email queued", nil)
	c.JSON(resp.Status, resp)
}

// VerifyConfirm POST /api/auth/verify/confirm {token}
func (h *AuthHandler) VerifyConfirm(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	if err := h.Auth.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"verified": true}, "email verified", nil)
	c.JSON(resp.Status, resp)
}

// ResetInit POST /api/auth/reset/init {email}
// Always answers OK so the endpoint can not be used to probe for accounts.
func (h *AuthHandler) ResetInit(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	if err := h.Auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil && h.Logger != nil {
		h.Logger.WithError(err).Warn("reset init failed")
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "if the address exists, a reset email is on its way", nil)
	c.JSON(resp.Status, resp)
}

// ResetConfirm POST /api/auth/reset/confirm {token, password, password_confirmation}
func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var req struct {
		Token                string `json:"token" binding:"required"`
		Password             string `json:"password" binding:"required,pwd"`
		PasswordConfirmation string `json:"password_confirmation" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	if err := h.Auth.ResetPassword(c.Request.Context(), req.Token, req.Password, req.PasswordConfirmation); err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
	c.JSON(resp.Status, resp)
}
