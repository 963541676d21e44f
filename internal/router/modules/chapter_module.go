package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chapternet/directory-api/internal/container"
	"github.com/chapternet/directory-api/internal/domain/entity"
	handlers "github.com/chapternet/directory-api/internal/interface/http"
	"github.com/chapternet/directory-api/internal/interface/middleware"
	"github.com/chapternet/directory-api/pkg/helpers"
)

// ChapterModule: public chapter listing, admin creation, and the
// editor/admin chapter dashboard.
type ChapterModule struct {
	Handler *handlers.ChapterHandler
	JWT     *helpers.JWTManager
}

func NewChapterModule(h *handlers.ChapterHandler, jwt *helpers.JWTManager) *ChapterModule {
	return &ChapterModule{Handler: h, JWT: jwt}
}

func (m *ChapterModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/chapters", rl, m.Handler.List)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))

	editor := auth.Group("/")
	editor.Use(middleware.RequireRole(entity.RoleEditor, entity.RoleAdmin))
	{
		editor.GET("/chapters/:id/dashboard", m.Handler.Dashboard)
	}

	admin := auth.Group("/")
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		admin.POST("/chapters", m.Handler.Create)
	}
}
