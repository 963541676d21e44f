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

// ArticleModule: public reads, editor/admin writes.
type ArticleModule struct {
	Handler *handlers.ArticleHandler
	JWT     *helpers.JWTManager
}

func NewArticleModule(h *handlers.ArticleHandler, jwt *helpers.JWTManager) *ArticleModule {
	return &ArticleModule{Handler: h, JWT: jwt}
}

func (m *ArticleModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/articles", rl, m.Handler.List)
	rg.GET("/articles/:slug", rl, m.Handler.Get)

	editor := rg.Group("/")
	editor.Use(middleware.Auth(container.GetRedis(), m.JWT))
	editor.Use(middleware.RequireRole(entity.RoleEditor, entity.RoleAdmin))
	{
		editor.POST("/articles", m.Handler.Create)
		editor.PUT("/articles/:id", m.Handler.Update)
		editor.DELETE("/articles/:id", m.Handler.Delete)
	}
}
