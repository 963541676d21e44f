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

// EventModule: public reads, editor/admin writes.
type EventModule struct {
	Handler *handlers.EventHandler
	JWT     *helpers.JWTManager
}

func NewEventModule(h *handlers.EventHandler, jwt *helpers.JWTManager) *EventModule {
	return &EventModule{Handler: h, JWT: jwt}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/events", rl, m.Handler.List)
	rg.GET("/events/:slug", rl, m.Handler.Get)

	editor := rg.Group("/")
	editor.Use(middleware.Auth(container.GetRedis(), m.JWT))
	editor.Use(middleware.RequireRole(entity.RoleEditor, entity.RoleAdmin))
	{
		editor.POST("/events", m.Handler.Create)
		editor.PUT("/events/:id", m.Handler.Update)
		editor.DELETE("/events/:id", m.Handler.Delete)
	}
}
