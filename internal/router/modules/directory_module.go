package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chapternet/directory-api/internal/container"
	handlers "github.com/chapternet/directory-api/internal/interface/http"
	"github.com/chapternet/directory-api/internal/interface/middleware"
)

// DirectoryModule exposes the public member directory: faceted search plus
// per-member detail pages. No auth required; only public profiles surface.
type DirectoryModule struct {
	Handler *handlers.DirectoryHandler
}

func NewDirectoryModule(h *handlers.DirectoryHandler) *DirectoryModule {
	return &DirectoryModule{Handler: h}
}

func (m *DirectoryModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/directory", rl, m.Handler.Search)
	rg.GET("/directory/:slug", rl, m.Handler.GetBySlug)
}
