package router

import "github.com/gin-gonic/gin"

// Module is one feature's routing surface (auth, directory, articles, ...).
// Each implementation attaches its routes, limits and role gates to the
// shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
