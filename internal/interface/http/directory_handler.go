package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chapternet/directory-api/internal/application"
	"github.com/chapternet/directory-api/pkg/response"
)

type DirectoryHandler struct {
	Svc *application.DirectoryService
}

func NewDirectoryHandler(svc *application.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{Svc: svc}
}

// Search GET /api/directory
// Query: search, industry, location (chapter id), experience, verified_only,
// page, page_size. Empty and sentinel values mean "no filter".
func (h *DirectoryHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	verifiedOnly, _ := strconv.ParseBool(c.DefaultQuery("verified_only", "false"))

	res, err := h.Svc.SearchMembers(c.Request.Context(), application.MemberSearchInput{
		Search:       c.Query("search"),
		Industry:     c.Query("industry"),
		Location:     c.Query("location"),
		Experience:   c.Query("experience"),
		VerifiedOnly: verifiedOnly,
		Page:         page,
		PageSize:     size,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}

	resp := response.Success(c, http.StatusOK, memberListDTO(res.Items, true), "members", memberPageMeta(res))
	c.JSON(resp.Status, resp)
}

// GetBySlug GET /api/directory/:slug
func (h *DirectoryHandler) GetBySlug(c *gin.Context) {
	rec, err := h.Svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, memberDTO(rec), "member", nil)
	c.JSON(resp.Status, resp)
}
