package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcare/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Overview(c *gin.Context) {
	overview, apiErr := h.adminService.Overview(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *AdminHandler) WeeklyTrends(c *gin.Context) {
	trends, apiErr := h.adminService.WeeklyTrends(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, trends)
}

func (h *AdminHandler) CampusBreakdown(c *gin.Context) {
	breakdown, apiErr := h.adminService.CampusBreakdown(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
