package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcare/internal/middleware"
	"mindcare/internal/service"
)

type WellnessHandler struct {
	wellnessService *service.WellnessService
}

type moodRequest struct {
	Mood   string `json:"mood"`
	Source string `json:"source"`
}

type redeemRequest struct {
	VoucherID string `json:"voucherId"`
}

func NewWellnessHandler(wellnessService *service.WellnessService) *WellnessHandler {
	return &WellnessHandler{wellnessService: wellnessService}
}

func (h *WellnessHandler) CheckIn(c *gin.Context) {
	var req moodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	result, apiErr := h.wellnessService.CheckIn(c.Request.Context(), middleware.UserID(c), req.Mood, req.Source)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *WellnessHandler) Stats(c *gin.Context) {
	stats, apiErr := h.wellnessService.Stats(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *WellnessHandler) Vouchers(c *gin.Context) {
	vouchers, apiErr := h.wellnessService.Vouchers(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, vouchers)
}

func (h *WellnessHandler) Redeem(c *gin.Context) {
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	result, apiErr := h.wellnessService.Redeem(c.Request.Context(), middleware.UserID(c), req.VoucherID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, result)
}
