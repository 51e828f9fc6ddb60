package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcare/internal/middleware"
	"mindcare/internal/service"
)

// SupportHandler serves the chat assistant and the crisis alert endpoints.
type SupportHandler struct {
	chatService  *service.ChatService
	alertService *service.AlertService
}

type chatRequest struct {
	Message string `json:"message"`
}

type alertRequest struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

func NewSupportHandler(chatService *service.ChatService, alertService *service.AlertService) *SupportHandler {
	return &SupportHandler{
		chatService:  chatService,
		alertService: alertService,
	}
}

func (h *SupportHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	reply, apiErr := h.chatService.Reply(req.Message)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (h *SupportHandler) CreateAlert(c *gin.Context) {
	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	alert, apiErr := h.alertService.Create(c.Request.Context(), middleware.UserID(c), req.Message, req.Level)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, alert)
}

func (h *SupportHandler) Inbox(c *gin.Context) {
	alerts, apiErr := h.alertService.Inbox(c.Request.Context(), middleware.Role(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, alerts)
}
