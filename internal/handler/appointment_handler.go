package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcare/internal/middleware"
	"mindcare/internal/service"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

type createAppointmentRequest struct {
	CounsellorID string `json:"counsellorId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (h *AppointmentHandler) Counsellors(c *gin.Context) {
	counsellors, apiErr := h.appointmentService.Counsellors(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, counsellors)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	appointment, apiErr := h.appointmentService.Create(c.Request.Context(), service.CreateAppointmentInput{
		StudentID:    middleware.UserID(c),
		CounsellorID: req.CounsellorID,
		Date:         req.Date,
		Time:         req.Time,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	appointments, apiErr := h.appointmentService.ListMine(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	appointment, apiErr := h.appointmentService.UpdateStatus(
		c.Request.Context(),
		middleware.UserID(c),
		middleware.Role(c),
		c.Param("id"),
		req.Status,
	)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	apiErr := h.appointmentService.Delete(c.Request.Context(), middleware.UserID(c), middleware.Role(c), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
