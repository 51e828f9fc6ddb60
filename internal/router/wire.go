package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"mindcare/internal/config"
	"mindcare/internal/handler"
	"mindcare/internal/middleware"
	"mindcare/internal/repository"
	"mindcare/internal/service"
)

// NewStub wires repositories, services and handlers over an already
// migrated database.
func NewStub(database *sql.DB, cfg config.Stub) *gin.Engine {
	userRepo := repository.NewUserRepository(database)
	appointmentRepo := repository.NewAppointmentRepository(database)
	moodRepo := repository.NewMoodRepository(database)
	voucherRepo := repository.NewVoucherRepository(database)
	alertRepo := repository.NewAlertRepository(database)
	forumRepo := repository.NewForumRepository(database)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	appointmentService := service.NewAppointmentService(appointmentRepo, userRepo)
	wellnessService := service.NewWellnessService(moodRepo, userRepo, voucherRepo)
	forumService := service.NewForumService(forumRepo)
	alertService := service.NewAlertService(alertRepo)
	adminService := service.NewAdminService(userRepo, appointmentRepo, moodRepo)

	handlers := Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Appointment: handler.NewAppointmentHandler(appointmentService),
		Forum:       handler.NewForumHandler(forumService),
		Wellness:    handler.NewWellnessHandler(wellnessService),
		Support:     handler.NewSupportHandler(service.NewChatService(), alertService),
		Admin:       handler.NewAdminHandler(adminService),
	}
	loginLimiter := middleware.NewRateLimiter(float64(cfg.LoginRatePerSecond), cfg.LoginBurst)

	return New(authService, handlers, loginLimiter, cfg.CORSOrigins)
}
