package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcare/internal/handler"
	"mindcare/internal/middleware"
	"mindcare/internal/model"
	"mindcare/internal/service"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Appointment *handler.AppointmentHandler
	Forum       *handler.ForumHandler
	Wellness    *handler.WellnessHandler
	Support     *handler.SupportHandler
	Admin       *handler.AdminHandler
}

func New(
	authService *service.AuthService,
	handlers Handlers,
	loginLimiter *middleware.RateLimiter,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.Auth(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", middleware.RateLimit(loginLimiter), handlers.Auth.Register)
	auth.POST("/login", middleware.RateLimit(loginLimiter), handlers.Auth.Login)
	auth.GET("/profile", requireAuth, handlers.Auth.Profile)

	api.GET("/counsellors", handlers.Appointment.Counsellors)

	appointments := api.Group("/appointments")
	appointments.Use(requireAuth)
	appointments.GET("/me", handlers.Appointment.ListMine)
	appointments.POST("", handlers.Appointment.Create)
	appointments.PATCH(
		"/:id/status",
		middleware.RequireRole(model.RoleCounsellor, model.RoleAdmin),
		handlers.Appointment.UpdateStatus,
	)
	appointments.DELETE("/:id", handlers.Appointment.Delete)

	api.POST("/chat", handlers.Support.Chat)

	alerts := api.Group("/alerts")
	alerts.POST("", optionalAuth, handlers.Support.CreateAlert)
	alerts.GET("/inbox", requireAuth, handlers.Support.Inbox)

	moods := api.Group("/moods")
	moods.Use(requireAuth)
	moods.POST("", handlers.Wellness.CheckIn)
	moods.GET("/stats", handlers.Wellness.Stats)

	forum := api.Group("/forum")
	forum.GET("", handlers.Forum.List)
	forum.POST("", optionalAuth, handlers.Forum.Create)
	forum.DELETE("/:id", requireAuth, handlers.Forum.Delete)
	forum.POST("/:id/like", requireAuth, handlers.Forum.Like)
	forum.POST("/:id/reply", optionalAuth, handlers.Forum.Reply)

	vouchers := api.Group("/vouchers")
	vouchers.GET("", handlers.Wellness.Vouchers)
	vouchers.POST("/redeem", requireAuth, handlers.Wellness.Redeem)

	admin := api.Group("/admin")
	admin.GET("/overview", handlers.Admin.Overview)
	admin.GET("/weekly-trends", handlers.Admin.WeeklyTrends)
	admin.GET("/campus-breakdown", handlers.Admin.CampusBreakdown)

	return engine
}
