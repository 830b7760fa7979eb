package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kelasfokus/fokus-backend/internal/config"
	"github.com/kelasfokus/fokus-backend/internal/handler"
	"github.com/kelasfokus/fokus-backend/internal/middleware"
	"github.com/kelasfokus/fokus-backend/internal/response"
	"github.com/kelasfokus/fokus-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Course    *handler.CourseHandler
	Exam      *handler.ExamHandler
	Voucher   *handler.VoucherHandler
	Admin     *handler.AdminHandler
	AdminUser *handler.AdminUserHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded images (course covers, question illustrations)
	// statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", "./uploads")
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for credential and redemption endpoints (30 requests per
	// minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/register", handlers.Auth.Register)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Student Group (JWT + Single Session) ───────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(authService))
	{
		api.GET("/courses", handlers.Course.ListCourses)
		api.GET("/courses/:course_id", handlers.Course.GetCourse)
		api.GET("/courses/:course_id/materials", handlers.Course.ListMaterials)

		api.POST("/courses/:course_id/exam", handlers.Exam.StartExam)
		api.GET("/courses/:course_id/exam", handlers.Exam.GetState)
		api.DELETE("/courses/:course_id/exam", handlers.Exam.AbandonExam)
		api.GET("/courses/:course_id/exam/paper", handlers.Exam.GetPaper)
		api.POST("/courses/:course_id/exam/answer", handlers.Exam.SelectAnswer)
		api.POST("/courses/:course_id/exam/flag", handlers.Exam.ToggleFlag)
		api.POST("/courses/:course_id/exam/navigate", handlers.Exam.Navigate)
		api.POST("/courses/:course_id/exam/finish", handlers.Exam.FinishExam)
		api.GET("/courses/:course_id/exam/review", handlers.Exam.Review)

		api.GET("/results", handlers.Exam.ResultHistory)

		api.POST("/vouchers/redeem", authLimiter.Middleware(), handlers.Voucher.Redeem)
	}

	// ─── 3. WebSocket Group (WS Query Token Auth) ──────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/courses/:course_id/exam", handlers.WS.ExamStream)
	}

	// ─── 4. Admin Group (JWT + Role) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAuth(authService), middleware.RequireAdmin())
	{
		// Course management
		adminAPI.POST("/courses", handlers.Admin.CreateCourse)
		adminAPI.PUT("/courses/:course_id", handlers.Admin.UpdateCourse)
		adminAPI.DELETE("/courses/:course_id", handlers.Admin.DeleteCourse)

		// Study materials
		adminAPI.POST("/courses/:course_id/materials", handlers.Admin.CreateMaterial)
		adminAPI.PUT("/materials/:material_id", handlers.Admin.UpdateMaterial)
		adminAPI.DELETE("/materials/:material_id", handlers.Admin.DeleteMaterial)

		// Question bank
		adminAPI.GET("/courses/:course_id/questions", handlers.Admin.ListQuestions)
		adminAPI.POST("/courses/:course_id/questions", handlers.Admin.CreateQuestion)
		adminAPI.PUT("/courses/:course_id/questions/:question_id", handlers.Admin.UpdateQuestion)
		adminAPI.DELETE("/questions/:question_id", handlers.Admin.DeleteQuestion)

		// Accounts and entitlements
		adminAPI.GET("/users", handlers.AdminUser.ListUsers)
		adminAPI.DELETE("/users/:user_id/premium", handlers.AdminUser.RevokePremium)

		// Vouchers
		adminAPI.GET("/vouchers", handlers.AdminUser.ListVouchers)
		adminAPI.POST("/vouchers", handlers.AdminUser.CreateVoucher)
		adminAPI.DELETE("/vouchers/:voucher_id", handlers.AdminUser.DeleteVoucher)
	}

	return router
}
