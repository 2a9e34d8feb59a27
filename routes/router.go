package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/devlog/goblog/config"
	"github.com/devlog/goblog/controllers"
	"github.com/devlog/goblog/middleware"
	"github.com/devlog/goblog/services"
	"github.com/devlog/goblog/stores"
	"github.com/devlog/goblog/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())

	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	userStore := stores.NewUserStore(db)
	postStore := stores.NewPostStore(db)

	authService := services.NewAuthService(userStore)
	userService := services.NewUserService(userStore)
	postService := services.NewPostService(postStore)

	authController := controllers.NewAuthController(authService, userService)
	userController := controllers.NewUserController(userService)
	postController := controllers.NewPostController(postService)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/me", middleware.AuthRequired(userStore), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(userStore), authController.UpdateProfile)

	api.GET("/users", userController.ListUsers)
	api.POST("/users", userController.CreateUser)
	api.GET("/users/:id", userController.GetUser)
	api.GET("/users/:id/posts", postController.ListUserPosts)

	api.GET("/posts", postController.ListPublicPosts)
	api.GET("/posts/:id", middleware.AuthOptional(userStore), postController.GetPost)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(userStore))
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, 404, 40400, "route not found")
	})

	return r
}
