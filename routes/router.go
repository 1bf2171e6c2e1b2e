package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pqh/blog/config"
	"github.com/pqh/blog/controllers"
	"github.com/pqh/blog/metrics"
	"github.com/pqh/blog/middleware"
	"github.com/pqh/blog/repository"
	"github.com/pqh/blog/security"
	"github.com/pqh/blog/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
// revoked may be nil when no revocation list is configured.
func SetupRouter(cfg config.AppConfig, db *gorm.DB, revoked security.RevocationList, reg *prometheus.Registry) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		middleware.UseJSONFieldNames(v)
	}

	r := gin.New()
	r.Use(middleware.RequestID())

	accessLog := utils.Logger
	if cfg.GinPath != "" {
		gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
		if err != nil {
			utils.Logger.Warn("gin access log falls back to application logger", zap.Error(err))
		} else {
			accessLog = gl
		}
	}
	r.Use(utils.Ginzap(accessLog, time.RFC3339, true))
	r.Use(utils.RecoveryWithZap(accessLog, true))

	alertHeaders := []string{"X-" + cfg.AppName + "-alert", "X-" + cfg.AppName + "-params", "X-" + cfg.AppName + "-error"}
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    append([]string{"Location", "Link", "X-Total-Count", middleware.RequestIDHeader}, alertHeaders...),
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	if reg != nil {
		r.Use(middleware.Timed(metrics.NewRecorder(reg)))
		if cfg.MetricsEnabled {
			r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
		}
	}
	r.Use(middleware.ErrorTranslator(cfg.AppName))

	r.GET("/health", func(ctx *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx.Request.Context())
		}
		if err != nil {
			_ = ctx.Error(err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	commentController := controllers.NewCommentController(repository.NewCommentRepository(db), cfg)
	writeLimit := middleware.RateLimit(cfg.RateLimitPerMinute)

	api := r.Group("/api")
	api.Use(middleware.Principal(cfg.JWTSecret, revoked))

	api.POST("/comments", writeLimit, commentController.CreateComment)
	api.PUT("/comments", writeLimit, commentController.UpdateComment)
	api.GET("/comments", commentController.ListComments)
	api.GET("/comments/:id", commentController.GetComment)
	api.DELETE("/comments/:id", writeLimit, commentController.DeleteComment)
	api.GET("/comments/story/:story_id", commentController.ListStoryComments)
	api.DELETE("/comments/story/:story_id", writeLimit, commentController.DeleteStoryComments)
	api.GET("/account/comments", commentController.ListMyComments)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, utils.ErrorResponse{
			Status:  http.StatusNotFound,
			Title:   "api route not found",
			Message: "error.http.404",
		})
	})

	return r
}
