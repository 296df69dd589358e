// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"github.com/srepett/UploadFileee/db"
	"github.com/srepett/UploadFileee/internal/service"
	"github.com/srepett/UploadFileee/middleware"
	"github.com/srepett/UploadFileee/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Argon    *security.ArgonHash
	Identity *service.Identity
	Files    *service.Registry
}

func NewRouter() (*API, error) {
	makeLogger()

	a := &API{
		Argon: security.New(),
	}

	d, err := db.New(a.Argon)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}
	a.DB = d

	a.Files = service.NewRegistry(d)
	a.Identity = service.NewIdentity(d, a.Argon, a.Files)

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware(d)
	admin := middleware.NewAdminMiddleware()
	authLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 2,
		Burst:             5,
	})
	maxUploadSize := viper.GetInt64("upload.max_size")

	// GET /foto/:slug, /video/:slug	-> Resolves a share URL to its file
	router.GET("/foto/:slug", a.FileResolve)
	router.GET("/video/:slug", a.FileResolve)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a JWT token
		main.HEAD("/validate", jwt, a.Validate)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/users 		-> Registers a new user
		users.POST("", authLimiter, a.UserRegister)

		// POST /api/users/login 	-> Logs in a user and sets the auth cookie
		users.POST("/login", authLimiter, a.UserLogin)

		// POST /api/users/logout 	-> Clears the auth cookie
		users.POST("/logout", a.UserLogout)

		// GET /api/users/me		-> Returns the current session's user
		users.GET("/me", jwt, a.UserMe)
	}

	files := main.Group("/files", jwt)
	{
		// GET /api/files 		-> Returns the caller's files
		files.GET("", a.FileList)

		// POST /api/files		-> Records a new upload
		files.POST("", middleware.BodySizeLimiter(maxUploadSize), a.FileUpload)

		// PATCH /api/files/:id/url	-> Sets a custom share slug
		files.PATCH("/:id/url", a.FileSetURL)

		// DELETE /api/files/:id	-> Deletes a file owned by the caller
		files.DELETE("/:id", a.FileDelete)
	}

	adm := main.Group("/admin", jwt, admin)
	{
		// GET /api/admin/stats		-> Global storage statistics
		adm.GET("/stats", cacheFor(30), a.AdminStats)

		// GET /api/admin/users		-> Lists all accounts
		adm.GET("/users", a.AdminUsers)

		// GET /api/admin/files		-> Lists all files
		adm.GET("/files", a.AdminFiles)

		// PUT /api/admin/users/:id/ban	-> Bans or unbans a user
		adm.PUT("/users/:id/ban", a.AdminSetBan)

		// DELETE /api/admin/users/:id	-> Deletes a user and their files
		adm.DELETE("/users/:id", a.AdminUserDelete)

		// DELETE /api/admin/files/:id	-> Deletes any file
		adm.DELETE("/files/:id", a.AdminFileDelete)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
