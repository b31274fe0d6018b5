// Package app wires everything together: dependencies, middleware and routes
package app

import (
	"fmt"
	"strings"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dormhub/room-api/app/room"
	"dormhub/room-api/app/root"
	"dormhub/room-api/app/user"
	"dormhub/room-api/db"
	"dormhub/room-api/internal"
	"dormhub/room-api/internal/service"
	"dormhub/room-api/internal/store"
	"dormhub/room-api/internal/verify"
	"dormhub/room-api/pkg/middleware"
	"dormhub/room-api/pkg/security"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var cacheStore = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	makeLogger()

	database, err := db.New(viper.GetString("storage.driver"), viper.GetString("storage.dsn"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	mailer := service.NewSMTPMailer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		viper.GetString("mail.sender"),
		viper.GetString("mail.password"),
	)

	users := store.NewUsers(database)
	verifications := store.NewVerifications(database)

	d := &internal.Deps{
		DB:            database,
		Users:         users,
		Verifications: verifications,
		Argon:         security.NewArgon(),
		Sessions: security.NewSessions(
			viper.GetString("jwt.secret"),
			time.Duration(viper.GetInt("jwt.ttl_hours"))*time.Hour,
		),
		Verifier: verify.NewCoordinator(users, verifications, mailer),
	}

	router := gin.New()

	origins := strings.Split(viper.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
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

	auth := middleware.NewAuthMiddleware(d.Sessions, users)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: viper.GetInt("security.rate_limit"),
		Burst:             viper.GetInt("security.rate_limit") * 2,
		CleanupInterval:   time.Second,
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a bearer token
		m.GET("/validate", auth, root.Validate)
	}

	u := m.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/users		-> Returns the basic info of a user
		u.GET("", auth, func(c *gin.Context) { user.UserFetch(c, d) })

		// POST /api/users 		-> Registers a new user and mails a verification code
		u.POST("", func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/users/login 	-> Logs in a user and returns a bearer token
		u.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// GET /api/users/verify	-> Consumes a verification code
		u.GET("/verify", func(c *gin.Context) { user.UserVerify(c, d) })
	}

	r := m.Group("/rooms", auth)
	{
		// GET /api/rooms		-> Returns the user's rooms with their beds
		r.GET("", func(c *gin.Context) { room.RoomList(c, d) })

		// GET /api/rooms/:id		-> Returns a room by its ID if the user owns it
		r.GET("/:id", cacheFor(15), func(c *gin.Context) { room.RoomFetch(c, d) })

		// POST /api/rooms         	-> Creates a new room
		r.POST("", func(c *gin.Context) { room.RoomCreate(c, d) })

		// POST /api/rooms/:id/beds	-> Adds a bed to an owned room
		r.POST("/:id/beds", func(c *gin.Context) { room.BedAdd(c, d) })

		// DELETE /api/rooms/:id	-> Deletes an owned room and its beds
		r.DELETE("/:id", func(c *gin.Context) { room.RoomDelete(c, d) })
	}

	// Expired verification codes pile up slowly, a daily sweep is plenty
	service.RecordCleanup(time.Hour*24, verifications)

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(cacheStore, time.Second*time.Duration(sec))
}
