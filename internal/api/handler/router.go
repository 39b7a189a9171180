package handler

import (
	"net/http"

	"racedebrief/internal/api/middleware"
	"racedebrief/internal/api/service"
	"racedebrief/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything NewRouter mounts.
type Handlers struct {
	Auth    *AuthHandler
	Race    *RaceHandler
	Review  *ReviewHandler
	Comment *CommentHandler
	Like    *LikeHandler
	User    *UserHandler
}

// NewRouter assembles the gin engine: CORS, the public /api surface and
// the admin group behind auth + role middleware.
func NewRouter(cfg *config.Config, authService service.AuthService, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	authMW := middleware.AuthMiddleware(authService)

	api := r.Group("/api")
	admin := api.Group("/admin", authMW, middleware.RequireAdmin())

	h.Auth.RegisterRoutes(api)
	h.Race.RegisterRoutes(api, admin)
	h.Review.RegisterRoutes(api, authMW)
	h.Comment.RegisterRoutes(api, authMW)
	h.Like.RegisterRoutes(api, authMW)
	h.User.RegisterRoutes(api, admin, authMW)

	return r
}
