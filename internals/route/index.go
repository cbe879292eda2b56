// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mattilda_backend/internals/configs"
	"mattilda_backend/internals/middlewares"
	"mattilda_backend/internals/middlewares/auth"
	"mattilda_backend/internals/route/details"
)

/* =======================================================================
   Komposisi route:
   - /auth        : publik (register/login), login dibatasi limiter
   - /api/u/...   : baca — semua akun login
   - /api/a/...   : tulis/mutasi — semua akun login (back office)
   - /api/ai/...  : agent AI, limiter sendiri yang lebih ketat
======================================================================= */

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.AppConfig) {
	jwtGuard := auth.AuthJWT(auth.AuthJWTOpts{
		Secret:              cfg.JWTSecret,
		AllowCookieFallback: true,
	})

	details.AuthRoutes(app, db, cfg, jwtGuard)

	userGroup := app.Group("/api/u", jwtGuard)
	adminGroup := app.Group("/api/a", jwtGuard)

	details.SchoolRoutes(userGroup, adminGroup, db)
	details.FinanceRoutes(userGroup, adminGroup, db)
	details.ReportRoutes(userGroup, db)

	aiGroup := app.Group("/api/ai", jwtGuard, middlewares.AIRateLimiter(cfg.AIRequestsPerMinute))
	details.AIRoutes(aiGroup, db, cfg)
}
