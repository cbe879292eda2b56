// file: internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mattilda_backend/internals/configs"
	authController "mattilda_backend/internals/features/users/auth/controller"
	"mattilda_backend/internals/middlewares"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, cfg *configs.AppConfig, jwtGuard fiber.Handler) {
	ctrl := authController.NewAuthController(db, cfg)

	grp := app.Group("/auth")
	grp.Post("/register", ctrl.Register)
	grp.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)

	app.Get("/api/u/auth/me", jwtGuard, ctrl.Me)
}
