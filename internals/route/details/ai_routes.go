// file: internals/route/details/ai_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mattilda_backend/internals/configs"
	collectionController "mattilda_backend/internals/features/ai/collection/controller"
)

func AIRoutes(ai fiber.Router, db *gorm.DB, cfg *configs.AppConfig) {
	collection := collectionController.NewCollectionController(db, cfg)

	grp := ai.Group("/collection")
	grp.Post("/ask", collection.Ask)
	grp.Post("/message", collection.ComposeMessage)
	grp.Get("/schools/:id/risk", collection.AssessRisk)
	grp.Get("/schools/:id/summary", collection.ExecutiveSummary)
}
