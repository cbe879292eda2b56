// file: internals/features/ai/collection/controller/collection_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/configs"
	"mattilda_backend/internals/features/ai/collection/dto"
	"mattilda_backend/internals/features/ai/collection/service"
	helper "mattilda_backend/internals/helpers"
)

type CollectionController struct {
	DB      *gorm.DB
	Service *service.CollectionService
}

func NewCollectionController(db *gorm.DB, cfg *configs.AppConfig) *CollectionController {
	return &CollectionController{DB: db, Service: service.NewCollectionService(db, cfg)}
}

var validate = validator.New()

// POST /api/ai/collection/ask
func (ctrl *CollectionController) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	resp, err := ctrl.Service.Ask(c.Context(), &req)
	if err != nil {
		return helper.FromDomainError(err)
	}
	return helper.Success(c, "Question answered", resp)
}

// POST /api/ai/collection/message
func (ctrl *CollectionController) ComposeMessage(c *fiber.Ctx) error {
	var req dto.CollectionMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	resp, err := ctrl.Service.ComposeMessage(c.Context(), &req)
	if err != nil {
		return helper.FromDomainError(err)
	}
	return helper.Success(c, "Collection message drafted", resp)
}

// GET /api/ai/collection/schools/:id/risk
func (ctrl *CollectionController) AssessRisk(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid school id")
	}

	resp, err := ctrl.Service.AssessRisk(c.Context(), id)
	if err != nil {
		return helper.FromDomainError(err)
	}
	return helper.Success(c, "Risk assessment generated", resp)
}

// GET /api/ai/collection/schools/:id/summary
func (ctrl *CollectionController) ExecutiveSummary(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid school id")
	}

	resp, err := ctrl.Service.ExecutiveSummary(c.Context(), id)
	if err != nil {
		return helper.FromDomainError(err)
	}
	return helper.Success(c, "Executive summary generated", resp)
}
