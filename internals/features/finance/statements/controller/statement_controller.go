// file: internals/features/finance/statements/controller/statement_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/features/finance/statements/service"
	helper "mattilda_backend/internals/helpers"
)

type StatementController struct {
	DB      *gorm.DB
	Service *service.StatementService
}

func NewStatementController(db *gorm.DB) *StatementController {
	return &StatementController{DB: db, Service: service.NewStatementService(db)}
}

// GET /api/u/students/:id/statement
func (ctrl *StatementController) StudentStatement(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	stmt, err := ctrl.Service.StudentStatement(c.Context(), id)
	if err != nil {
		return helper.FromDomainError(err)
	}
	return helper.Success(c, "Student statement generated successfully", stmt)
}

// GET /api/u/schools/:id/statement
func (ctrl *StatementController) SchoolStatement(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid school id")
	}

	stmt, err := ctrl.Service.SchoolStatement(c.Context(), id)
	if err != nil {
		return helper.FromDomainError(err)
	}
	return helper.Success(c, "School statement generated successfully", stmt)
}
