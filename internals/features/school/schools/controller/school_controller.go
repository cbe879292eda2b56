// file: internals/features/school/schools/controller/school_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/features/school/schools/dto"
	"mattilda_backend/internals/features/school/schools/model"
	helper "mattilda_backend/internals/helpers"
)

type SchoolController struct {
	DB *gorm.DB
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db}
}

var validate = validator.New()

// POST /api/a/schools
func (ctrl *SchoolController) CreateSchool(c *fiber.Ctx) error {
	var req dto.CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create school")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "School created successfully", dto.NewSchoolResponse(m))
}

// GET /api/u/schools
func (ctrl *SchoolController) ListSchools(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.Context()).Model(&model.School{}).
		Where("is_active = ?", true).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count schools")
	}

	var schools []model.School
	if err := ctrl.DB.WithContext(c.Context()).
		Where("is_active = ?", true).
		Order("name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&schools).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch schools")
	}

	return helper.Success(c, "Schools fetched successfully", fiber.Map{
		"schools":    dto.NewSchoolResponses(schools),
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GET /api/u/schools/:id
func (ctrl *SchoolController) GetSchool(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid school id")
	}

	var school model.School
	if err := ctrl.DB.WithContext(c.Context()).First(&school, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "School not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch school")
	}

	return helper.Success(c, "School fetched successfully", dto.NewSchoolResponse(&school))
}

// PUT /api/a/schools/:id
func (ctrl *SchoolController) UpdateSchool(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid school id")
	}

	var req dto.UpdateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var school model.School
	if err := ctrl.DB.WithContext(c.Context()).First(&school, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "School not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch school")
	}

	req.ApplyToModel(&school)
	if err := ctrl.DB.WithContext(c.Context()).Save(&school).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update school")
	}

	return helper.Success(c, "School updated successfully", dto.NewSchoolResponse(&school))
}

// DELETE /api/a/schools/:id — soft delete, data keuangan tidak disentuh.
func (ctrl *SchoolController) DeleteSchool(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid school id")
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&model.School{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete school")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "School not found")
	}

	return helper.Success(c, "School deleted successfully", nil)
}
