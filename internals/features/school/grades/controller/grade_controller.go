// file: internals/features/school/grades/controller/grade_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/features/school/grades/dto"
	"mattilda_backend/internals/features/school/grades/model"
	schoolModel "mattilda_backend/internals/features/school/schools/model"
	helper "mattilda_backend/internals/helpers"
)

type GradeController struct {
	DB *gorm.DB
}

func NewGradeController(db *gorm.DB) *GradeController {
	return &GradeController{DB: db}
}

var validate = validator.New()

// POST /api/a/grades
func (ctrl *GradeController) CreateGrade(c *fiber.Ctx) error {
	var req dto.CreateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// School harus ada sebelum grade dibuat
	var count int64
	if err := ctrl.DB.WithContext(c.Context()).
		Model(&schoolModel.School{}).Where("id = ?", req.SchoolID).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to verify school")
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound, "School not found")
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create grade")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Grade created successfully", dto.NewGradeResponse(m))
}

// GET /api/u/grades?school_id=
func (ctrl *GradeController) ListGrades(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.Context()).Model(&model.Grade{}).Where("is_active = ?", true)
	if sid := c.Query("school_id"); sid != "" {
		schoolID, err := uuid.Parse(sid)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid school_id filter")
		}
		q = q.Where("school_id = ?", schoolID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count grades")
	}

	var grades []model.Grade
	if err := q.Order("name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&grades).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch grades")
	}

	return helper.Success(c, "Grades fetched successfully", fiber.Map{
		"grades":     dto.NewGradeResponses(grades),
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GET /api/u/grades/:id
func (ctrl *GradeController) GetGrade(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid grade id")
	}

	var grade model.Grade
	if err := ctrl.DB.WithContext(c.Context()).First(&grade, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Grade not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch grade")
	}

	return helper.Success(c, "Grade fetched successfully", dto.NewGradeResponse(&grade))
}

// PUT /api/a/grades/:id
func (ctrl *GradeController) UpdateGrade(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid grade id")
	}

	var req dto.UpdateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var grade model.Grade
	if err := ctrl.DB.WithContext(c.Context()).First(&grade, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Grade not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch grade")
	}

	req.ApplyToModel(&grade)
	if err := ctrl.DB.WithContext(c.Context()).Save(&grade).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update grade")
	}

	return helper.Success(c, "Grade updated successfully", dto.NewGradeResponse(&grade))
}

// DELETE /api/a/grades/:id — soft delete.
func (ctrl *GradeController) DeleteGrade(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid grade id")
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&model.Grade{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete grade")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Grade not found")
	}

	return helper.Success(c, "Grade deleted successfully", nil)
}
