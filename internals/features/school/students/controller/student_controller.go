// file: internals/features/school/students/controller/student_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/features/school/students/dto"
	"mattilda_backend/internals/features/school/students/model"
	"mattilda_backend/internals/features/school/students/service"
	helper "mattilda_backend/internals/helpers"
)

type StudentController struct {
	DB      *gorm.DB
	Service *service.StudentService
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Service: service.NewStudentService(db)}
}

var validate = validator.New()

// POST /api/a/students
func (ctrl *StudentController) CreateStudent(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctrl.Service.CreateStudent(c.Context(), m); err != nil {
		return helper.FromDomainError(err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Student created successfully", dto.NewStudentResponse(m))
}

// GET /api/u/students?school_id=&grade_id=
func (ctrl *StudentController) ListStudents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.Context()).Model(&model.Student{}).Where("is_active = ?", true)
	if sid := c.Query("school_id"); sid != "" {
		schoolID, err := uuid.Parse(sid)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid school_id filter")
		}
		q = q.Where("school_id = ?", schoolID)
	}
	if gid := c.Query("grade_id"); gid != "" {
		gradeID, err := uuid.Parse(gid)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid grade_id filter")
		}
		q = q.Where("grade_id = ?", gradeID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count students")
	}

	var students []model.Student
	if err := q.Order("last_name ASC, first_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&students).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return helper.Success(c, "Students fetched successfully", fiber.Map{
		"students":   dto.NewStudentResponses(students),
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GET /api/u/students/:id
func (ctrl *StudentController) GetStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var student model.Student
	if err := ctrl.DB.WithContext(c.Context()).First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	return helper.Success(c, "Student fetched successfully", dto.NewStudentResponse(&student))
}

// PUT /api/a/students/:id
func (ctrl *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var student model.Student
	if err := ctrl.DB.WithContext(c.Context()).First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	req.ApplyToModel(&student)
	if err := ctrl.Service.UpdateStudent(c.Context(), &student); err != nil {
		return helper.FromDomainError(err)
	}

	return helper.Success(c, "Student updated successfully", dto.NewStudentResponse(&student))
}

// DELETE /api/a/students/:id — soft delete, riwayat invoice tetap utuh.
func (ctrl *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&model.Student{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	return helper.Success(c, "Student deleted successfully", nil)
}
