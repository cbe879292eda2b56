// file: internals/features/finance/billing_items/controller/billing_item_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/features/finance/billing_items/dto"
	"mattilda_backend/internals/features/finance/billing_items/model"
	schoolModel "mattilda_backend/internals/features/school/schools/model"
	helper "mattilda_backend/internals/helpers"
)

type BillingItemController struct {
	DB *gorm.DB
}

func NewBillingItemController(db *gorm.DB) *BillingItemController {
	return &BillingItemController{DB: db}
}

var validate = validator.New()

// POST /api/a/billing-items
func (ctrl *BillingItemController) CreateBillingItem(c *fiber.Ctx) error {
	var req dto.CreateBillingItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

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
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create billing item")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Billing item created successfully", dto.NewBillingItemResponse(m))
}

// GET /api/u/billing-items?school_id=
func (ctrl *BillingItemController) ListBillingItems(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.Context()).Model(&model.BillingItem{}).Where("is_active = ?", true)
	if sid := c.Query("school_id"); sid != "" {
		schoolID, err := uuid.Parse(sid)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid school_id filter")
		}
		q = q.Where("school_id = ?", schoolID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count billing items")
	}

	var items []model.BillingItem
	if err := q.Order("name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch billing items")
	}

	return helper.Success(c, "Billing items fetched successfully", fiber.Map{
		"billing_items": dto.NewBillingItemResponses(items),
		"pagination":    helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GET /api/u/billing-items/:id
func (ctrl *BillingItemController) GetBillingItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid billing item id")
	}

	var item model.BillingItem
	if err := ctrl.DB.WithContext(c.Context()).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Billing item not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch billing item")
	}

	return helper.Success(c, "Billing item fetched successfully", dto.NewBillingItemResponse(&item))
}

// PUT /api/a/billing-items/:id
func (ctrl *BillingItemController) UpdateBillingItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid billing item id")
	}

	var req dto.UpdateBillingItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var item model.BillingItem
	if err := ctrl.DB.WithContext(c.Context()).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Billing item not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch billing item")
	}

	req.ApplyToModel(&item)
	if err := ctrl.DB.WithContext(c.Context()).Save(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update billing item")
	}

	return helper.Success(c, "Billing item updated successfully", dto.NewBillingItemResponse(&item))
}

// DELETE /api/a/billing-items/:id — soft delete.
func (ctrl *BillingItemController) DeleteBillingItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid billing item id")
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&model.BillingItem{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete billing item")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Billing item not found")
	}

	return helper.Success(c, "Billing item deleted successfully", nil)
}
