// file: internals/helpers/from_domain_error.go
package helper

import (
	"github.com/gofiber/fiber/v2"

	"mattilda_backend/internals/domain"
)

// FromDomainError menerjemahkan error taksonomi domain ke fiber.Error.
// EntityNotFound → 404, aturan bisnis (overpay, cancelled, cross-entity) → 400.
func FromDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case domain.IsEntityNotFound(err):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case domain.IsBusinessRule(err):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
