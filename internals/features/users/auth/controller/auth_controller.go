// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mattilda_backend/internals/configs"
	"mattilda_backend/internals/features/users/auth/dto"
	"mattilda_backend/internals/features/users/auth/model"
	helper "mattilda_backend/internals/helpers"
	authMw "mattilda_backend/internals/middlewares/auth"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *configs.AppConfig
}

func NewAuthController(db *gorm.DB, cfg *configs.AppConfig) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

var validate = validator.New()

// POST /auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var count int64
	if err := ctrl.DB.WithContext(c.Context()).
		Model(&model.User{}).Where("username = ?", req.Username).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to verify username")
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict, "Username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: string(hashed),
		IsActive:       true,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(user).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "User registered successfully", dto.NewUserResponse(user))
}

// POST /auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.User
	if err := ctrl.DB.WithContext(c.Context()).
		First(&user, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch user")
	}

	if !user.IsActive {
		return fiber.NewError(fiber.StatusForbidden, "Account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
	}

	expiresAt := time.Now().Add(ctrl.Cfg.AccessTokenTTL)
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"user_id":  user.ID.String(),
		"username": user.Username,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(ctrl.Cfg.JWTSecret))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sign token")
	}

	return helper.Success(c, "Login successful", dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// GET /api/u/auth/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	uid, _ := c.Locals(authMw.LocUserID).(string)
	if uid == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var user model.User
	if err := ctrl.DB.WithContext(c.Context()).First(&user, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch user")
	}

	return helper.Success(c, "Profile fetched successfully", dto.NewUserResponse(&user))
}
