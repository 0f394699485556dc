package handler

import (
	"errors"

	"aspiro/internal/delivery/http/dto"
	"aspiro/internal/delivery/http/middleware"
	"aspiro/internal/domain/user"
	"aspiro/internal/pkg/response"
	"aspiro/internal/usecase"
	useruc "aspiro/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

const MessageEmailRegistered = "Email already registered"

type UserHandler struct {
	uc        usecase.UserUsecase
	validator *RequestValidator
}

func NewUserHandler(uc usecase.UserUsecase, v *RequestValidator) *UserHandler {
	if v == nil {
		v = NewRequestValidator()
	}
	return &UserHandler{uc: uc, validator: v}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/users")
	grp.Post("/", h.Create)
}

func (h *UserHandler) Create(c fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}

	created, err := h.uc.CreateUser(c.Context(), useruc.CreateInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: *req.Password,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return middleware.NewAppError(fiber.StatusBadRequest, MessageEmailRegistered, nil, err)
		}
		if errors.Is(err, useruc.ErrInvalidInput) {
			return unprocessable(response.ValidationIssue{
				Loc:  []interface{}{"body"},
				Msg:  err.Error(),
				Type: "value_error",
			})
		}
		return err
	}

	return response.Success(c, fiber.StatusOK, dto.UserResponse{
		ID:       created.ID,
		Email:    created.Email,
		FullName: created.FullName,
		IsActive: created.IsActive,
	})
}
