package handler

import (
	"errors"

	"aspiro/internal/delivery/http/dto"
	"aspiro/internal/delivery/http/middleware"
	"aspiro/internal/domain/skill"
	"aspiro/internal/pkg/response"
	"aspiro/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc        usecase.SkillUsecase
	validator *RequestValidator
}

func NewSkillHandler(uc usecase.SkillUsecase, v *RequestValidator) *SkillHandler {
	if v == nil {
		v = NewRequestValidator()
	}
	return &SkillHandler{uc: uc, validator: v}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Post("/extract/", h.Extract)
}

func (h *SkillHandler) Extract(c fiber.Ctx) error {
	var req dto.ExtractionRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}

	skills, err := h.uc.ExtractSkills(c.Context(), *req.Text)
	if err != nil {
		switch {
		case errors.Is(err, skill.ErrTaggerLimitExceeded):
			return middleware.NewAppError(fiber.StatusInternalServerError, "Input text exceeds the entity tagger's limit", nil, err)
		case errors.Is(err, skill.ErrTaggerFailure):
			return middleware.NewAppError(fiber.StatusBadGateway, "Entity tagger request failed", nil, err)
		}
		return err
	}

	return response.Success(c, fiber.StatusOK, dto.ExtractionResponse{Skills: skills})
}
