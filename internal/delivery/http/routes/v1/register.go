package v1

import (
	"aspiro/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, skillHandler *handler.SkillHandler, userHandler *handler.UserHandler) {
	if r == nil {
		return
	}

	if skillHandler != nil {
		skillHandler.RegisterRoutes(r)
	}
	if userHandler != nil {
		userHandler.RegisterRoutes(r)
	}
}
