package routes

import (
	"strings"

	"aspiro/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health *handler.HealthHandler
	Skill  *handler.SkillHandler
	User   *handler.UserHandler
}

type Registry struct {
	apiPrefix string
	handlers  Handlers
}

// NewRegistry mounts the health endpoints at the root and the versioned API
// under apiPrefix, e.g. "/api/v1".
func NewRegistry(apiPrefix string, handlers Handlers) *Registry {
	return &Registry{apiPrefix: strings.TrimRight(apiPrefix, "/"), handlers: handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	var api fiber.Router = app
	if r.apiPrefix != "" {
		api = app.Group(r.apiPrefix)
	}
	RegisterV1(api, r.handlers)
}
