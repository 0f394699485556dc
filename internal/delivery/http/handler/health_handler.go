package handler

import (
	"context"
	"time"

	"aspiro/internal/delivery/http/dto"
	"aspiro/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	projectName string
	checks      map[string]Pinger
	timeout     time.Duration
}

// NewHealthHandler builds the liveness and readiness endpoints. checks are
// pinged on every readiness probe.
func NewHealthHandler(projectName string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{projectName: projectName, checks: checks, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Root(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, dto.WelcomeResponse{
		Status:  "ok",
		Message: "Welcome to " + h.projectName + " Backend",
	})
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	res := dto.HealthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			res.Status = "unavailable"
			res.Checks[name] = err.Error()
			continue
		}
		res.Checks[name] = "ok"
	}

	status := fiber.StatusOK
	if res.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return response.Success(c, status, res)
}
