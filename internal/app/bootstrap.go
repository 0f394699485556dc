package app

import (
	"context"
	"fmt"
	"strings"

	"aspiro/internal/config"
	"aspiro/internal/delivery/http/handler"
	"aspiro/internal/delivery/http/middleware"
	"aspiro/internal/delivery/http/routes"
	"aspiro/internal/pkg/metrics"
	"aspiro/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"go.uber.org/zap"
)

type App struct {
	Fiber *fiber.App
}

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Skills  usecase.SkillUsecase
	Users   usecase.UserUsecase
	Checks  map[string]handler.Pinger
	Metrics *metrics.Manager
	Logger  *zap.Logger
}

func New(cfg config.Config, deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.ProjectName,
	})

	registerGlobalMiddleware(f, deps)
	registerRoutes(f, cfg, deps)

	return &App{Fiber: f}
}

// Bootstrap wires the container into a ready-to-listen App. The returned
// cleanup releases storage connections.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := New(cfg, Deps{
		Skills:  c.Skills,
		Users:   c.Users,
		Checks:  c.HealthChecks(),
		Metrics: c.Metrics,
		Logger:  logger,
	})
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, deps Deps) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(deps.Logger.Named("http")).Middleware())
	if deps.Metrics != nil {
		app.Use(middleware.NewMetricsMiddleware(deps.Metrics).Middleware())
	}
	app.Use(middleware.NewErrorMiddleware(deps.Logger).Middleware())
}

func registerRoutes(app *fiber.App, cfg config.Config, deps Deps) {
	if app == nil {
		return
	}

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	v := handler.NewRequestValidator()
	routes.NewRegistry(cfg.App.APIV1Prefix, routes.Handlers{
		Health: handler.NewHealthHandler(cfg.App.ProjectName, deps.Checks),
		Skill:  handler.NewSkillHandler(deps.Skills, v),
		User:   handler.NewUserHandler(deps.Users, v),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
