package app

import (
	"context"
	"fmt"

	"aspiro/internal/config"
	"aspiro/internal/database"
	"aspiro/internal/database/migration"
	dbpostgres "aspiro/internal/database/postgres"
	"aspiro/internal/delivery/http/handler"
	"aspiro/internal/domain/skill"
	"aspiro/internal/infrastructure/cache"
	"aspiro/internal/infrastructure/ner"
	"aspiro/internal/infrastructure/persistence/postgres"
	"aspiro/internal/pkg/metrics"
	"aspiro/internal/usecase"
	ucskill "aspiro/internal/usecase/skill"
	ucuser "aspiro/internal/usecase/user"

	"go.uber.org/zap"
)

// Container owns the long-lived resources of the server process.
type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      database.DB
	Cache   *cache.Redis
	Tagger  skill.Tagger
	Metrics *metrics.Manager

	Skills usecase.SkillUsecase
	Users  usecase.UserUsecase
}

// NewContainer connects storage, applies migrations and initializes the
// tagger. A tagger failure wraps skill.ErrTaggerInit.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger, Metrics: metrics.New()}

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c.DB = db

	if cfg.Database.Migrate {
		runner := migration.Runner{Logger: logger.Named("migration")}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, logger.Named("cache"))

	tagger, err := ner.New(ctx, cfg.Tagger, logger.Named("tagger"))
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Tagger = tagger

	skillOpts := []ucskill.Option{
		ucskill.WithCategory(skill.Category(cfg.Tagger.SkillCategory)),
		ucskill.WithMetrics(c.Metrics),
		ucskill.WithLogger(logger.Named("skills")),
	}
	if c.Cache.Enabled() {
		skillOpts = append(skillOpts, ucskill.WithCache(c.Cache, cfg.Redis.TTL))
	}
	c.Skills = usecase.NewSkillUsecase(ucskill.NewService(tagger, skillOpts...))

	c.Users = usecase.NewUserUsecase(ucuser.NewService(
		postgres.NewUserRepository(db),
		ucuser.WithBcryptCost(cfg.Security.BcryptCost),
		ucuser.WithMetrics(c.Metrics),
		ucuser.WithLogger(logger.Named("users")),
	))

	return c, nil
}

// HealthChecks lists the dependencies probed by /health.
func (c *Container) HealthChecks() map[string]handler.Pinger {
	checks := map[string]handler.Pinger{}
	if c.DB != nil {
		checks["database"] = c.DB
	}
	if c.Cache != nil && c.Cache.Enabled() {
		checks["cache"] = c.Cache
	}
	return checks
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
