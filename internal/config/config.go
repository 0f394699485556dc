package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	TaggerBackendHTTP      = "http"
	TaggerBackendGazetteer = "gazetteer"
)

type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Tagger   TaggerConfig
	Security SecurityConfig
}

type AppConfig struct {
	ProjectName string `env:"PROJECT_NAME" envDefault:"ASPIRO AI" validate:"required"`
	APIV1Prefix string `env:"API_V1_STR" envDefault:"/api/v1" validate:"required,startswith=/"`
	Environment string `env:"APP_ENV" envDefault:"development" validate:"oneof=development production test"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8000" validate:"required"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

type DatabaseConfig struct {
	URL            string        `env:"DATABASE_URL" validate:"required"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	PoolMaxConns   int32         `env:"DB_POOL_MAX_CONNS" validate:"gte=0"`
	Migrate        bool          `env:"DB_MIGRATE" envDefault:"true"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" validate:"gte=0"`
	TTL      time.Duration `env:"SKILL_CACHE_TTL" envDefault:"10m"`
}

type TaggerConfig struct {
	Backend       string        `env:"TAGGER_BACKEND" envDefault:"http" validate:"oneof=http gazetteer"`
	URL           string        `env:"TAGGER_URL" envDefault:"https://api-inference.huggingface.co" validate:"omitempty,url"`
	Model         string        `env:"TAGGER_MODEL" envDefault:"dslim/bert-base-NER"`
	Token         string        `env:"TAGGER_TOKEN"`
	Timeout       time.Duration `env:"TAGGER_TIMEOUT" envDefault:"30s"`
	Warmup        bool          `env:"TAGGER_WARMUP" envDefault:"true"`
	GazetteerFile string        `env:"TAGGER_GAZETTEER_FILE"`
	SkillCategory string        `env:"SKILL_CATEGORY" envDefault:"MISC" validate:"required"`
}

type SecurityConfig struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12" validate:"min=4,max=31"`
}

var errInvalidConfig = errors.New("invalid configuration")

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv parses the process environment without touching .env.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errInvalidConfig, err)
	}

	cfg.App.APIV1Prefix = strings.TrimRight(strings.TrimSpace(cfg.App.APIV1Prefix), "/")
	if cfg.App.APIV1Prefix == "" {
		cfg.App.APIV1Prefix = "/"
	}
	cfg.Tagger.URL = strings.TrimRight(strings.TrimSpace(cfg.Tagger.URL), "/")

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errInvalidConfig, err)
	}
	if cfg.Tagger.Backend == TaggerBackendHTTP && cfg.Tagger.URL == "" {
		return Config{}, fmt.Errorf("%w: TAGGER_URL is required for the http tagger", errInvalidConfig)
	}
	return cfg, nil
}

func (c AppConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}
