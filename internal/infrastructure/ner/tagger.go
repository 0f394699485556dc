package ner

import (
	"context"
	"fmt"

	"aspiro/internal/config"
	"aspiro/internal/domain/skill"

	"go.uber.org/zap"
)

// New builds the configured tagger backend. Errors wrap skill.ErrTaggerInit.
func New(ctx context.Context, cfg config.TaggerConfig, logger *zap.Logger) (skill.Tagger, error) {
	switch cfg.Backend {
	case config.TaggerBackendHTTP, "":
		return NewHTTPTagger(ctx, cfg, logger)
	case config.TaggerBackendGazetteer:
		g, err := NewGazetteerFromFile(cfg.GazetteerFile)
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logger.Info("gazetteer tagger ready", zap.Int("terms", g.Len()), zap.String("file", cfg.GazetteerFile))
		}
		return g, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", skill.ErrTaggerInit, cfg.Backend)
	}
}
