package skill

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aspiro/internal/domain/skill"
	"aspiro/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Service extracts skill keywords from free text with a shared tagger.
type Service struct {
	tagger   skill.Tagger
	category skill.Category
	cache    ResultCache
	cacheTTL time.Duration
	metrics  *metrics.Manager
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*Service)

// WithCategory overrides the entity label treated as a skill.
func WithCategory(c skill.Category) Option {
	return func(s *Service) {
		if strings.TrimSpace(string(c)) != "" {
			s.category = c
		}
	}
}

func WithCache(c ResultCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(tagger skill.Tagger, opts ...Option) *Service {
	s := &Service{
		tagger:   tagger,
		category: skill.CategoryMiscellaneous,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractSkills returns the unique skills found in text. Blank text yields an
// empty list without calling the tagger. Tagger errors are returned wrapped
// and never retried.
func (s *Service) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	start := s.now()
	if strings.TrimSpace(text) == "" {
		s.metrics.ObserveExtraction(metrics.OutcomeEmpty, 0, 0)
		return []string{}, nil
	}

	key := CacheKey(s.category, text)
	if cached, ok := s.lookup(ctx, key); ok {
		s.metrics.ObserveExtraction(metrics.OutcomeCached, len(cached), s.now().Sub(start))
		return cached, nil
	}

	spans, err := s.tagger.Tag(ctx, text)
	if err != nil {
		s.metrics.ObserveExtraction(metrics.OutcomeError, 0, s.now().Sub(start))
		s.logger.Error("skill extraction failed", zap.Int("text_len", len(text)), zap.Error(err))
		return nil, fmt.Errorf("extract skills: %w", err)
	}

	skills := skill.FilterSkills(spans, s.category)
	elapsed := s.now().Sub(start)
	s.metrics.ObserveExtraction(metrics.OutcomeOK, len(skills), elapsed)
	s.logger.Debug("skills extracted",
		zap.Int("text_len", len(text)),
		zap.Int("spans", len(spans)),
		zap.Int("skills", len(skills)),
		zap.Duration("duration", elapsed),
	)

	s.store(ctx, key, skills)
	return skills, nil
}

func (s *Service) lookup(ctx context.Context, key string) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	var out []string
	found, err := s.cache.GetJSON(ctx, key, &out)
	if err != nil {
		s.logger.Debug("skill cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !found || out == nil {
		return nil, false
	}
	return out, true
}

func (s *Service) store(ctx context.Context, key string, skills []string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, skills, s.cacheTTL); err != nil {
		s.logger.Debug("skill cache write failed", zap.String("key", key), zap.Error(err))
	}
}
