package ner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"aspiro/internal/config"
	"aspiro/internal/domain/skill"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const warmupText = "Experience with Python, Kubernetes and Project Management is required."

// HTTPTagger calls a token-classification inference endpoint in the shape
// served by the Hugging Face Inference API.
type HTTPTagger struct {
	client   *resty.Client
	endpoint string
	logger   *zap.Logger
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
	Options    inferenceOptions    `json:"options"`
}

// inferenceOptions asks the server to hold the request while a cold model
// loads instead of answering 503.
type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type inferenceParameters struct {
	AggregationStrategy string `json:"aggregation_strategy"`
}

type inferenceEntity struct {
	EntityGroup string  `json:"entity_group"`
	Entity      string  `json:"entity"`
	Word        string  `json:"word"`
	Score       float64 `json:"score"`
	Start       *int    `json:"start"`
	End         *int    `json:"end"`
}

type inferenceError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// modelLoadingError is a 503 reporting that the model is still loading.
type modelLoadingError struct {
	err  error
	wait time.Duration
}

func (e *modelLoadingError) Error() string { return e.err.Error() }
func (e *modelLoadingError) Unwrap() error { return e.err }

// NewHTTPTagger builds the client and, when cfg.Warmup is set, runs one
// inference so that model loading happens before the first request.
func NewHTTPTagger(ctx context.Context, cfg config.TaggerConfig, logger *zap.Logger) (*HTTPTagger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" {
		return nil, fmt.Errorf("%w: empty tagger url", skill.ErrTaggerInit)
	}
	model := strings.Trim(strings.TrimSpace(cfg.Model), "/")
	if model == "" {
		return nil, fmt.Errorf("%w: empty tagger model", skill.ErrTaggerInit)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if tok := strings.TrimSpace(cfg.Token); tok != "" {
		client.SetAuthToken(tok)
	}

	t := &HTTPTagger{
		client:   client,
		endpoint: base + "/models/" + model,
		logger:   logger.Named("ner"),
	}

	if cfg.Warmup {
		start := time.Now()
		if err := t.warmup(ctx, timeout); err != nil {
			return nil, fmt.Errorf("%w: warm-up inference: %v", skill.ErrTaggerInit, err)
		}
		t.logger.Info("entity tagger ready", zap.String("endpoint", t.endpoint), zap.Duration("warmup", time.Since(start)))
	}
	return t, nil
}

// warmup tags a fixed sentence, retrying while the server reports the model
// as loading for at most budget.
func (t *HTTPTagger) warmup(ctx context.Context, budget time.Duration) error {
	deadline := time.Now().Add(budget)
	for {
		_, err := t.Tag(ctx, warmupText)
		var loading *modelLoadingError
		if err == nil || !errors.As(err, &loading) {
			return err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return err
		}
		wait := loading.wait
		if wait <= 0 {
			wait = time.Second
		}
		if wait > remaining {
			wait = remaining
		}
		t.logger.Info("model loading, retrying warm-up", zap.Duration("wait", wait))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}

func (t *HTTPTagger) Tag(ctx context.Context, text string) ([]skill.TaggedSpan, error) {
	if text == "" {
		return []skill.TaggedSpan{}, nil
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(inferenceRequest{
			Inputs:     text,
			Parameters: inferenceParameters{AggregationStrategy: "simple"},
			Options:    inferenceOptions{WaitForModel: true},
		}).
		Post(t.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", skill.ErrTaggerFailure, err)
	}

	body := resp.Body()
	if resp.IsError() {
		return nil, t.statusError(resp.StatusCode(), body)
	}

	entities, err := decodeEntities(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", skill.ErrTaggerFailure, err)
	}

	spans := make([]skill.TaggedSpan, 0, len(entities))
	for _, e := range entities {
		sp := skill.TaggedSpan{
			Category: categoryOf(e),
			Text:     e.Word,
			Score:    e.Score,
		}
		if e.Start != nil {
			sp.Start = *e.Start
		}
		if e.End != nil {
			sp.End = *e.End
		}
		spans = append(spans, sp)
	}
	return spans, nil
}

func (t *HTTPTagger) statusError(status int, body []byte) error {
	var ie inferenceError
	_ = json.Unmarshal(body, &ie)
	msg := strings.TrimSpace(ie.Error)
	if msg == "" {
		msg = strings.TrimSpace(string(truncate(body, 512)))
	}

	t.logger.Warn("tagger request failed", zap.String("endpoint", t.endpoint), zap.Int("status", status), zap.String("error", msg))

	if status == http.StatusRequestEntityTooLarge || isLengthError(msg) {
		return fmt.Errorf("%w: status=%d %s", skill.ErrTaggerLimitExceeded, status, msg)
	}
	err := fmt.Errorf("%w: status=%d %s", skill.ErrTaggerFailure, status, msg)
	if status == http.StatusServiceUnavailable && strings.Contains(strings.ToLower(msg), "loading") {
		return &modelLoadingError{err: err, wait: time.Duration(ie.EstimatedTime * float64(time.Second))}
	}
	return err
}

// decodeEntities accepts both a flat entity list and the nested list some
// servers return for single inputs.
func decodeEntities(body []byte) ([]inferenceEntity, error) {
	var flat []inferenceEntity
	flatErr := json.Unmarshal(body, &flat)
	if flatErr == nil {
		return flat, nil
	}

	var nested [][]inferenceEntity
	if err := json.Unmarshal(body, &nested); err != nil {
		return nil, flatErr
	}
	out := make([]inferenceEntity, 0)
	for _, batch := range nested {
		out = append(out, batch...)
	}
	return out, nil
}

// categoryOf prefers the aggregated group and falls back to the IOB tag.
func categoryOf(e inferenceEntity) skill.Category {
	if g := strings.TrimSpace(e.EntityGroup); g != "" {
		return skill.Category(g)
	}
	tag := strings.TrimSpace(e.Entity)
	if len(tag) > 2 && (strings.HasPrefix(tag, "B-") || strings.HasPrefix(tag, "I-")) {
		tag = tag[2:]
	}
	return skill.Category(tag)
}

func isLengthError(msg string) bool {
	m := strings.ToLower(msg)
	for _, marker := range []string{"too long", "sequence length", "maximum length", "max_length", "exceeds"} {
		if strings.Contains(m, marker) {
			return true
		}
	}
	return false
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

var _ skill.Tagger = (*HTTPTagger)(nil)
