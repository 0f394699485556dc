// Package client talks to the extraction API over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "http://127.0.0.1:8000/api/v1"

type Client struct {
	http    *resty.Client
	rootURL string
}

type User struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	IsActive bool    `json:"is_active"`
}

type CreateUserInput struct {
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Password string  `json:"password"`
}

type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// APIError is returned for any non-2xx reply.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Detail)
}

// New targets baseURL, the versioned API root such as DefaultBaseURL. Health
// probes go to the server root derived from it.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", baseURL)
	}
	root := url.URL{Scheme: u.Scheme, Host: u.Host}

	hc := resty.New().
		SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &Client{http: hc, rootURL: root.String()}, nil
}

func (c *Client) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	var out struct {
		Skills []string `json:"skills"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": text}).
		SetResult(&out).
		Post("/skills/extract/")
	if err != nil {
		return nil, fmt.Errorf("extract skills: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	return out.Skills, nil
}

func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (User, error) {
	var out User
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&out).
		Post("/users/")
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	if resp.IsError() {
		return User{}, apiError(resp)
	}
	return out, nil
}

// Health returns the readiness report. A 503 still decodes the report and
// is returned alongside an APIError.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&out).
		Get(c.rootURL + "/health")
	if err != nil {
		return Health{}, fmt.Errorf("health: %w", err)
	}
	if resp.IsError() {
		return out, &APIError{StatusCode: resp.StatusCode(), Detail: out.Status}
	}
	return out, nil
}

func apiError(resp *resty.Response) error {
	return &APIError{StatusCode: resp.StatusCode(), Detail: decodeDetail(resp.Body())}
}

func decodeDetail(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return s
	}

	var issues []struct {
		Loc []interface{} `json:"loc"`
		Msg string        `json:"msg"`
	}
	if err := json.Unmarshal(env.Detail, &issues); err != nil {
		return string(env.Detail)
	}
	parts := make([]string, 0, len(issues))
	for _, is := range issues {
		loc := make([]string, 0, len(is.Loc))
		for _, l := range is.Loc {
			loc = append(loc, fmt.Sprint(l))
		}
		parts = append(parts, strings.Join(loc, ".")+": "+is.Msg)
	}
	return strings.Join(parts, "; ")
}
