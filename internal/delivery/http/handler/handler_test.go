package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aspiro/internal/delivery/http/middleware"
	"aspiro/internal/domain/skill"
	"aspiro/internal/domain/user"
	useruc "aspiro/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSkillUsecase struct {
	skills []string
	err    error
	got    []string
}

func (f *fakeSkillUsecase) ExtractSkills(_ context.Context, text string) ([]string, error) {
	f.got = append(f.got, text)
	return f.skills, f.err
}

type fakeUserUsecase struct {
	users map[string]user.User
	err   error
}

func (f *fakeUserUsecase) CreateUser(_ context.Context, in useruc.CreateInput) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	if f.users == nil {
		f.users = map[string]user.User{}
	}
	if _, ok := f.users[in.Email]; ok {
		return user.User{}, user.ErrDuplicateEmail
	}
	u := user.User{ID: int64(len(f.users) + 1), Email: in.Email, FullName: in.FullName, IsActive: true}
	f.users[in.Email] = u
	return u, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func newTestApp(register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	register(app.Group("/api/v1"))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func firstIssue(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	detail, ok := body["detail"].([]any)
	require.True(t, ok, "detail should be a list: %v", body)
	require.NotEmpty(t, detail)
	return detail[0].(map[string]any)
}

func TestSkillHandler_Extract(t *testing.T) {
	uc := &fakeSkillUsecase{skills: []string{"Project Management"}}
	app := newTestApp(NewSkillHandler(uc, nil).RegisterRoutes)

	status, body := do(t, app, http.MethodPost, "/api/v1/skills/extract/", `{"text":"I led Project Management at Acme."}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"Project Management"}, body["skills"])
	assert.Equal(t, []string{"I led Project Management at Acme."}, uc.got)
}

func TestSkillHandler_Extract_NoTrailingSlash(t *testing.T) {
	uc := &fakeSkillUsecase{skills: []string{}}
	app := newTestApp(NewSkillHandler(uc, nil).RegisterRoutes)

	status, body := do(t, app, http.MethodPost, "/api/v1/skills/extract", `{"text":""}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["skills"])
}

func TestSkillHandler_Extract_Validation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantLoc  []any
		wantType string
	}{
		{name: "missing text", body: `{}`, wantLoc: []any{"body", "text"}, wantType: "missing"},
		{name: "null text", body: `{"text":null}`, wantLoc: []any{"body", "text"}, wantType: "missing"},
		{name: "wrong type", body: `{"text":42}`, wantLoc: []any{"body", "text"}, wantType: "string_type"},
		{name: "empty body", body: ``, wantLoc: []any{"body"}, wantType: "missing"},
		{name: "not an object", body: `["a"]`, wantLoc: []any{"body"}, wantType: "model_attributes_type"},
		{name: "malformed json", body: `{"text":`, wantType: "json_invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeSkillUsecase{}
			app := newTestApp(NewSkillHandler(uc, nil).RegisterRoutes)

			status, body := do(t, app, http.MethodPost, "/api/v1/skills/extract/", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, status)

			issue := firstIssue(t, body)
			assert.Equal(t, tt.wantType, issue["type"])
			if tt.wantLoc != nil {
				assert.Equal(t, tt.wantLoc, issue["loc"])
			}
			assert.Empty(t, uc.got, "usecase must not be called")
		})
	}
}

func TestSkillHandler_Extract_TaggerErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "limit exceeded", err: fmt.Errorf("extract skills: %w", skill.ErrTaggerLimitExceeded), status: http.StatusInternalServerError},
		{name: "tagger failure", err: fmt.Errorf("extract skills: %w", skill.ErrTaggerFailure), status: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(NewSkillHandler(&fakeSkillUsecase{err: tt.err}, nil).RegisterRoutes)

			status, body := do(t, app, http.MethodPost, "/api/v1/skills/extract/", `{"text":"x"}`)
			assert.Equal(t, tt.status, status)
			detail, ok := body["detail"].(string)
			require.True(t, ok)
			assert.NotEmpty(t, detail)
			assert.NotContains(t, detail, "boom")
		})
	}
}

func TestUserHandler_Create(t *testing.T) {
	app := newTestApp(NewUserHandler(&fakeUserUsecase{}, nil).RegisterRoutes)
	payload := `{"email":"ada@example.com","full_name":"Ada Lovelace","password":"secret"}`

	status, body := do(t, app, http.MethodPost, "/api/v1/users/", payload)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "ada@example.com", body["email"])
	assert.Equal(t, "Ada Lovelace", body["full_name"])
	assert.Equal(t, true, body["is_active"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "hashed_password")

	status, body = do(t, app, http.MethodPost, "/api/v1/users/", payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, MessageEmailRegistered, body["detail"])
}

func TestUserHandler_Create_NullFullName(t *testing.T) {
	app := newTestApp(NewUserHandler(&fakeUserUsecase{}, nil).RegisterRoutes)

	status, body := do(t, app, http.MethodPost, "/api/v1/users", `{"email":"a@b.co","full_name":null,"password":"pw"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "full_name")
	assert.Nil(t, body["full_name"])
}

func TestUserHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantLoc  []any
		wantType string
	}{
		{name: "missing email", body: `{"password":"pw"}`, wantLoc: []any{"body", "email"}, wantType: "missing"},
		{name: "invalid email", body: `{"email":"not-an-email","password":"pw"}`, wantLoc: []any{"body", "email"}, wantType: "value_error"},
		{name: "missing password", body: `{"email":"a@b.co"}`, wantLoc: []any{"body", "password"}, wantType: "missing"},
		{name: "wrong full_name type", body: `{"email":"a@b.co","full_name":1,"password":"pw"}`, wantLoc: []any{"body", "full_name"}, wantType: "string_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUserUsecase{}
			app := newTestApp(NewUserHandler(uc, nil).RegisterRoutes)

			status, body := do(t, app, http.MethodPost, "/api/v1/users/", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, status)
			issue := firstIssue(t, body)
			assert.Equal(t, tt.wantLoc, issue["loc"])
			assert.Equal(t, tt.wantType, issue["type"])
			assert.Empty(t, uc.users)
		})
	}
}

func TestUserHandler_Create_EmptyPassword(t *testing.T) {
	uc := &fakeUserUsecase{}
	app := newTestApp(NewUserHandler(uc, nil).RegisterRoutes)

	status, body := do(t, app, http.MethodPost, "/api/v1/users/", `{"email":"a@b.co","password":""}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@b.co", body["email"])
	assert.Len(t, uc.users, 1)
}

func TestUserHandler_Create_InvalidInputFromUsecase(t *testing.T) {
	app := newTestApp(NewUserHandler(&fakeUserUsecase{err: useruc.ErrInvalidInput}, nil).RegisterRoutes)

	status, body := do(t, app, http.MethodPost, "/api/v1/users/", `{"email":"a@b.co","password":"pw"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "value_error", firstIssue(t, body)["type"])
}

func TestHealthHandler(t *testing.T) {
	app := fiber.New()
	NewHealthHandler("ASPIRO AI", map[string]Pinger{"database": fakePinger{}}).RegisterRoutes(app)

	status, body := do(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Welcome to ASPIRO AI Backend", body["message"])

	status, body = do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]any{"database": "ok"}, body["checks"])
}

func TestHealthHandler_Unavailable(t *testing.T) {
	app := fiber.New()
	NewHealthHandler("ASPIRO AI", map[string]Pinger{
		"database": fakePinger{},
		"cache":    fakePinger{err: errors.New("connection refused")},
	}).RegisterRoutes(app)

	status, body := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unavailable", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "ok", checks["database"])
	assert.Equal(t, "connection refused", checks["cache"])
}
