package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, h fiber.Handler) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestSuccess_WritesPayloadAsIs(t *testing.T) {
	status, body := call(t, func(c fiber.Ctx) error {
		return Success(c, fiber.StatusOK, fiber.Map{"skills": []string{"Go"}})
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []any{"Go"}, body["skills"])
}

func TestError_Detail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		detail interface{}
		want   any
	}{
		{name: "string", status: fiber.StatusBadRequest, detail: "Email already registered", want: "Email already registered"},
		{name: "default", status: fiber.StatusBadGateway, detail: nil, want: MessageBadGateway},
		{name: "empty string", status: fiber.StatusNotFound, detail: "", want: MessageNotFound},
		{name: "invalid status", status: 42, detail: nil, want: MessageInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, func(c fiber.Ctx) error {
				return Error(c, tt.status, tt.detail)
			})
			if tt.status == 42 {
				assert.Equal(t, fiber.StatusInternalServerError, status)
			} else {
				assert.Equal(t, tt.status, status)
			}
			assert.Equal(t, tt.want, body["detail"])
		})
	}
}

func TestError_IssueList(t *testing.T) {
	status, body := call(t, func(c fiber.Ctx) error {
		return Error(c, fiber.StatusUnprocessableEntity, []ValidationIssue{
			{Loc: []interface{}{"body", "text"}, Msg: "Field required", Type: "missing"},
		})
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	detail, ok := body["detail"].([]any)
	require.True(t, ok)
	require.Len(t, detail, 1)
	issue := detail[0].(map[string]any)
	assert.Equal(t, []any{"body", "text"}, issue["loc"])
	assert.Equal(t, "missing", issue["type"])
}
