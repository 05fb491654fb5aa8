package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", &ValidationError{Fields: map[string]string{"chat": "is required"}}, 400, "Validation failed"},
		{"fiber error", fiber.NewError(fiber.StatusUpgradeRequired, "Upgrade Required"), 426, "Upgrade Required"},
		{"not found", fmt.Errorf("product %w", ErrNotFound), 404, "product not found"},
		{"bad request", fmt.Errorf("%w: invalid id", ErrBadRequest), 400, "bad request: invalid id"},
		{"unauthorized", ErrUnauthorized, 401, "unauthorized"},
		{"internal", errors.New("pq: connection refused"), 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/", func(*fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestErrorHandlerMiddleware_FieldErrors(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/", func(*fiber.Ctx) error {
		return &ValidationError{Fields: map[string]string{"chat": "is required"}}
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{"chat": "is required"}, body.Errors)
}
