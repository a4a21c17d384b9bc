package presenters

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"recipeshare/internal/utils"
)

func performRequest(t *testing.T, handler fiber.Handler) (int, map[string]any) {
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	assert.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorResponse_ClientErrorEchoesMessage(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusNotFound, "failed to get recipe detail", errors.New("recipe not found"))
	})

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "recipe not found", body["error"])
}

func TestErrorResponse_ServerErrorHidesRawError(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusInternalServerError, "failed to create recipe", errors.New("pq: duplicate key value violates unique constraint"))
	})

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "failed to create recipe", body["message"])
	assert.NotContains(t, body, "error")
}

func TestErrorResponse_ValidationErrorsBecomeFieldMap(t *testing.T) {
	utils.InitValidator()
	type registerRequest struct {
		Nickname string `validate:"required"`
		Email    string `validate:"omitempty,email"`
	}

	validationErr := utils.Validate.Struct(registerRequest{Email: "not-an-email"})
	assert.Error(t, validationErr)

	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusBadRequest, "failed to register user", validationErr)
	})

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	fields, ok := body["errors"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "this field is required", fields["nickname"])
	assert.Equal(t, "must be a valid email address", fields["email"])
}
