package handlers

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"recipeshare/domain"
	"recipeshare/internal/utils/storage"
)

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		domain.ErrRecipeNotFound:            fiber.StatusNotFound,
		domain.ErrCommentNotFound:           fiber.StatusNotFound,
		domain.ErrUnauthorizedRecipeAccess:  fiber.StatusForbidden,
		domain.ErrUnauthorizedCommentAccess: fiber.StatusForbidden,
		domain.ErrGoogleAlreadyLinked:       fiber.StatusConflict,
		domain.ErrCredentialsInvalid:        fiber.StatusUnauthorized,
		domain.ErrTokenRevoked:              fiber.StatusUnauthorized,
		domain.ErrEmailAlreadyExists:        fiber.StatusUnprocessableEntity,
		domain.ErrParentCommentMismatch:     fiber.StatusUnprocessableEntity,
		storage.ErrContentTypeNotAllowed:    fiber.StatusUnprocessableEntity,
	}

	for err, expected := range cases {
		assert.Equal(t, expected, statusFor(err), "error: %v", err)
	}
}

func TestStatusFor_UnknownErrorIsServerFailure(t *testing.T) {
	assert.Equal(t, fiber.StatusInternalServerError, statusFor(errors.New("pq: connection refused")))
}
