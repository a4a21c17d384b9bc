package handlers

import (
	"errors"

	"recipeshare/domain"
	"recipeshare/internal/utils/storage"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP status codes. Validation errors are
// handled separately by the presenter; anything unrecognized is treated as a
// storage or upstream failure and reported as a generic 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrStepNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrParentCommentNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess),
		errors.Is(err, domain.ErrUnauthorizedCommentAccess):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrGoogleAlreadyLinked):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrCredentialsInvalid),
		errors.Is(err, domain.ErrGoogleExchangeFailed),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrPhoneAlreadyExists),
		errors.Is(err, domain.ErrContactRequired),
		errors.Is(err, domain.ErrGoogleInfoIncomplete),
		errors.Is(err, domain.ErrParentCommentMismatch),
		errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, storage.ErrContentTypeNotAllowed):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
