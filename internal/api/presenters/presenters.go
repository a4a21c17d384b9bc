package presenters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	payload := fiber.Map{
		"status":  "error",
		"message": message,
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string, len(validationErrors))
		for _, fieldError := range validationErrors {
			fields[fieldName(fieldError)] = fieldMessage(fieldError)
		}
		payload["errors"] = fields
		if status == fiber.StatusBadRequest {
			status = fiber.StatusUnprocessableEntity
		}
	} else if err != nil && status < fiber.StatusInternalServerError {
		// Server-side failures keep their raw error out of the response body.
		payload["error"] = err.Error()
	}

	return c.Status(status).JSON(payload)
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace looks like "CreateRecipeRequest.Ingredients[0].Name";
	// drop the struct prefix and lowercase the rest.
	namespace := fe.StructNamespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		namespace = namespace[idx+1:]
	}
	return strings.ToLower(namespace)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %s rule", fe.Tag())
	}
}
