// Package errors translates domain and validation failures into the JSON
// bodies the API returns. Internal details are logged, never exposed.
package errors

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/fidalli/crm-backend/pkg/models"
)

// ValidationFailed converts a validator error into a field-scoped 400
// response. Non-validator errors fall back to a generic body.
func ValidationFailed(c echo.Context, err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldName(fe)] = fieldMessage(fe)
		}
		return FieldErrors(c, fields)
	}

	log.Printf("[VALIDATION ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	})
}

// FieldErrors returns a field-scoped 400 response from an explicit
// field-to-message map, for rules the tag language cannot express.
func FieldErrors(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, models.ValidationErrorResponse{
		Error:  "validation_failed",
		Fields: fields,
	})
}

// BadRequest returns a 400 with a caller-safe message.
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// InternalError returns a generic internal server error
func InternalError(c echo.Context, err error) error {
	log.Printf("[INTERNAL ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}

// UnauthorizedError returns a generic unauthorized error
func UnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: "You are not authorized to access this resource.",
	})
}

// ForbiddenError returns a generic forbidden error
func ForbiddenError(c echo.Context) error {
	return c.JSON(http.StatusForbidden, models.ErrorResponse{
		Error:   "forbidden",
		Message: "You do not have permission to access this resource.",
	})
}

// NotFoundError returns a generic not found error
func NotFoundError(c echo.Context) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: "The requested resource was not found.",
	})
}

// ConflictError returns a conflict error with a caller-safe message
func ConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, models.ErrorResponse{
		Error:   "conflict",
		Message: message,
	})
}

// FromDomain maps a domain error onto the matching HTTP response.
func FromDomain(c echo.Context, err error) error {
	switch {
	case domain.IsNotFound(err):
		return NotFoundError(c)
	case domain.IsValidation(err):
		de := err.(*domain.DomainError)
		return BadRequest(c, de.Message)
	case domain.IsConflict(err):
		de := err.(*domain.DomainError)
		return ConflictError(c, de.Message)
	case domain.IsUnauthorized(err):
		return UnauthorizedError(c)
	case domain.IsForbidden(err):
		return ForbiddenError(c)
	default:
		return InternalError(c, err)
	}
}

// fieldName lowercases the first rune of the struct field so responses
// match the JSON casing of the request body.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be " + fe.Param() + " or greater"
	case "lte":
		return "must be " + fe.Param() + " or less"
	default:
		return "is invalid"
	}
}
