package controller

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/historin/historin-backend/internal/app/repository"
)

// parseID reads the :id path param as a positive integer.
func parseID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", idStr)
	}
	return uint(id), nil
}

// parsePagination reads limit/offset query params with the repository
// defaults (100/0, limit capped at 500).
func parsePagination(c *gin.Context) (int, int) {
	limit := repository.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > repository.MaxListLimit {
		limit = repository.MaxListLimit
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}

// bindingErrorMessage turns a gin binding failure into a one-line message
// naming the offending field.
func bindingErrorMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			return fmt.Sprintf("Field %q is required", field)
		case "min", "gte":
			return fmt.Sprintf("Field %q is below the allowed minimum", field)
		case "max", "lte":
			return fmt.Sprintf("Field %q is above the allowed maximum", field)
		case "oneof":
			return fmt.Sprintf("Field %q has an unsupported value", field)
		default:
			return fmt.Sprintf("Field %q is invalid", field)
		}
	}
	return "Invalid request body"
}
