package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed store error: a stable code plus a message safe to
// show to the caller.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError classifies an error coming out of the store layer. Sensitive
// driver detail is dropped; the caller gets the taxonomy kind.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Internal server error"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: context + " not found"}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: context + " already exists"}
	}

	errStr := strings.ToLower(err.Error())

	// Postgres unique violation (23505) for drivers without error translation.
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: context + " already exists"}
	}

	// Foreign key violation (23503): either a missing reference or a delete
	// blocked by dependents.
	if strings.Contains(errStr, "foreign key constraint") {
		if strings.Contains(errStr, "still referenced") {
			return ErrorInfo{Code: ResourceConflict, Message: context + " is referenced by other records"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "Referenced record not found"}
	}

	// Not-null violation (23502).
	if strings.Contains(errStr, "null value") && strings.Contains(errStr, "not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "Database is unreachable, try again later"}
	}

	return ErrorInfo{Code: InternalDatabaseError, Message: "Database error while handling " + context}
}
