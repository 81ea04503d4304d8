package errors

// Error kind constants returned in the "code" field of error responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these to messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized   = "AUTH_UNAUTHORIZED"    // missing or wrong admin token
	AuthSessionExpired = "AUTH_SESSION_EXPIRED" // admin session past its TTL
	AuthSessionRevoked = "AUTH_SESSION_REVOKED" // admin session logged out

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed body or field
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // non-numeric id
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing required field
	ValidationEmptyPatch   = "VALIDATION_EMPTY_PATCH"   // update with no valid fields

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // row absent for id
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // unique constraint hit
	ResourceConflict      = "RESOURCE_CONFLICT"       // referenced by other rows

	// ==================== Ads (AD_) ====================
	AdNoneAvailable = "AD_NONE_AVAILABLE" // no eligible ad for the request

	// ==================== QR hunt (QR_) ====================
	QrInvalidCode   = "QR_INVALID_CODE"   // unknown or inactive code
	QrDuplicateScan = "QR_DUPLICATE_SCAN" // user already scanned this code

	// ==================== Quiz (QUIZ_) ====================
	QuizInvalidCSV    = "QUIZ_INVALID_CSV"    // bad header or unreadable file
	QuizInvalidAnswer = "QUIZ_INVALID_ANSWER" // answer outside 1..4

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // non-image content type
	UploadFailed          = "UPLOAD_FAILED"            // presign failure

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unclassified failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // store failure
)
