package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// Processing errors
	ErrCodeUnprocessable = "unprocessable_entity"

	// Server errors
	ErrCodeInternalError = "internal_error"
)
