package models

// APIError represents a standardized error response format for the API.
// @Description APIError carries an application-specific error code, a human-readable message, and optional details.
type APIError struct {
	Code    string      `json:"code"`              // Application-specific error code (e.g., "NO_DATA", "VALIDATION_ERROR")
	Message string      `json:"message"`           // Human-readable message describing the error
	Details interface{} `json:"details,omitempty"` // Optional field for additional error details
}

// Predefined application-specific error codes
const (
	// Generic Errors
	ErrorCodeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrorCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"

	// Input Validation Errors
	ErrorCodeValidation       = "VALIDATION_ERROR" // General validation failure
	ErrorCodeInvalidYearRange = "INVALID_YEAR_RANGE"

	// Ingestion Errors
	ErrorCodeSourceUnavailable = "SOURCE_UNAVAILABLE" // Upstream API unreachable or non-OK
	ErrorCodeNoData            = "NO_DATA"            // Upstream returned an empty/invalid result body
	ErrorCodeSchemaMismatch    = "SCHEMA_MISMATCH"    // Batch missing required columns

	// Store Errors
	ErrorCodeDuplicateKey = "DUPLICATE_KEY" // Unique index violated; merge invariant broken
)
