package dto

import "net/http"

// HTTP-layer error codes for failures that never reach the domain
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps domain and transport error codes to HTTP
// status codes. Unknown codes fall back to 500.
var ErrorCodeHTTPStatus = map[string]int{
	// Input problems -> 400
	"VALIDATION_ERROR":     http.StatusBadRequest,
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_QUANTITY":     http.StatusBadRequest,
	"INVALID_WEIGHT":       http.StatusBadRequest,
	"INVALID_PRICE":        http.StatusBadRequest,
	"INVALID_AMOUNT":       http.StatusBadRequest,
	"INVALID_PRODUCT_TYPE": http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,

	// Auth -> 401
	ErrCodeUnauthorized: http.StatusUnauthorized,

	// Lookups -> 404
	"NOT_FOUND":         http.StatusNotFound,
	"ADDRESS_NOT_FOUND": http.StatusNotFound,

	// Conflicts -> 409
	"ALREADY_EXISTS": http.StatusConflict,

	// Business rules -> 422
	"INVALID_STATE":   http.StatusUnprocessableEntity,
	"NO_ITEMS":        http.StatusUnprocessableEntity,
	"UNKNOWN_STAFF":   http.StatusUnprocessableEntity,
	"UNKNOWN_PRODUCT": http.StatusUnprocessableEntity,

	// Store failures -> 500
	"PERSISTENCE_ERROR": http.StatusInternalServerError,
	"PARTIAL_WRITE":     http.StatusInternalServerError,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting
// to 500 for codes not in the map
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
