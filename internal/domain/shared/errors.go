package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound        = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists   = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput    = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState    = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnauthorized    = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrPersistence     = NewDomainError("PERSISTENCE_ERROR", "Store operation failed")
	ErrPartialWrite    = NewDomainError("PARTIAL_WRITE", "A later step failed after an earlier write succeeded")
	ErrUnknownStaff    = NewDomainError("UNKNOWN_STAFF", "Staff member is not on the roster")
	ErrUnknownProduct  = NewDomainError("UNKNOWN_PRODUCT", "Product type is not in the catalog")
	ErrAddressNotFound = NewDomainError("ADDRESS_NOT_FOUND", "Address could not be located")
)
