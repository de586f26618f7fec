package response

import "github.com/gin-gonic/gin"

// Error codes surfaced to the transport layer
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeNoFields   = "NO_FIELDS_TO_UPDATE"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// AppError is the error type returned by the service layer.
// For validation errors, Field names the first offending payload field.
type AppError struct {
	Code    string
	Message string
	Field   string
	Details string
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return e.Code + ": " + e.Field + ": " + e.Message
	}
	return e.Code + ": " + e.Message
}

// NewAppError creates a generic application error
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(message, details string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message, Details: details}
}

// NewNoFieldsError creates an error for a patch that yields no writable change
func NewNoFieldsError(message string) *AppError {
	return &AppError{Code: ErrCodeNoFields, Message: message}
}

// SuccessResponse is the envelope for successful responses
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorBody carries the error payload inside an ErrorResponse
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the envelope for failed responses
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// SendSuccess writes a success envelope
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Data: data})
}

// SendError writes an error envelope
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Success: false, Error: ErrorBody{Code: code, Message: message}})
}

// SendFieldError writes an error envelope naming the offending field
func SendFieldError(c *gin.Context, status int, code, message, field string) {
	c.JSON(status, ErrorResponse{Success: false, Error: ErrorBody{Code: code, Message: message, Field: field}})
}
