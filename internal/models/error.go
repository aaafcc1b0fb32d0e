package models

import "github.com/sbilibin2017/gw-employee-service/internal/apperr"

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// example: false
	Status bool `json:"status"`
	// example: Employee not found
	Message string `json:"message"`
}

// ValidationErrorResponse lists rejected fields
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	// example: false
	Status bool                `json:"status"`
	Errors []apperr.FieldError `json:"errors"`
}

// MessageResponse is a bare confirmation
// swagger:model MessageResponse
type MessageResponse struct {
	// example: Employee deleted successfully.
	Message string `json:"message"`
}

// HealthResponse is returned by the health probe
// swagger:model HealthResponse
type HealthResponse struct {
	// example: true
	OK bool `json:"ok"`
}
