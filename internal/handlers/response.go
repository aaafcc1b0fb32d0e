package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-employee-service/internal/apperr"
	"github.com/sbilibin2017/gw-employee-service/internal/logger"
	"github.com/sbilibin2017/gw-employee-service/internal/models"
)

const internalServerError = "Internal Server Error"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Status: false, Message: message})
}

// writeValidationError answers 400 with the per-field list when err carries one.
func writeValidationError(w http.ResponseWriter, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, models.ValidationErrorResponse{Status: false, Errors: ve.Fields})
		return
	}
	writeMessage(w, http.StatusBadRequest, "Invalid request body")
}

// writeInternalError logs err and answers with a generic 500. Details never reach the client.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Log.Errorw("internal server error", "method", r.Method, "path", r.URL.Path, "err", err)
	writeMessage(w, http.StatusInternalServerError, internalServerError)
}

// absoluteURL resolves a stored relative location against the request host.
// Absolute URLs pass through unchanged.
func absoluteURL(r *http.Request, location string) string {
	if location == "" || strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return location
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		scheme = proto
	}
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	return scheme + "://" + r.Host + location
}

func toEmployeeResponse(r *http.Request, e *models.EmployeeDB) models.EmployeeResponse {
	resp := models.EmployeeResponse{
		EmployeeID:    e.EmployeeID.String(),
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Position:      e.Position,
		Salary:        e.Salary,
		DateOfJoining: e.DateOfJoining,
		Department:    e.Department,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.ProfileImageURL != nil && *e.ProfileImageURL != "" {
		abs := absoluteURL(r, *e.ProfileImageURL)
		resp.ProfileImageURL = &abs
	}
	return resp
}
