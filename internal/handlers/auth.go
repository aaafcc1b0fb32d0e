package handlers

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-employee-service/internal/apperr"
	"github.com/sbilibin2017/gw-employee-service/internal/models"
)

// Signuper defines the interface that the signup service must implement.
type Signuper interface {
	Signup(ctx context.Context, username, email, password string) (uuid.UUID, error)
}

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, username, password string) (string, error)
}

// NewSignupHandler returns an HTTP handler for user signup.
// @Summary User signup
// @Description Create a user. Username and email must both be unused.
// @Tags user
// @Accept json
// @Produce json
// @Param signupRequest body models.SignupRequest true "Signup Request"
// @Success 201 {object} models.SignupResponse "User created"
// @Failure 400 {object} models.ValidationErrorResponse "Invalid input"
// @Failure 409 {object} models.ErrorResponse "User already exists"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /user/signup [post]
func NewSignupHandler(svc Signuper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SignupRequest
		if err := decodeJSON(r.Body, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)

		if err := validateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		userID, err := svc.Signup(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperr.ErrConflict):
				writeMessage(w, http.StatusConflict, "User already exists")
			case errors.Is(err, apperr.ErrValidation):
				writeValidationError(w, err)
			default:
				writeInternalError(w, r, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, models.SignupResponse{
			Message: "User created successfully.",
			UserID:  userID.String(),
		})
	}
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate by email or username and return a JWT. Email wins when both are given.
// @Tags user
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse "JWT token returned"
// @Header 200 {string} Authorization "Bearer <token>"
// @Failure 400 {object} models.ValidationErrorResponse "Invalid input"
// @Failure 401 {object} models.ErrorResponse "Invalid Username and password"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /user/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := decodeJSON(r.Body, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		req.Username = strings.TrimSpace(req.Username)

		if err := validateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}
		if req.Email == "" && req.Username == "" {
			writeValidationError(w, apperr.NewValidationError("username", "email or username is required"))
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Username, req.Password)
		if err != nil {
			if errors.Is(err, apperr.ErrInvalidCredentials) {
				writeMessage(w, http.StatusUnauthorized, "Invalid Username and password")
				return
			}
			writeInternalError(w, r, err)
			return
		}

		w.Header().Set("Authorization", "Bearer "+token)
		writeJSON(w, http.StatusOK, models.LoginResponse{
			Message:  "Login successful.",
			JWTToken: token,
		})
	}
}
