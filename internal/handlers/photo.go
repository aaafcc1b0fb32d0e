package handlers

//go:generate mockgen -source=photo.go -destination=mock_photo.go -package=handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-employee-service/internal/apperr"
	"github.com/sbilibin2017/gw-employee-service/internal/logger"
	"github.com/sbilibin2017/gw-employee-service/internal/models"
)

// DefaultMaxPhotoBytes is the upload limit used when none is configured.
const DefaultMaxPhotoBytes int64 = 10 << 20

// multipartOverhead leaves room for boundaries and part headers around the file itself.
const multipartOverhead int64 = 1 << 20

// PhotoUploader stores an employee photo and returns its location.
type PhotoUploader interface {
	UploadPhoto(ctx context.Context, actor string, id uuid.UUID, originalName string, body io.Reader, size int64, contentType string) (string, error)
}

// NewUploadPhotoHandler returns an HTTP handler accepting a multipart "photo" field.
// @Summary Upload employee photo
// @Tags employees
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param eid path string true "Employee ID"
// @Param photo formData file true "Profile photo"
// @Success 200 {object} models.PhotoUploadResponse "Photo stored"
// @Failure 400 {object} models.ErrorResponse "No file uploaded"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Employee not found"
// @Failure 413 {object} models.ErrorResponse "File too large (max 10MB)"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /emp/employees/{eid}/photo [post]
func NewUploadPhotoHandler(svc PhotoUploader, maxBytes int64) http.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxPhotoBytes
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseEmployeeID(chi.URLParam(r, "eid"))
		if !ok {
			writeMessage(w, http.StatusNotFound, employeeNotFound)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
		file, header, err := r.FormFile("photo")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeMessage(w, http.StatusRequestEntityTooLarge, "File too large (max 10MB)")
				return
			}
			logger.Log.Infow("photo upload rejected", "employee_id", id, "err", err)
			writeMessage(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer file.Close()
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}

		if header.Size > maxBytes {
			writeMessage(w, http.StatusRequestEntityTooLarge, "File too large (max 10MB)")
			return
		}

		location, err := svc.UploadPhoto(r.Context(), actorFromRequest(r), id, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				writeMessage(w, http.StatusNotFound, employeeNotFound)
				return
			}
			writeInternalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.PhotoUploadResponse{
			Message:         "Profile image uploaded successfully.",
			ProfileImageURL: absoluteURL(r, location),
		})
	}
}
