package handlers

//go:generate mockgen -source=employee.go -destination=mock_employee.go -package=handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-employee-service/internal/apperr"
	"github.com/sbilibin2017/gw-employee-service/internal/middlewares"
	"github.com/sbilibin2017/gw-employee-service/internal/models"
)

// EmployeeLister lists all employees.
type EmployeeLister interface {
	List(ctx context.Context) ([]models.EmployeeDB, error)
}

// EmployeeSearcher filters employees.
type EmployeeSearcher interface {
	Search(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeDB, error)
}

// EmployeeCreator creates employees.
type EmployeeCreator interface {
	Create(ctx context.Context, actor string, e *models.EmployeeDB) (*models.EmployeeDB, error)
}

// EmployeeGetter fetches a single employee.
type EmployeeGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*models.EmployeeDB, error)
}

// EmployeeUpdater applies partial updates.
type EmployeeUpdater interface {
	Update(ctx context.Context, actor string, id uuid.UUID, upd models.EmployeeUpdate) (*models.EmployeeDB, error)
}

// EmployeeDeleter removes employees.
type EmployeeDeleter interface {
	Delete(ctx context.Context, actor string, id uuid.UUID) error
}

const employeeNotFound = "Employee not found"

var updatableFields = map[string]struct{}{
	"first_name":      {},
	"last_name":       {},
	"email":           {},
	"position":        {},
	"salary":          {},
	"date_of_joining": {},
	"department":      {},
}

// NewListEmployeesHandler returns an HTTP handler listing every employee.
// @Summary List employees
// @Description Return all employees, newest first
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.EmployeeResponse "Employees"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /emp/employees [get]
func NewListEmployeesHandler(svc EmployeeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employees, err := svc.List(r.Context())
		if err != nil {
			writeInternalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toEmployeeResponses(r, employees))
	}
}

// NewSearchEmployeesHandler returns an HTTP handler searching employees by department and/or position.
// @Summary Search employees
// @Description Case-insensitive substring match. Supplied filters are combined with AND.
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department"
// @Param position query string false "Position"
// @Success 200 {array} models.EmployeeResponse "Matching employees"
// @Failure 400 {object} models.ErrorResponse "Provide department or position to search"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /emp/employees/search [get]
func NewSearchEmployeesHandler(svc EmployeeSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := models.EmployeeFilter{
			Department: strings.TrimSpace(r.URL.Query().Get("department")),
			Position:   strings.TrimSpace(r.URL.Query().Get("position")),
		}
		if filter.Department == "" && filter.Position == "" {
			writeMessage(w, http.StatusBadRequest, "Provide department or position to search")
			return
		}

		employees, err := svc.Search(r.Context(), filter)
		if err != nil {
			writeInternalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toEmployeeResponses(r, employees))
	}
}

// NewCreateEmployeeHandler returns an HTTP handler creating an employee.
// @Summary Create employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee body models.EmployeeRequest true "Employee"
// @Success 201 {object} models.EmployeeCreatedResponse "Employee created"
// @Failure 400 {object} models.ValidationErrorResponse "Invalid input"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 409 {object} models.ErrorResponse "Employee email already exists"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /emp/employees [post]
func NewCreateEmployeeHandler(svc EmployeeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.EmployeeRequest
		if err := decodeJSON(r.Body, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		trimStrings(&req.FirstName, &req.LastName, &req.Email, &req.Position, &req.Department)

		if err := validateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}
		joined, err := parseDate("date_of_joining", req.DateOfJoining)
		if err != nil {
			writeValidationError(w, err)
			return
		}

		e := &models.EmployeeDB{
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Email:           req.Email,
			Position:        req.Position,
			Salary:          *req.Salary,
			DateOfJoining:   joined,
			Department:      req.Department,
			ProfileImageURL: req.ProfileImageURL,
		}

		created, err := svc.Create(r.Context(), actorFromRequest(r), e)
		if err != nil {
			if errors.Is(err, apperr.ErrConflict) {
				writeMessage(w, http.StatusConflict, "Employee email already exists")
				return
			}
			writeInternalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, models.EmployeeCreatedResponse{
			Message:    "Employee created successfully.",
			EmployeeID: created.EmployeeID.String(),
		})
	}
}

// NewGetEmployeeHandler returns an HTTP handler fetching one employee.
// @Summary Get employee
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param eid path string true "Employee ID"
// @Success 200 {object} models.EmployeeResponse "Employee"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Employee not found"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /emp/employees/{eid} [get]
func NewGetEmployeeHandler(svc EmployeeGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseEmployeeID(chi.URLParam(r, "eid"))
		if !ok {
			writeMessage(w, http.StatusNotFound, employeeNotFound)
			return
		}

		employee, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				writeMessage(w, http.StatusNotFound, employeeNotFound)
				return
			}
			writeInternalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toEmployeeResponse(r, employee))
	}
}

// NewUpdateEmployeeHandler returns an HTTP handler applying a partial update.
// @Summary Update employee
// @Description Only the supplied fields change. Unknown fields are rejected.
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eid path string true "Employee ID"
// @Param employee body models.EmployeeUpdateRequest true "Fields to change"
// @Success 200 {object} models.EmployeeUpdatedResponse "Employee updated"
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Employee not found"
// @Failure 409 {object} models.ErrorResponse "Employee email already exists"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /emp/employees/{eid} [put]
func NewUpdateEmployeeHandler(svc EmployeeUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseEmployeeID(chi.URLParam(r, "eid"))
		if !ok {
			writeMessage(w, http.StatusNotFound, employeeNotFound)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var raw map[string]json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if len(raw) == 0 {
			writeMessage(w, http.StatusBadRequest, "Provide at least one field to update")
			return
		}
		if invalid := unknownFields(raw); len(invalid) > 0 {
			writeMessage(w, http.StatusBadRequest, "Invalid fields: "+strings.Join(invalid, ", "))
			return
		}

		var req models.EmployeeUpdateRequest
		if err := decodeJSON(bytes.NewReader(body), &req); err != nil {
			writeValidationError(w, err)
			return
		}
		trimStrings(req.FirstName, req.LastName, req.Email, req.Position, req.Department, req.DateOfJoining)

		if err := validateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		upd := models.EmployeeUpdate{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Position:   req.Position,
			Salary:     req.Salary,
			Department: req.Department,
		}
		if req.DateOfJoining != nil {
			joined, err := parseDate("date_of_joining", *req.DateOfJoining)
			if err != nil {
				writeValidationError(w, err)
				return
			}
			upd.DateOfJoining = &joined
		}
		if upd.IsEmpty() {
			writeMessage(w, http.StatusBadRequest, "Provide at least one field to update")
			return
		}

		updated, err := svc.Update(r.Context(), actorFromRequest(r), id, upd)
		if err != nil {
			switch {
			case errors.Is(err, apperr.ErrNotFound):
				writeMessage(w, http.StatusNotFound, employeeNotFound)
			case errors.Is(err, apperr.ErrConflict):
				writeMessage(w, http.StatusConflict, "Employee email already exists")
			default:
				writeInternalError(w, r, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, models.EmployeeUpdatedResponse{
			Message:  "Employee details updated successfully.",
			Employee: toEmployeeResponse(r, updated),
		})
	}
}

// NewDeleteEmployeeHandler returns an HTTP handler deleting the employee named by the eid query parameter.
// @Summary Delete employee
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param eid query string true "Employee ID"
// @Success 200 {object} models.MessageResponse "Employee deleted"
// @Failure 400 {object} models.ErrorResponse "eid query parameter is required"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Employee not found"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /emp/employees [delete]
func NewDeleteEmployeeHandler(svc EmployeeDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eid := strings.TrimSpace(r.URL.Query().Get("eid"))
		if eid == "" {
			writeMessage(w, http.StatusBadRequest, "eid query parameter is required")
			return
		}
		id, ok := parseEmployeeID(eid)
		if !ok {
			writeMessage(w, http.StatusNotFound, employeeNotFound)
			return
		}

		if err := svc.Delete(r.Context(), actorFromRequest(r), id); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				writeMessage(w, http.StatusNotFound, employeeNotFound)
				return
			}
			writeInternalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Employee deleted successfully."})
	}
}

// parseEmployeeID reports false for anything that is not a UUID; callers answer 404.
func parseEmployeeID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func actorFromRequest(r *http.Request) string {
	id, _ := middlewares.IdentityFromContext(r.Context())
	return id.Username
}

func unknownFields(raw map[string]json.RawMessage) []string {
	var invalid []string
	for k := range raw {
		if _, ok := updatableFields[k]; !ok {
			invalid = append(invalid, k)
		}
	}
	sort.Strings(invalid)
	return invalid
}

func trimStrings(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func toEmployeeResponses(r *http.Request, employees []models.EmployeeDB) []models.EmployeeResponse {
	resp := make([]models.EmployeeResponse, 0, len(employees))
	for i := range employees {
		resp = append(resp, toEmployeeResponse(r, &employees[i]))
	}
	return resp
}
