package models

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeDB represents a row of the employees table.
type EmployeeDB struct {
	EmployeeID      uuid.UUID `json:"employee_id" db:"employee_id"`
	FirstName       string    `json:"first_name" db:"first_name"`
	LastName        string    `json:"last_name" db:"last_name"`
	Email           string    `json:"email" db:"email"`
	Position        string    `json:"position" db:"position"`
	Salary          float64   `json:"salary" db:"salary"`
	DateOfJoining   time.Time `json:"date_of_joining" db:"date_of_joining"`
	Department      string    `json:"department" db:"department"`
	ProfileImageURL *string   `json:"profile_image_url" db:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// EmployeeFilter narrows a search. Empty fields are ignored.
type EmployeeFilter struct {
	Department string
	Position   string
}

// EmployeeUpdate is a partial update; nil fields are left unchanged.
type EmployeeUpdate struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Position      *string
	Salary        *float64
	DateOfJoining *time.Time
	Department    *string
}

// IsEmpty reports whether no field is set.
func (u EmployeeUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.Position == nil && u.Salary == nil && u.DateOfJoining == nil &&
		u.Department == nil
}

// Apply copies the set fields onto e.
func (u EmployeeUpdate) Apply(e *EmployeeDB) {
	if u.FirstName != nil {
		e.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		e.LastName = *u.LastName
	}
	if u.Email != nil {
		e.Email = *u.Email
	}
	if u.Position != nil {
		e.Position = *u.Position
	}
	if u.Salary != nil {
		e.Salary = *u.Salary
	}
	if u.DateOfJoining != nil {
		e.DateOfJoining = *u.DateOfJoining
	}
	if u.Department != nil {
		e.Department = *u.Department
	}
}

// EmployeeRequest represents the JSON body for creating an employee
// swagger:model EmployeeRequest
type EmployeeRequest struct {
	// required: true
	// example: Jane
	FirstName string `json:"first_name" validate:"required"`
	// required: true
	// example: Doe
	LastName string `json:"last_name" validate:"required"`
	// required: true
	// example: jane.doe@example.com
	Email string `json:"email" validate:"required,email"`
	// required: true
	// example: Software Engineer
	Position string `json:"position" validate:"required"`
	// required: true
	// example: 85000
	Salary *float64 `json:"salary" validate:"required,gte=0"`
	// ISO-8601 date
	// required: true
	// example: 2024-03-01
	DateOfJoining string `json:"date_of_joining" validate:"required"`
	// required: true
	// example: Engineering
	Department string `json:"department" validate:"required"`
	// example: https://cdn.example.com/jane.png
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// EmployeeUpdateRequest represents the JSON body for updating an employee. Only set fields change.
// The photo is changed through the upload endpoint only.
// swagger:model EmployeeUpdateRequest
type EmployeeUpdateRequest struct {
	FirstName     *string  `json:"first_name" validate:"omitnil,min=1"`
	LastName      *string  `json:"last_name" validate:"omitnil,min=1"`
	Email         *string  `json:"email" validate:"omitnil,email"`
	Position      *string  `json:"position" validate:"omitnil,min=1"`
	Salary        *float64 `json:"salary" validate:"omitnil,gte=0"`
	DateOfJoining *string  `json:"date_of_joining" validate:"omitnil,min=1"`
	Department    *string  `json:"department" validate:"omitnil,min=1"`
}

// EmployeeResponse is the public view of an employee
// swagger:model EmployeeResponse
type EmployeeResponse struct {
	// example: 3fa85f64-5717-4562-b3fc-2c963f66afa6
	EmployeeID string `json:"employee_id"`
	// example: Jane
	FirstName string `json:"first_name"`
	// example: Doe
	LastName string `json:"last_name"`
	// example: jane.doe@example.com
	Email string `json:"email"`
	// example: Software Engineer
	Position string `json:"position"`
	// example: 85000
	Salary float64 `json:"salary"`
	// example: 2024-03-01T00:00:00Z
	DateOfJoining time.Time `json:"date_of_joining"`
	// example: Engineering
	Department string `json:"department"`
	// Absolute URL or null
	// example: http://localhost:8092/gbc-service/comp3123/uploads/1700000000000-a1b2c3d4e5f6a7b8c9d0.png
	ProfileImageURL *string   `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EmployeeCreatedResponse is returned after a successful create
// swagger:model EmployeeCreatedResponse
type EmployeeCreatedResponse struct {
	// example: Employee created successfully.
	Message string `json:"message"`
	// example: 3fa85f64-5717-4562-b3fc-2c963f66afa6
	EmployeeID string `json:"employee_id"`
}

// EmployeeUpdatedResponse is returned after a successful update
// swagger:model EmployeeUpdatedResponse
type EmployeeUpdatedResponse struct {
	// example: Employee details updated successfully.
	Message  string           `json:"message"`
	Employee EmployeeResponse `json:"employee"`
}

// PhotoUploadResponse is returned after a successful photo upload
// swagger:model PhotoUploadResponse
type PhotoUploadResponse struct {
	// example: Profile image uploaded successfully.
	Message string `json:"message"`
	// example: http://localhost:8092/gbc-service/comp3123/uploads/1700000000000-a1b2c3d4e5f6a7b8c9d0.png
	ProfileImageURL string `json:"profile_image_url"`
}
