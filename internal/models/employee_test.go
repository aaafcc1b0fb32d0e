package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmployeeUpdate_Apply(t *testing.T) {
	original := EmployeeDB{
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         "jane@example.com",
		Position:      "Engineer",
		Salary:        100,
		DateOfJoining: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Department:    "R&D",
	}

	assert.True(t, EmployeeUpdate{}.IsEmpty())

	salary := 250.5
	position := "Lead"
	department := "Platform"
	upd := EmployeeUpdate{Salary: &salary, Position: &position, Department: &department}
	assert.False(t, upd.IsEmpty())

	e := original
	upd.Apply(&e)

	assert.Equal(t, 250.5, e.Salary)
	assert.Equal(t, "Lead", e.Position)
	assert.Equal(t, "Platform", e.Department)
	assert.Equal(t, original.FirstName, e.FirstName)
	assert.Equal(t, original.Email, e.Email)
	assert.Equal(t, original.DateOfJoining, e.DateOfJoining)
}
