package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-employee-service/internal/models"
)

const employeeColumns = `employee_id, first_name, last_name, email, position, salary,
	date_of_joining, department, profile_image_url, created_at, updated_at`

// EmployeeReadRepository reads employees. It joins the request transaction when one is present.
type EmployeeReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewEmployeeReadRepository(db *sqlx.DB, txGetter TxGetter) *EmployeeReadRepository {
	return &EmployeeReadRepository{db: db, txGetter: txGetter}
}

// List returns all employees, newest first.
func (r *EmployeeReadRepository) List(ctx context.Context) ([]models.EmployeeDB, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at DESC`

	employees := []models.EmployeeDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &employees, query)

	logQuery(query, nil, len(employees), err)

	if err != nil {
		return nil, err
	}
	return employees, nil
}

// GetByID returns the employee or nil when it does not exist.
func (r *EmployeeReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.EmployeeDB, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`

	var employee models.EmployeeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &employee, query, id)

	logQuery(query, []any{id}, employee.EmployeeID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Search matches department and position as case-insensitive substrings. Empty filter fields match everything.
func (r *EmployeeReadRepository) Search(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeDB, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE ($1::TEXT = '' OR department ILIKE '%' || $1::TEXT || '%')
		  AND ($2::TEXT = '' OR position ILIKE '%' || $2::TEXT || '%')
		ORDER BY created_at DESC`
	args := []any{escapeLike(filter.Department), escapeLike(filter.Position)}

	employees := []models.EmployeeDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &employees, query, args...)

	logQuery(query, args, len(employees), err)

	if err != nil {
		return nil, err
	}
	return employees, nil
}

// EmployeeWriteRepository mutates employees. It joins the request transaction when one is present.
type EmployeeWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewEmployeeWriteRepository(db *sqlx.DB, txGetter TxGetter) *EmployeeWriteRepository {
	return &EmployeeWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts e and returns the stored row.
// A duplicate email yields an error wrapping apperr.ErrConflict.
func (r *EmployeeWriteRepository) Save(ctx context.Context, e *models.EmployeeDB) (*models.EmployeeDB, error) {
	query := `
		INSERT INTO employees (first_name, last_name, email, position, salary,
			date_of_joining, department, profile_image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + employeeColumns
	args := []any{e.FirstName, e.LastName, e.Email, e.Position, e.Salary,
		e.DateOfJoining, e.Department, e.ProfileImageURL}

	var saved models.EmployeeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &saved, query, args...)

	logQuery(query, args, saved.EmployeeID, err)

	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return &saved, nil
}

// Update overwrites every mutable column of e. It returns nil when the employee does not exist.
func (r *EmployeeWriteRepository) Update(ctx context.Context, e *models.EmployeeDB) (*models.EmployeeDB, error) {
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, position = $5, salary = $6,
			date_of_joining = $7, department = $8, profile_image_url = $9, updated_at = NOW()
		WHERE employee_id = $1
		RETURNING ` + employeeColumns
	args := []any{e.EmployeeID, e.FirstName, e.LastName, e.Email, e.Position, e.Salary,
		e.DateOfJoining, e.Department, e.ProfileImageURL}

	var updated models.EmployeeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &updated, query, args...)

	logQuery(query, args, updated.EmployeeID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return &updated, nil
}

// Delete removes the employee and reports whether a row was deleted.
func (r *EmployeeWriteRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `DELETE FROM employees WHERE employee_id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{id}, rowsAffected, err)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
