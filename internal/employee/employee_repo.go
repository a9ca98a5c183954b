package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

const insertEmployeeQuery = `
INSERT INTO employees (employee_id, full_name, email, department)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at
`

const deleteEmployeeQuery = `DELETE FROM employees WHERE id = $1`

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, emp *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uint64) (*Employee, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id uint64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Create memakai insert ber-constraint: unique violation dari storage
// adalah backstop terakhir terhadap race check-then-insert.
// Timestamp diisi oleh store (DEFAULT now()), bukan caller.
func (r *repository) Create(ctx context.Context, emp *Employee) error {
	if r.tx != nil {
		return r.tx.QueryRowContext(
			ctx, insertEmployeeQuery,
			emp.EmployeeID, emp.FullName, emp.Email, emp.Department,
		).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	}
	return r.db.WithContext(ctx).
		Raw(insertEmployeeQuery, emp.EmployeeID, emp.FullName, emp.Email, emp.Department).
		Row().
		Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).Find(&emps).Error
	return emps, err
}

func (r *repository) FindByID(ctx context.Context, id uint64) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).First(&emp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).First(&emp, "employee_id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// Delete menghapus satu employee; baris attendance miliknya ikut terhapus
// lewat fk_attendances_employee ON DELETE CASCADE dalam statement yang sama.
func (r *repository) Delete(ctx context.Context, id uint64) (int64, error) {
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, deleteEmployeeQuery, id)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}
	res := r.db.WithContext(ctx).Exec(deleteEmployeeQuery, id)
	return res.RowsAffected, res.Error
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Employee{}).Count(&count).Error
	return count, err
}
