package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

const insertAttendanceQuery = `
INSERT INTO attendances (employee_id, date, status)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at
`

const presentSummaryQuery = `
SELECT
	e.employee_id,
	e.full_name,
	COUNT(a.id) AS total_present_days
FROM attendances a
JOIN employees e ON e.id = a.employee_id
WHERE a.status = ?
GROUP BY e.employee_id, e.full_name
ORDER BY total_present_days DESC, e.employee_id ASC
`

// Filter untuk listing: kedua field opsional, digabung AND saat keduanya terisi
type Filter struct {
	EmployeeID string     // external employee id, kosong = semua
	Date       *time.Time // nil = semua
}

type PresentSummaryRow struct {
	EmployeeID       string `gorm:"column:employee_id"`
	FullName         string `gorm:"column:full_name"`
	TotalPresentDays int64  `gorm:"column:total_present_days"`
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	ExistsByEmployeeAndDate(ctx context.Context, employeeID uint64, date time.Time) (bool, error)
	FindAllFiltered(ctx context.Context, f Filter) ([]Attendance, error)
	PresentSummary(ctx context.Context) ([]PresentSummaryRow, error)
	Count(ctx context.Context) (int64, error)
	CountPresentOn(ctx context.Context, date time.Time) (int64, error)
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

// Create mengandalkan uq_attendances_employee_date dan fk_attendances_employee
// di storage; duplicate atau employee hilang muncul sebagai constraint error.
func (r *repository) Create(ctx context.Context, a *Attendance) error {
	dateStr := a.Date.Format("2006-01-02")
	if r.tx != nil {
		return r.tx.QueryRowContext(
			ctx, insertAttendanceQuery,
			a.EmployeeID, dateStr, a.Status,
		).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	}
	return r.db.WithContext(ctx).
		Raw(insertAttendanceQuery, a.EmployeeID, dateStr, a.Status).
		Row().
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *repository) ExistsByEmployeeAndDate(ctx context.Context, employeeID uint64, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAllFiltered(ctx context.Context, f Filter) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Preload("Employee").
		Order("attendances.date DESC, attendances.id DESC")

	if f.EmployeeID != "" {
		q = q.Joins("JOIN employees ON employees.id = attendances.employee_id").
			Where("employees.employee_id = ?", f.EmployeeID)
	}
	if f.Date != nil {
		q = q.Where("attendances.date = ?", f.Date.Format("2006-01-02"))
	}

	var rows []Attendance
	err := q.Find(&rows).Error
	return rows, err
}

// PresentSummary menghitung total hari Present per employee, urut terbanyak.
// Tie-break: employee_id ascending, supaya urutan stabil antar request.
func (r *repository) PresentSummary(ctx context.Context) ([]PresentSummaryRow, error) {
	var rows []PresentSummaryRow
	err := r.db.WithContext(ctx).
		Raw(presentSummaryQuery, StatusPresent).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Attendance{}).Count(&count).Error
	return count, err
}

func (r *repository) CountPresentOn(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("status = ?", StatusPresent).
		Where("date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}
