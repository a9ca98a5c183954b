package attendance

import (
	"errors"
	"strings"

	attendanceerrors "go-hrms/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError menerjemahkan constraint error storage ke error validasi.
// 23505 pada pasangan (employee, date) berarti mark duplikat; 23503 berarti
// employee-nya keburu dihapus oleh request lain.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_attendances_employee_date" {
				return attendanceerrors.ErrDuplicateAttendance
			}
		case "23503":
			if pgErr.ConstraintName == "fk_attendances_employee" {
				return attendanceerrors.ErrEmployeeNotFound
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendances_employee_date") {
		return attendanceerrors.ErrDuplicateAttendance
	}
	if strings.Contains(errMsg, "foreign key constraint") && strings.Contains(errMsg, "fk_attendances_employee") {
		return attendanceerrors.ErrEmployeeNotFound
	}

	return err
}
