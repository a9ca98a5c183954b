package attendanceerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	// Unknown employee saat mark attendance adalah kegagalan validasi input,
	// bukan 404: employee_id datang dari body request.
	ErrEmployeeNotFound = apperror.NewField(
		apperror.CodeInvalidInput,
		"employee_id",
		"Employee not found",
		http.StatusBadRequest,
	)
	ErrDuplicateAttendance = apperror.NewField(
		apperror.CodeConflict,
		"date",
		"Attendance already marked for this employee on this date",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.NewField(
		apperror.CodeInvalidInput,
		"date",
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
