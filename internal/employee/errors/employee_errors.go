package employeeerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeIDAlreadyExists = apperror.NewField(
		apperror.CodeConflict,
		"employee_id",
		"Employee ID already exists",
		http.StatusBadRequest,
	)
	ErrEmailAlreadyExists = apperror.NewField(
		apperror.CodeConflict,
		"email",
		"Email already exists",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)
