package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// RequiredField membuat error "X is required" yang menunjuk field terkait
func RequiredField(field, humanName string) *AppError {
	return NewField(
		CodeInvalidInput,
		field,
		fmt.Sprintf("%s is required", humanName),
		http.StatusBadRequest,
	)
}

// InvalidField membuat error "X is invalid" yang menunjuk field terkait
func InvalidField(field, humanName string) *AppError {
	return NewField(
		CodeInvalidInput,
		field,
		fmt.Sprintf("%s is invalid", humanName),
		http.StatusBadRequest,
	)
}
