package leavetypeerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave type not found",
		http.StatusNotFound,
	)

	ErrLeaveTypeNameTaken = apperror.New(
		apperror.CodeConflict,
		"Leave type with the same name already exists",
		http.StatusConflict,
	)

	ErrInvalidLeaveTypeDetails = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave type details",
		http.StatusBadRequest,
	)

	ErrNoFieldsToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"At least one field must be provided to update",
		http.StatusBadRequest,
	)
)
