package usererrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Email already exists",
		http.StatusConflict,
	)

	ErrNoFieldsToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"At least one field must be provided to update",
		http.StatusBadRequest,
	)

	ErrMissingPasswordFields = apperror.New(
		apperror.CodeInvalidInput,
		"Old password and new password must be provided",
		http.StatusBadRequest,
	)

	ErrIncorrectOldPassword = apperror.New(
		apperror.CodeUnauthorized,
		"Old password is incorrect",
		http.StatusUnauthorized,
	)

	ErrSelfManager = apperror.New(
		apperror.CodeInvalidInput,
		"A user cannot be their own manager",
		http.StatusBadRequest,
	)

	ErrManagerAssignmentFailed = apperror.New(
		apperror.CodeInvalidInput,
		"Failed to assign manager. Check user and manager IDs",
		http.StatusBadRequest,
	)

	ErrPromotionFailed = apperror.New(
		apperror.CodeInvalidInput,
		"Failed to promote user. User may not exist",
		http.StatusBadRequest,
	)

	ErrNoManagersInDepartment = apperror.New(
		apperror.CodeNotFound,
		"No managers found for this department",
		http.StatusNotFound,
	)
)
