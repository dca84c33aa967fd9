package leaveerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	// ErrLeaveNotFound is returned when a leave request id does not exist.
	ErrLeaveNotFound = apperror.New(apperror.CodeNotFound, "leave request not found", http.StatusNotFound)

	// ErrInvalidDateRange is returned when the end date falls before the start date.
	ErrInvalidDateRange = apperror.New(apperror.CodeInvalidInput, "end date cannot be earlier than start date", http.StatusBadRequest)

	// ErrInvalidLeaveType is returned when the referenced leave type does not exist.
	ErrInvalidLeaveType = apperror.New(apperror.CodeInvalidInput, "invalid leave type", http.StatusBadRequest)

	// ErrInvalidStatus is returned when a status decision is neither Approved nor Rejected.
	ErrInvalidStatus = apperror.New(apperror.CodeInvalidInput, "status must be Approved or Rejected", http.StatusBadRequest)

	// ErrAlreadyFinalized is returned when a request in a terminal state is decided or cancelled again.
	ErrAlreadyFinalized = apperror.New(apperror.CodeInvalidState, "leave request has already been finalized", http.StatusConflict)

	// ErrNotOwner is returned when an employee acts on another employee's request.
	ErrNotOwner = apperror.New(apperror.CodeForbidden, "you can only act on your own leave requests", http.StatusForbidden)

	// ErrEmployeeNotFound is returned when a dashboard is requested for an unknown employee.
	ErrEmployeeNotFound = apperror.New(apperror.CodeNotFound, "employee not found", http.StatusNotFound)
)
