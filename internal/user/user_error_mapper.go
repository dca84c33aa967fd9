package user

import (
	"errors"
	"strings"

	usererrors "go-leave/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usererrors.ErrEmailAlreadyExists
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return usererrors.ErrEmailAlreadyExists
		}
	}

	// Driver-agnostic fallback; the sqlite test driver reports uniqueness
	// violations as plain strings.
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") ||
		strings.Contains(errMsg, "unique constraint failed") {
		return usererrors.ErrEmailAlreadyExists
	}

	return err
}
