package leavetype

import (
	"context"
	"errors"
	"strings"

	leavetypeerrors "go-leave/internal/leavetype/errors"
	"go-leave/internal/shared/contextutil"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id uint) (LeaveTypeResponse, error)
	Update(ctx context.Context, id uint, req UpdateLeaveTypeRequest) error
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if strings.TrimSpace(req.Name) == "" || req.MaxLeavesPerYear <= 0 {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeDetails
	}

	lt := &LeaveType{
		Name:             strings.TrimSpace(req.Name),
		MaxLeavesPerYear: req.MaxLeavesPerYear,
	}

	if err := s.repo.Create(ctx, lt); err != nil {
		l.Warn("create leave type failed", zap.String("name", lt.Name), zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	l.Info("leave type created", zap.Uint("leave_type_id", lt.ID), zap.String("name", lt.Name))
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateLeaveTypeRequest) error {
	l := contextutil.GetLogger(ctx, s.logger)

	fields := map[string]any{}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.MaxLeavesPerYear != nil {
		fields["max_leaves_per_year"] = *req.MaxLeavesPerYear
	}
	if len(fields) == 0 {
		return leavetypeerrors.ErrNoFieldsToUpdate
	}

	rows, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		l.Warn("update leave type failed", zap.Uint("leave_type_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if rows == 0 {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}

	l.Info("leave type updated", zap.Uint("leave_type_id", id))
	return nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if rows == 0 {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}

	l.Info("leave type deleted", zap.Uint("leave_type_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return leavetypeerrors.ErrLeaveTypeNameTaken
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return leavetypeerrors.ErrLeaveTypeNameTaken
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") ||
		strings.Contains(errMsg, "unique constraint failed") {
		return leavetypeerrors.ErrLeaveTypeNameTaken
	}

	return err
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		LeaveTypeID:      lt.ID,
		Name:             lt.Name,
		MaxLeavesPerYear: lt.MaxLeavesPerYear,
		CreatedAt:        lt.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
