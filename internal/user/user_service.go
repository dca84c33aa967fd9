package user

import (
	"context"
	"time"

	"go-leave/internal/rbac"
	"go-leave/internal/shared/contextutil"
	usererrors "go-leave/internal/user/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	GetAll(ctx context.Context, managerID *uint) ([]UserResponse, error)
	GetByID(ctx context.Context, id uint) (UserResponse, error)
	UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) error
	ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error
	Delete(ctx context.Context, id uint) error
	AssignManager(ctx context.Context, userID, managerID uint) error
	PromoteToManager(ctx context.Context, userID uint) error
	ManagersByDepartment(ctx context.Context, department string) ([]UserResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("register requested", zap.String("email", req.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = rbac.RoleEmployee
	}

	u := &User{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   string(hashed),
		Role:       role,
		Department: req.Department,
		DateJoined: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		l.Warn("register persist failed", zap.String("email", req.Email), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user registered", zap.Uint("user_id", u.ID), zap.String("role", u.Role))
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context, managerID *uint) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx, managerID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) error {
	l := contextutil.GetLogger(ctx, s.logger)

	fields := map[string]any{}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if len(fields) == 0 {
		return usererrors.ErrNoFieldsToUpdate
	}

	rows, err := s.repo.UpdateProfile(ctx, id, fields)
	if err != nil {
		l.Warn("update profile failed", zap.Uint("user_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if rows == 0 {
		return usererrors.ErrUserNotFound
	}

	l.Info("profile updated", zap.Uint("user_id", id))
	return nil
}

func (s *service) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	if oldPassword == "" || newPassword == "" {
		return usererrors.ErrMissingPasswordFields
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)); err != nil {
		l.Warn("change password rejected, old password mismatch", zap.Uint("user_id", id))
		return usererrors.ErrIncorrectOldPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if _, err := s.repo.UpdatePassword(ctx, id, string(hashed)); err != nil {
		l.Error("change password persist failed", zap.Uint("user_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	l.Info("password changed", zap.Uint("user_id", id))
	return nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if rows == 0 {
		return usererrors.ErrUserNotFound
	}

	l.Info("user deleted", zap.Uint("user_id", id))
	return nil
}

func (s *service) AssignManager(ctx context.Context, userID, managerID uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	// Rejected before touching the store.
	if userID == managerID {
		return usererrors.ErrSelfManager
	}

	rows, err := s.repo.AssignManager(ctx, userID, managerID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if rows == 0 {
		return usererrors.ErrManagerAssignmentFailed
	}

	l.Info("manager assigned", zap.Uint("user_id", userID), zap.Uint("manager_id", managerID))
	return nil
}

func (s *service) PromoteToManager(ctx context.Context, userID uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	rows, err := s.repo.PromoteToManager(ctx, userID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if rows == 0 {
		return usererrors.ErrPromotionFailed
	}

	l.Info("user promoted to manager", zap.Uint("user_id", userID))
	return nil
}

func (s *service) ManagersByDepartment(ctx context.Context, department string) ([]UserResponse, error) {
	managers, err := s.repo.FindManagersByDepartment(ctx, department)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if len(managers) == 0 {
		return nil, usererrors.ErrNoManagersInDepartment
	}

	resp := make([]UserResponse, len(managers))
	for i, u := range managers {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		UserID:     u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		Department: u.Department,
		ManagerID:  u.ManagerID,
		DateJoined: u.DateJoined.Format("2006-01-02"),
	}
	if u.Manager != nil {
		name := u.Manager.FullName
		resp.ManagerName = &name
	}
	return resp
}
