package user

import (
	"context"

	"go-leave/internal/auth"
	"go-leave/internal/rbac"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, u *User) error
	FindAll(ctx context.Context, managerID *uint) ([]User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindCredentialsByEmail(ctx context.Context, email string) (*auth.Credentials, error)
	UpdateProfile(ctx context.Context, id uint, fields map[string]any) (int64, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	AssignManager(ctx context.Context, userID, managerID uint) (int64, error)
	PromoteToManager(ctx context.Context, userID uint) (int64, error)
	FindManagersByDepartment(ctx context.Context, department string) ([]User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindAll(ctx context.Context, managerID *uint) ([]User, error) {
	var users []User
	q := r.db.WithContext(ctx).
		Preload("Manager").
		Order("full_name ASC")
	if managerID != nil {
		q = q.Where("manager_id = ?", *managerID)
	}
	err := q.Find(&users).Error
	return users, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Manager").
		First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindCredentialsByEmail(ctx context.Context, email string) (*auth.Credentials, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &auth.Credentials{
		UserID:       u.ID,
		Email:        u.Email,
		PasswordHash: u.Password,
		Role:         u.Role,
	}, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *repository) UpdatePassword(ctx context.Context, id uint, passwordHash string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("password", passwordHash)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&User{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) AssignManager(ctx context.Context, userID, managerID uint) (int64, error) {
	// The subquery keeps the update a no-op when the manager id does not
	// resolve, so zero rows signals a bad pair.
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Where("EXISTS (SELECT 1 FROM users m WHERE m.id = ?)", managerID).
		Update("manager_id", managerID)
	return res.RowsAffected, res.Error
}

func (r *repository) PromoteToManager(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("role", rbac.RoleManager)
	return res.RowsAffected, res.Error
}

func (r *repository) FindManagersByDepartment(ctx context.Context, department string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("role = ?", rbac.RoleManager).
		Where("department = ?", department).
		Order("full_name ASC").
		Find(&users).Error
	return users, err
}
