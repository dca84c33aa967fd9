package user

import (
	"time"
)

type User struct {
	ID         uint   `gorm:"primaryKey"`
	FullName   string `gorm:"type:varchar(100);not null"`
	Email      string `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email"`
	Phone      string `gorm:"type:varchar(30)"`
	Password   string `gorm:"type:varchar(255);not null"`
	Role       string `gorm:"type:varchar(20);not null;default:'Employee';index"`
	Department string `gorm:"type:varchar(100);index"`

	// ManagerID is nil for Admins and top-level Managers. A user can never
	// be their own manager.
	ManagerID *uint `gorm:"index"`
	Manager   *User `gorm:"foreignKey:ManagerID"`

	DateJoined time.Time `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
