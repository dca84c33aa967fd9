package leavetype

import "time"

type LeaveType struct {
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"type:varchar(100);not null;uniqueIndex:uq_leave_type_name"`

	// MaxLeavesPerYear is a catalog figure shown to employees; submission
	// does not enforce it.
	MaxLeavesPerYear int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
