package leaverequest

import "time"

const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"
)

type LeaveRequest struct {
	ID            uint      `gorm:"primaryKey"`
	EmployeeID    uint      `gorm:"not null;index:idx_leave_requests_employee"`
	LeaveTypeID   uint      `gorm:"not null;index:idx_leave_requests_type"`
	StartDate     time.Time `gorm:"type:date;not null"`
	EndDate       time.Time `gorm:"type:date;not null"`
	Remarks       string    `gorm:"type:text"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Pending';index:idx_leave_requests_status"`
	DateRequested time.Time `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// IsTerminal reports whether the request can no longer change status.
func (l LeaveRequest) IsTerminal() bool {
	return l.Status != StatusPending
}
