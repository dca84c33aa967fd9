package leaverequest

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// LeaveRequestRecord is the read model: one leave request joined with the
// employee, their manager and the leave type.
type LeaveRequestRecord struct {
	ID            uint
	EmployeeID    uint
	EmployeeName  string
	ManagerID     *uint
	ManagerName   *string
	Department    string
	LeaveTypeID   uint
	LeaveTypeName string
	StartDate     time.Time
	EndDate       time.Time
	Remarks       string
	Status        string
	DateRequested time.Time
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, managerID *uint, months *int) ([]LeaveRequestRecord, error)
	CountByStatus(ctx context.Context, managerID *uint, months *int) (StatusCounts, error)
	FindByEmployee(ctx context.Context, employeeID uint) ([]LeaveRequestRecord, error)
	FindRecordByID(ctx context.Context, id uint) (*LeaveRequestRecord, error)
	FindByID(ctx context.Context, id uint) (*LeaveRequest, error)
	UpdateStatus(ctx context.Context, id uint, status string) (int64, error)
	CancelByOwner(ctx context.Context, id, employeeID uint) (int64, error)
	StatsByEmployee(ctx context.Context, employeeID uint) (StatusCounts, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// joined returns the base query with the employee/manager/leave-type joins.
func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("leave_requests AS lr").
		Joins("JOIN users e ON e.id = lr.employee_id").
		Joins("LEFT JOIN users m ON m.id = e.manager_id").
		Joins("LEFT JOIN leave_types lt ON lt.id = lr.leave_type_id")
}

const recordColumns = `
lr.id,
lr.employee_id,
e.full_name AS employee_name,
e.manager_id,
m.full_name AS manager_name,
e.department,
lr.leave_type_id,
lt.name AS leave_type_name,
lr.start_date,
lr.end_date,
lr.remarks,
lr.status,
lr.date_requested
`

// scoped applies the manager and trailing-months predicates. List and count
// queries go through the same path so the two stay consistent.
func scoped(q *gorm.DB, managerID *uint, months *int) *gorm.DB {
	if managerID != nil {
		q = q.Where("e.manager_id = ?", *managerID)
	}
	if months != nil && *months > 0 {
		cutoff := time.Now().UTC().AddDate(0, -*months, 0)
		q = q.Where("lr.date_requested >= ?", cutoff)
	}
	return q
}

func (r *repository) FindAll(ctx context.Context, managerID *uint, months *int) ([]LeaveRequestRecord, error) {
	var records []LeaveRequestRecord
	err := scoped(r.joined(ctx), managerID, months).
		Select(recordColumns).
		Order("lr.date_requested DESC").
		Scan(&records).Error
	return records, err
}

func (r *repository) CountByStatus(ctx context.Context, managerID *uint, months *int) (StatusCounts, error) {
	var counts StatusCounts
	err := scoped(r.joined(ctx), managerID, months).
		Select(`
COUNT(CASE WHEN lr.status = 'Approved' THEN 1 END) AS approved,
COUNT(CASE WHEN lr.status = 'Pending' THEN 1 END) AS pending,
COUNT(CASE WHEN lr.status = 'Rejected' THEN 1 END) AS rejected,
COUNT(CASE WHEN lr.status = 'Cancelled' THEN 1 END) AS cancelled
`).
		Scan(&counts).Error
	return counts, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uint) ([]LeaveRequestRecord, error) {
	var records []LeaveRequestRecord
	err := r.joined(ctx).
		Select(recordColumns).
		Where("lr.employee_id = ?", employeeID).
		Order("lr.date_requested DESC").
		Scan(&records).Error
	return records, err
}

func (r *repository) FindRecordByID(ctx context.Context, id uint) (*LeaveRequestRecord, error) {
	var record LeaveRequestRecord
	res := r.joined(ctx).
		Select(recordColumns).
		Where("lr.id = ?", id).
		Limit(1).
		Scan(&record)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &record, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateStatus transitions a Pending request. Zero rows means the id either
// does not exist or is already terminal; callers disambiguate.
func (r *repository) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *repository) CancelByOwner(ctx context.Context, id, employeeID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusPending).
		Update("status", StatusCancelled)
	return res.RowsAffected, res.Error
}

func (r *repository) StatsByEmployee(ctx context.Context, employeeID uint) (StatusCounts, error) {
	var counts StatusCounts
	err := r.db.WithContext(ctx).
		Table("leave_requests AS lr").
		Select(`
COUNT(CASE WHEN lr.status = 'Approved' THEN 1 END) AS approved,
COUNT(CASE WHEN lr.status = 'Pending' THEN 1 END) AS pending,
COUNT(CASE WHEN lr.status = 'Rejected' THEN 1 END) AS rejected,
COUNT(CASE WHEN lr.status = 'Cancelled' THEN 1 END) AS cancelled
`).
		Where("lr.employee_id = ?", employeeID).
		Scan(&counts).Error
	return counts, err
}
