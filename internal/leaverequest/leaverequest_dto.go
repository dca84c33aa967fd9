package leaverequest

type SubmitLeaveRequest struct {
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
	LeaveTypeID uint   `json:"leaveTypeId" binding:"required"`
	Remarks     string `json:"remarks" binding:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// LeaveRequestResponse carries the record together with the denormalized
// employee, manager and leave-type fields the views render.
type LeaveRequestResponse struct {
	ID            uint    `json:"id"`
	EmployeeID    uint    `json:"employeeId"`
	EmployeeName  string  `json:"employeeName"`
	ManagerID     *uint   `json:"managerId,omitempty"`
	ManagerName   *string `json:"managerName,omitempty"`
	Department    string  `json:"department"`
	LeaveTypeID   uint    `json:"leaveTypeId"`
	LeaveTypeName string  `json:"leaveTypeName"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Remarks       string  `json:"remarks,omitempty"`
	Status        string  `json:"status"`
	DateRequested string  `json:"dateRequested"`
}

type StatusCounts struct {
	Approved  int64 `json:"approved"`
	Pending   int64 `json:"pending"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
}

func (c StatusCounts) Total() int64 {
	return c.Approved + c.Pending + c.Rejected + c.Cancelled
}

type DashboardProfile struct {
	EmployeeID  uint    `json:"employeeId"`
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Department  string  `json:"department"`
	Role        string  `json:"role"`
	ManagerName *string `json:"managerName,omitempty"`
	DateJoined  string  `json:"dateJoined"`
}

type DashboardResponse struct {
	Profile DashboardProfile `json:"profile"`
	Stats   StatusCounts     `json:"stats"`
}
