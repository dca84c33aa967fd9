package leavetype

type CreateLeaveTypeRequest struct {
	Name             string `json:"leaveTypeName" binding:"required"`
	MaxLeavesPerYear int    `json:"maxLeavesPerYear" binding:"required,gt=0"`
}

type UpdateLeaveTypeRequest struct {
	Name             *string `json:"leaveTypeName"`
	MaxLeavesPerYear *int    `json:"maxLeavesPerYear" binding:"omitempty,gt=0"`
}

type LeaveTypeResponse struct {
	LeaveTypeID      uint   `json:"leaveTypeId"`
	Name             string `json:"leaveTypeName"`
	MaxLeavesPerYear int    `json:"maxLeavesPerYear"`
	CreatedAt        string `json:"createdAt"`
}
