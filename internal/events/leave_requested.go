package events

import "time"

const LeaveRequestedTopic = "hr.leave.request.v1"

type LeaveRequestedEvent struct {
	EventType      string    `json:"event_type"`
	LeaveRequestID uint      `json:"leave_request_id"`
	EmployeeID     uint      `json:"employee_id"`
	LeaveTypeID    uint      `json:"leave_type_id"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}
