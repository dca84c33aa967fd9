package events

import "time"

const LeaveStatusChangedTopic = "hr.leave.status.v1"

type LeaveStatusChangedEvent struct {
	EventType      string    `json:"event_type"`
	LeaveRequestID uint      `json:"leave_request_id"`
	EmployeeID     uint      `json:"employee_id"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	ChangedBy      uint      `json:"changed_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
