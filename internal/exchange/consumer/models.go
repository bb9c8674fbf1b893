package consumer

import "time"

// AssignmentCommandPayload — команда перевода сотрудника на другую
// должность, приходит из внешней HR-системы.
type AssignmentCommandPayload struct {
	EmployeeID   int64  `json:"employee_id"`
	JobID        string `json:"job_id"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

type Envelope[T any] struct {
	Kind       string    `json:"kind"` // assignment_change
	MessageID  string    `json:"message_id"`
	EmployeeID string    `json:"employee_id"`
	Payload    T         `json:"payload"`
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source"`
}
