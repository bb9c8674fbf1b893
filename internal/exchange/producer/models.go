package producer

import "time"

// AssignmentPayload — событие о состоявшемся назначении: публикуется
// после коммита транзакции, добавившей запись истории.
type AssignmentPayload struct {
	EmployeeID   int64  `json:"employee_id" example:"104"`       // Идентификатор сотрудника
	JobID        string `json:"job_id" example:"IT_PROG"`        // Код новой должности
	DepartmentID *int64 `json:"department_id,omitempty"`         // Отдел (может отсутствовать)
	Email        string `json:"email" example:"anna@company.ru"` // Почта сотрудника
}

type Envelope[T any] struct {
	Kind       string    `json:"kind"` // assignment
	MessageID  string    `json:"message_id"`
	EmployeeID string    `json:"employee_id"`
	Payload    T         `json:"payload"`
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source"` // сервис-источник
}
