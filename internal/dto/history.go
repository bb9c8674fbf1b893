package dto

// JobHistoryEntry — одна запись истории назначений сотрудника.
//
// Ключ записи — (employee_id, start_date). Записи только добавляются:
// end_date прошлой записи при смене должности не проставляется
// автоматически, поэтому у сотрудника может быть несколько открытых
// записей. Закрытие прошлой записи — ручная административная операция.
type JobHistoryEntry struct {
	EmployeeID   int64   `json:"employee_id" example:"104"`
	StartDate    string  `json:"start_date" example:"2020-02-04T10:15:30+03:00"` // Начало назначения
	EndDate      *string `json:"end_date,omitempty" example:"2021-12-31"`        // Конец назначения (null — текущее)
	JobID        string  `json:"job_id" example:"IT_PROG"`
	DepartmentID *int64  `json:"department_id,omitempty" example:"60"`
}

// HistoryRecord — строка отчёта истории: запись истории, объединённая
// с текущими атрибутами сотрудника и вилкой зарплаты исторической должности.
type HistoryRecord struct {
	EmployeeID    int64    `json:"employee_id"`
	StartDate     string   `json:"start_date"`
	EndDate       *string  `json:"end_date,omitempty"`
	FirstName     *string  `json:"first_name,omitempty"`
	LastName      string   `json:"last_name"`
	Email         string   `json:"email"`
	Phone         *string  `json:"phone,omitempty"`
	HireDate      string   `json:"hire_date"`
	JobID         string   `json:"job_id"`
	MinSalary     *float64 `json:"min_salary,omitempty"`
	MaxSalary     *float64 `json:"max_salary,omitempty"`
	CommissionPct *float64 `json:"commission_pct,omitempty"`
	ManagerID     *int64   `json:"manager_id,omitempty"`
	DepartmentID  *int64   `json:"department_id,omitempty"`
}
