package dto

// Employee — карточка сотрудника.
//
// Даты передаются строками в формате YYYY-MM-DD (как их отдаёт to_char).
type Employee struct {
	EmployeeID    int64    `json:"employee_id" example:"104"`                  // Идентификатор сотрудника
	FirstName     *string  `json:"first_name,omitempty" example:"Анна"`        // Имя
	LastName      string   `json:"last_name" example:"Иванова"`                // Фамилия
	Email         string   `json:"email" example:"anna.ivanova@company.ru"`    // Почта (уникальна)
	Phone         *string  `json:"phone,omitempty" example:"+7 916 123-45-67"` // Телефон
	HireDate      string   `json:"hire_date" example:"2020-02-04"`             // Дата найма (YYYY-MM-DD)
	JobID         string   `json:"job_id" example:"IT_PROG"`                   // Код текущей должности
	Salary        float64  `json:"salary" example:"95000"`                     // Оклад
	CommissionPct *float64 `json:"commission_pct,omitempty" example:"0.15"`    // Процент комиссии
	ManagerID     *int64   `json:"manager_id,omitempty" example:"100"`         // Руководитель (не сам сотрудник)
	DepartmentID  *int64   `json:"department_id,omitempty" example:"60"`       // Отдел
}

// AssignmentChange — команда перевода сотрудника на другую должность.
type AssignmentChange struct {
	EmployeeID   int64  `json:"employee_id"`
	JobID        string `json:"job_id"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}
