package dto

// Job — справочник должностей. Вилка зарплаты: min_salary <= max_salary.
type Job struct {
	JobID     string   `json:"job_id" example:"IT_PROG"`
	JobTitle  string   `json:"job_title" example:"Программист"`
	MinSalary *float64 `json:"min_salary,omitempty" example:"40000"`
	MaxSalary *float64 `json:"max_salary,omitempty" example:"100000"`
}

// Department — отдел. Руководитель обязателен, из-за чего связка
// departments.manager_id ↔ employees.department_id циклическая:
// обе строки создаются в одной транзакции с отложенными констрейнтами.
type Department struct {
	DepartmentID   int64  `json:"department_id" example:"60"`
	DepartmentName string `json:"department_name" example:"Отдел разработки"`
	ManagerID      int64  `json:"manager_id" example:"103"`
	LocationID     int64  `json:"location_id" example:"1700"`
}
