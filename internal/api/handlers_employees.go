package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Artexxx/HR-Registry/internal/dto"

	"github.com/valyala/fasthttp"
)

type createEmployeeRequest struct {
	FirstName     *string  `json:"first_name,omitempty" example:"Анна"`
	LastName      string   `json:"last_name" example:"Иванова"`
	Email         string   `json:"email" example:"anna.ivanova@company.ru"`
	Phone         *string  `json:"phone,omitempty" example:"+7 916 123-45-67"`
	HireDate      string   `json:"hire_date" example:"2020-02-04"`
	JobID         string   `json:"job_id" example:"IT_PROG"`
	Salary        float64  `json:"salary" example:"95000"`
	CommissionPct *float64 `json:"commission_pct,omitempty" example:"0.15"`
	ManagerID     *int64   `json:"manager_id,omitempty" example:"100"`
	DepartmentID  *int64   `json:"department_id,omitempty" example:"60"`
}

type updateEmployeeRequest struct {
	FirstName     *string  `json:"first_name,omitempty"`
	LastName      *string  `json:"last_name,omitempty"`
	Email         *string  `json:"email,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	HireDate      *string  `json:"hire_date,omitempty"`
	JobID         *string  `json:"job_id,omitempty"`
	Salary        *float64 `json:"salary,omitempty"`
	CommissionPct *float64 `json:"commission_pct,omitempty"`
	ManagerID     *int64   `json:"manager_id,omitempty"`
	DepartmentID  *int64   `json:"department_id,omitempty"`
}

// @Summary Список сотрудников
// @Tags    CRUD-Employees
// @Produce json
// @Success 200 {array} dto.Employee
// @Failure 500 {object} errorResponse "Внутренняя ошибка"
// @Router  /employees [get]
func (s *Service) listEmployees(ctx *fasthttp.RequestCtx) {
	rows, err := s.employees.List(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employeeRepository.List: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Получить карточку сотрудника
// @Tags    CRUD-Employees
// @Produce json
// @Param   employee_id path int true "Идентификатор сотрудника"
// @Success 200 {object} dto.Employee
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse "employee not found"
// @Failure 500 {object} errorResponse "Внутренняя ошибка"
// @Router  /employees/{employee_id} [get]
func (s *Service) getEmployee(ctx *fasthttp.RequestCtx) {
	employeeID, okID := parseEmployeeID(ctx)
	if !okID {
		return
	}

	row, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			notFound(ctx, "employee_not_found", ErrEmployeeNotFound.Error())
			return
		}

		serverError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, row)
}

// @Summary Принять сотрудника на работу
// @Tags    CRUD-Employees
// @Accept  json
// @Produce json
// @Param   request body createEmployeeRequest true "Карточка сотрудника"
// @Success 201 {object} createdResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /employees [post]
func (s *Service) createEmployee(ctx *fasthttp.RequestCtx) {
	var req createEmployeeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		badRequest(ctx, "invalid_json", "Некорректный JSON")
		return
	}

	e := dto.Employee{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		HireDate:      req.HireDate,
		JobID:         req.JobID,
		Salary:        req.Salary,
		CommissionPct: req.CommissionPct,
		ManagerID:     req.ManagerID,
		DepartmentID:  req.DepartmentID,
	}

	if msg := validateEmployee(e); msg != "" {
		badRequest(ctx, "validation_failed", msg)
		return
	}
	if !s.salaryInBand(ctx, e) {
		return
	}

	id, err := s.svc.Hire(ctx, e)
	if err != nil {
		if errors.Is(err, dto.ErrAlreadyExists) {
			conflict(ctx, "employee_already_exists", "Сотрудник с такой почтой уже существует")
			return
		}

		serverError(ctx, err)
		return
	}

	created(ctx, id)
}

// @Summary Обновить карточку сотрудника
// @Tags    CRUD-Employees
// @Accept  json
// @Produce json
// @Param   employee_id path int true "Идентификатор сотрудника"
// @Param   request body updateEmployeeRequest true "Изменяемые поля"
// @Success 200 {object} okResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /employees/{employee_id} [put]
func (s *Service) updateEmployee(ctx *fasthttp.RequestCtx) {
	employeeID, okID := parseEmployeeID(ctx)
	if !okID {
		return
	}

	exists, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			notFound(ctx, "employee_not_found", ErrEmployeeNotFound.Error())
			return
		}

		serverError(ctx, err)
		return
	}

	var req updateEmployeeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		badRequest(ctx, "invalid_json", "Некорректный JSON")
		return
	}

	row := *exists

	if req.FirstName != nil {
		row.FirstName = req.FirstName
	}
	if req.LastName != nil {
		row.LastName = *req.LastName
	}
	if req.Email != nil {
		row.Email = *req.Email
	}
	if req.Phone != nil {
		row.Phone = req.Phone
	}
	if req.HireDate != nil {
		row.HireDate = *req.HireDate
	}
	if req.JobID != nil {
		row.JobID = *req.JobID
	}
	if req.Salary != nil {
		row.Salary = *req.Salary
	}
	if req.CommissionPct != nil {
		row.CommissionPct = req.CommissionPct
	}
	if req.ManagerID != nil {
		row.ManagerID = req.ManagerID
	}
	if req.DepartmentID != nil {
		row.DepartmentID = req.DepartmentID
	}

	if msg := validateEmployee(row); msg != "" {
		badRequest(ctx, "validation_failed", msg)
		return
	}
	if !s.salaryInBand(ctx, row) {
		return
	}

	appended, err := s.svc.Update(ctx, row)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			notFound(ctx, "employee_not_found", ErrEmployeeNotFound.Error())
			return
		}
		if errors.Is(err, dto.ErrSelfManager) {
			badRequest(ctx, "manager_is_self", "Руководитель не может совпадать с сотрудником")
			return
		}

		serverError(ctx, err)
		return
	}

	if appended {
		ok(ctx, "Карточка обновлена, назначение записано в историю")
		return
	}
	ok(ctx, "Карточка обновлена")
}

// @Summary Удалить сотрудника
// @Tags    CRUD-Employees
// @Produce json
// @Param   employee_id path int true "Идентификатор сотрудника"
// @Success 200 {object} okResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /employees/{employee_id} [delete]
func (s *Service) deleteEmployee(ctx *fasthttp.RequestCtx) {
	employeeID, okID := parseEmployeeID(ctx)
	if !okID {
		return
	}

	if err := s.employees.Delete(ctx, employeeID); err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			notFound(ctx, "employee_not_found", ErrEmployeeNotFound.Error())
			return
		}
		if errors.Is(err, dto.ErrHasReferences) {
			conflict(ctx, "employee_is_referenced", "На сотрудника ссылаются история или отдел; удаление истории — административная операция")
			return
		}

		serverError(ctx, err)
		return
	}

	ok(ctx, "Сотрудник удалён")
}

// salaryInBand проверяет оклад против вилки должности, когда должность
// есть в справочнике. Неизвестный job_id здесь не ошибка — его отклонит FK.
func (s *Service) salaryInBand(ctx *fasthttp.RequestCtx, e dto.Employee) bool {
	j, err := s.jobs.GetByID(ctx, e.JobID)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			return true
		}

		serverError(ctx, err)
		return false
	}

	if j.MinSalary != nil && e.Salary < *j.MinSalary || j.MaxSalary != nil && e.Salary > *j.MaxSalary {
		badRequest(ctx, "salary_out_of_band", fmt.Sprintf("Оклад %.2f вне вилки должности %s", e.Salary, e.JobID))
		return false
	}

	return true
}

func parseEmployeeID(ctx *fasthttp.RequestCtx) (int64, bool) {
	idStr := ctx.UserValue("employee_id").(string)

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		badRequest(ctx, "invalid_employee_id", "Некорректный идентификатор сотрудника")
		return 0, false
	}

	return id, true
}
