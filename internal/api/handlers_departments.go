package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/Artexxx/HR-Registry/internal/dto"

	"github.com/valyala/fasthttp"
)

type createDepartmentRequest struct {
	DepartmentName string                `json:"department_name" example:"Отдел разработки"`
	LocationID     int64                 `json:"location_id" example:"1700"`
	Manager        createEmployeeRequest `json:"manager"` // Руководитель создаётся вместе с отделом
}

type createDepartmentResponse struct {
	Status       string `json:"status" example:"ok"`
	DepartmentID int64  `json:"department_id" example:"60"`
	ManagerID    int64  `json:"manager_id" example:"104"`
}

// @Summary Создать отдел вместе с руководителем
// @Description Руководитель отдела обязателен, а руководитель обязан числиться в отделе — обе строки создаются в одной транзакции с отложенной проверкой констрейнтов.
// @Tags    Departments
// @Accept  json
// @Produce json
// @Param   request body createDepartmentRequest true "Отдел и руководитель"
// @Success 201 {object} createDepartmentResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /departments [post]
func (s *Service) createDepartment(ctx *fasthttp.RequestCtx) {
	var req createDepartmentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		badRequest(ctx, "invalid_json", "Некорректный JSON")
		return
	}

	if strings.TrimSpace(req.DepartmentName) == "" {
		badRequest(ctx, "missing_required_field", "Отсутствует department_name")
		return
	}
	if req.LocationID <= 0 {
		badRequest(ctx, "invalid_location_id", "Некорректный location_id")
		return
	}

	manager := dto.Employee{
		FirstName:     req.Manager.FirstName,
		LastName:      req.Manager.LastName,
		Email:         req.Manager.Email,
		Phone:         req.Manager.Phone,
		HireDate:      req.Manager.HireDate,
		JobID:         req.Manager.JobID,
		Salary:        req.Manager.Salary,
		CommissionPct: req.Manager.CommissionPct,
		ManagerID:     req.Manager.ManagerID,
	}

	if msg := validateEmployee(manager); msg != "" {
		badRequest(ctx, "validation_failed", msg)
		return
	}

	dept := dto.Department{
		DepartmentName: req.DepartmentName,
		LocationID:     req.LocationID,
	}

	deptID, managerID, err := s.svc.CreateDepartment(ctx, dept, manager)
	if err != nil {
		if errors.Is(err, dto.ErrAlreadyExists) {
			conflict(ctx, "already_exists", "Отдел или сотрудник с такими данными уже существует")
			return
		}

		serverError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, createDepartmentResponse{
		Status:       "ok",
		DepartmentID: deptID,
		ManagerID:    managerID,
	})
}

// @Summary Список отделов
// @Tags    Departments
// @Produce json
// @Success 200 {array} dto.Department
// @Failure 500 {object} errorResponse
// @Router  /departments [get]
func (s *Service) listDepartments(ctx *fasthttp.RequestCtx) {
	rows, err := s.depts.List(ctx)
	if err != nil {
		serverError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Получить отдел
// @Tags    Departments
// @Produce json
// @Param   department_id path int true "Идентификатор отдела"
// @Success 200 {object} dto.Department
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /departments/{department_id} [get]
func (s *Service) getDepartment(ctx *fasthttp.RequestCtx) {
	idStr := ctx.UserValue("department_id").(string)

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		badRequest(ctx, "invalid_department_id", "Некорректный идентификатор отдела")
		return
	}

	row, err := s.depts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			notFound(ctx, "department_not_found", "Отдел не найден")
			return
		}

		serverError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, row)
}
