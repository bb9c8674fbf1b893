package api

import (
	"errors"

	"github.com/Artexxx/HR-Registry/internal/dto"

	"github.com/valyala/fasthttp"
)

// @Summary История назначений сотрудника
// @Tags    History
// @Produce json
// @Param   employee_id path int true "Идентификатор сотрудника"
// @Success 200 {array} dto.HistoryRecord
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse "employee not found"
// @Failure 500 {object} errorResponse
// @Router  /employees/{employee_id}/history [get]
func (s *Service) getEmployeeHistory(ctx *fasthttp.RequestCtx) {
	employeeID, okID := parseEmployeeID(ctx)
	if !okID {
		return
	}

	rows, err := s.svc.GetHistory(ctx, employeeID)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			notFound(ctx, "employee_not_found", ErrEmployeeNotFound.Error())
			return
		}

		serverError(ctx, err)
		return
	}

	// пустая история существующего сотрудника — это []
	if rows == nil {
		rows = []dto.HistoryRecord{}
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}
