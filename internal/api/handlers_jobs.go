package api

import (
	"errors"
	"strings"

	"github.com/Artexxx/HR-Registry/internal/dto"

	"github.com/valyala/fasthttp"
)

// @Summary Справочник должностей
// @Tags    Jobs
// @Produce json
// @Success 200 {array} dto.Job
// @Failure 500 {object} errorResponse
// @Router  /jobs [get]
func (s *Service) listJobs(ctx *fasthttp.RequestCtx) {
	rows, err := s.jobs.List(ctx)
	if err != nil {
		serverError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Получить должность
// @Tags    Jobs
// @Produce json
// @Param   job_id path string true "Код должности"
// @Success 200 {object} dto.Job
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /jobs/{job_id} [get]
func (s *Service) getJob(ctx *fasthttp.RequestCtx) {
	jobID := ctx.UserValue("job_id").(string)
	if strings.TrimSpace(jobID) == "" {
		badRequest(ctx, "invalid_job_id", "Некорректный код должности")
		return
	}

	row, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			notFound(ctx, "job_not_found", "Должность не найдена")
			return
		}

		serverError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, row)
}
