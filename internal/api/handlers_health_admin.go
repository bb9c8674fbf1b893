package api

import (
	"fmt"

	"github.com/valyala/fasthttp"
)

// @Summary Проверка здоровья сервиса
// @Tags    Admin
// @Success 200 {object} okResponse
// @Router  /health [get]
func (s *Service) healthHandler(ctx *fasthttp.RequestCtx) {
	ok(ctx, "OK")
}

// @Summary Очистка данных стенда (truncate, справочники не трогаем)
// @Tags    Admin
// @Success 200 {object} okResponse
// @Failure 500 {object} errorResponse
// @Router  /admin/reset [post]
func (s *Service) resetHandler(ctx *fasthttp.RequestCtx) {
	if err := s.events.ResetAll(ctx); err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("events.ResetAll: %w", err))
		return
	}

	ok(ctx, "Все данные очищены")
}

// @Summary Обработанные Kafka-события
// @Tags    Admin
// @Produce json
// @Success 200 {array} dto.KafkaEvent
// @Failure 500 {object} errorResponse
// @Router  /events [get]
func (s *Service) listEvents(ctx *fasthttp.RequestCtx) {
	rows, err := s.events.ListEvents(ctx)
	if err != nil {
		serverError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Сообщения в DLQ
// @Tags    Admin
// @Produce json
// @Success 200 {array} dto.KafkaDLQ
// @Failure 500 {object} errorResponse
// @Router  /dlq [get]
func (s *Service) listDLQ(ctx *fasthttp.RequestCtx) {
	rows, err := s.events.ListDLQ(ctx)
	if err != nil {
		serverError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}
