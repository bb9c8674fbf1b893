package audit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Artexxx/HR-Registry/internal/dto"
)

// HistoryAppender — приёмник записей истории. Сюда передаётся
// репозиторий, открытый поверх той же транзакции, что и запись
// сотрудника: падение Insert откатывает всю транзакцию.
type HistoryAppender interface {
	Insert(ctx context.Context, h dto.JobHistoryEntry) error
}

// Recorder ведёт append-only историю назначений. Вызывается из write-path
// сервиса сотрудников между записью строки и коммитом — замена
// строкового триггера БД явным хуком.
type Recorder struct {
	log zerolog.Logger
}

func NewRecorder(log zerolog.Logger) *Recorder {
	return &Recorder{
		log: log.With().Str("component", "AuditRecorder").Logger(),
	}
}

// RecordIfChanged добавляет запись истории, если назначение сотрудника
// изменилось. before == nil означает создание сотрудника — запись
// добавляется безусловно. Возвращает true, если запись была добавлена.
//
// Сам Recorder ничего не валидирует и не может отклонить внешнюю
// запись; любая его ошибка — это ошибка хранилища, которая роняет
// всю транзакцию вызывающего.
//
// Запись всегда только добавляется: end_date предыдущей открытой
// записи намеренно не проставляется (поведение исходной системы,
// см. DESIGN.md), так что у сотрудника может накопиться несколько
// записей с end_date = null.
func (r *Recorder) RecordIfChanged(ctx context.Context, history HistoryAppender, after dto.Employee, before *dto.Employee) (bool, error) {
	if before != nil && before.JobID == after.JobID {
		return false, nil
	}

	entry := dto.JobHistoryEntry{
		EmployeeID:   after.EmployeeID,
		JobID:        after.JobID,
		DepartmentID: after.DepartmentID,
	}

	if err := history.Insert(ctx, entry); err != nil {
		return false, fmt.Errorf("history.Insert: %w", err)
	}

	event := r.log.Info().
		Int64("employee_id", after.EmployeeID).
		Str("job_id", after.JobID)
	if before != nil {
		event = event.Str("prev_job_id", before.JobID)
	}
	event.Msg("job history entry appended")

	return true, nil
}
