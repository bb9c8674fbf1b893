package consumer

import (
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Artexxx/HR-Registry/internal/dto"
)

func NewAssignmentsRunner(
	bootstrap string,
	topic string,
	groupID string,
	events EventsRepository,
	applier AssignmentApplier,
	log zerolog.Logger,
) *Runner {
	h := &handler{
		events:      events,
		applier:     applier,
		log:         log.With().Str("consumer", "assignments").Logger(),
		commitOnDLQ: false,
	}

	return newRunner(bootstrap, groupID, topic, h, log)
}

func (h *handler) processAssignment(sess sarama.ConsumerGroupSession, msg *sarama.ConsumerMessage, env Envelope[AssignmentCommandPayload]) bool {
	ctx := sess.Context()

	msgID, err := uuid.Parse(env.MessageID)
	if err != nil {
		h.toDLQ(ctx, msg, "missing required field message_id")
		return h.commitOnDLQ
	}

	exists, err := h.events.ExistsMessage(ctx, msgID)
	if err != nil {
		h.toDLQ(ctx, msg, fmt.Sprintf("events.ExistsMessage: db error exists: %s", err.Error()))
		return h.commitOnDLQ
	}
	if exists {
		h.log.Info().
			Str("message_id", env.MessageID).
			Str("employee_id", env.EmployeeID).
			Msg("duplicate message, skip (idempotency)")
		return true // коммитим — событие уже обработано ранее
	}

	if verr := validateAssignment(env.Payload); verr != "" {
		h.toDLQ(ctx, msg, verr)
		return h.commitOnDLQ
	}

	if err := h.events.InsertEvent(ctx, dto.KafkaEvent{
		MessageID: msgID,
		Topic:     msg.Topic,
		Key:       string(msg.Key),
		Partition: int(msg.Partition),
		Offset:    msg.Offset,
		Payload:   append([]byte(nil), msg.Value...),
	}); err != nil {
		h.toDLQ(ctx, msg, fmt.Sprintf("events.InsertEvent: db error insert assignment: %s", err.Error()))

		return h.commitOnDLQ
	}

	appended, err := h.applier.ApplyAssignment(ctx, dto.AssignmentChange{
		EmployeeID:   env.Payload.EmployeeID,
		JobID:        env.Payload.JobID,
		DepartmentID: env.Payload.DepartmentID,
	})
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			h.toDLQ(ctx, msg, fmt.Sprintf("employee %d not found", env.Payload.EmployeeID))
			return h.commitOnDLQ
		}

		h.toDLQ(ctx, msg, fmt.Sprintf("applier.ApplyAssignment: %v", err))
		return h.commitOnDLQ
	}

	if !appended {
		h.log.Info().
			Int64("employee_id", env.Payload.EmployeeID).
			Str("job_id", env.Payload.JobID).
			Msg("assignment unchanged, no history entry")
	}

	return true
}
