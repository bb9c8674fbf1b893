package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/Artexxx/HR-Registry/internal/dto"
)

type handler struct {
	events      EventsRepository
	applier     AssignmentApplier
	log         zerolog.Logger
	commitOnDLQ bool
}

func (h *handler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *handler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

func (h *handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var env Envelope[AssignmentCommandPayload]
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			h.toDLQ(sess.Context(), msg, fmt.Sprintf("invalid_json: %v", err))
			if h.commitOnDLQ {
				sess.MarkMessage(msg, "")
			}
			continue
		}

		if ok := h.processAssignment(sess, msg, env); ok {
			sess.MarkMessage(msg, "")
		}
	}
	return nil
}

func (h *handler) toDLQ(ctx context.Context, msg *sarama.ConsumerMessage, reason string) {
	_ = h.events.InsertDLQ(ctx, dto.KafkaDLQ{
		Topic:   msg.Topic,
		Key:     string(msg.Key),
		Payload: append([]byte(nil), msg.Value...),
		Error:   reason,
	})

	h.log.Warn().
		Str("topic", msg.Topic).
		Int32("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Str("reason", reason).
		Msg("message sent to DLQ")
}
