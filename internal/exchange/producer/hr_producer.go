package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Artexxx/HR-Registry/internal/dto"
)

type HRProducer struct {
	sp               sarama.SyncProducer
	topicAssignments string
	source           string
	log              zerolog.Logger
}

type Config struct {
	TopicAssignments string
	Source           string
}

func NewHRProducer(sp sarama.SyncProducer, cfg Config, log zerolog.Logger) *HRProducer {
	return &HRProducer{
		sp:               sp,
		topicAssignments: cfg.TopicAssignments,
		source:           cfg.Source,
		log:              log.With().Str("component", "HRProducer").Logger(),
	}
}

func (p *HRProducer) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}

// ProduceAssignment публикует событие о новом назначении сотрудника.
// Ключ сообщения — employee_id, чтобы события одного сотрудника
// попадали в одну партицию и сохраняли порядок.
func (p *HRProducer) ProduceAssignment(ctx context.Context, messageID uuid.UUID, e dto.Employee) error {
	env := Envelope[AssignmentPayload]{
		Kind:       "assignment",
		MessageID:  messageID.String(),
		EmployeeID: strconv.FormatInt(e.EmployeeID, 10),
		Payload: AssignmentPayload{
			EmployeeID:   e.EmployeeID,
			JobID:        e.JobID,
			DepartmentID: e.DepartmentID,
			Email:        e.Email,
		},
		Timestamp: time.Now().UTC(),
		Source:    p.source,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	return p.send(ctx, p.topicAssignments, env.EmployeeID, body, map[string]string{
		"event-kind":   "assignment",
		"source":       p.source,
		"content-type": "application/json",
	})
}

func (p *HRProducer) send(_ context.Context, topic, key string, value []byte, headers map[string]string) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}

	var hs []sarama.RecordHeader
	for k, v := range headers {
		hs = append(hs, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(value),
		Headers: hs,
	}

	part, off, err := p.sp.SendMessage(msg)
	if err != nil {
		p.log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Int("bytes", len(value)).
			Msg("failed to send kafka message")
		return fmt.Errorf("send kafka message: %w", err)
	}

	p.log.Info().
		Str("topic", topic).
		Str("key", key).
		Int32("partition", part).
		Int64("offset", off).
		Int("bytes", len(value)).
		Msg("kafka message sent")
	return nil
}
