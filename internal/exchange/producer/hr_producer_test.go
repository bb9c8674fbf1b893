package producer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Artexxx/HR-Registry/internal/dto"
)

func int64ptr(v int64) *int64 { return &v }

func TestProduceAssignment_EnvelopeContents(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true

	sp := mocks.NewSyncProducer(t, cfg)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var env Envelope[AssignmentPayload]
		if err := json.Unmarshal(value, &env); err != nil {
			return err
		}

		assert.Equal(t, "assignment", env.Kind)
		assert.Equal(t, "104", env.EmployeeID)
		assert.Equal(t, "hr-registry-test", env.Source)
		assert.NotEmpty(t, env.MessageID)
		assert.Equal(t, int64(104), env.Payload.EmployeeID)
		assert.Equal(t, "AD_VP", env.Payload.JobID)
		require.NotNil(t, env.Payload.DepartmentID)
		assert.Equal(t, int64(90), *env.Payload.DepartmentID)

		return nil
	})

	p := NewHRProducer(sp, Config{
		TopicAssignments: "hr.assignments",
		Source:           "hr-registry-test",
	}, zerolog.Nop())

	err := p.ProduceAssignment(context.Background(), uuid.New(), dto.Employee{
		EmployeeID:   104,
		Email:        "anna@company.ru",
		JobID:        "AD_VP",
		DepartmentID: int64ptr(90),
	})
	require.NoError(t, err)

	require.NoError(t, p.Close())
}

func TestProduceAssignment_SendFailure(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true

	sp := mocks.NewSyncProducer(t, cfg)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewHRProducer(sp, Config{TopicAssignments: "hr.assignments", Source: "t"}, zerolog.Nop())

	err := p.ProduceAssignment(context.Background(), uuid.New(), dto.Employee{EmployeeID: 1, JobID: "IT_PROG"})
	require.Error(t, err)

	require.NoError(t, p.Close())
}

func TestProduceAssignment_NilProducer(t *testing.T) {
	p := &HRProducer{}

	err := p.ProduceAssignment(context.Background(), uuid.New(), dto.Employee{EmployeeID: 1, JobID: "IT_PROG"})
	assert.Error(t, err)
	assert.NoError(t, p.Close())
}
