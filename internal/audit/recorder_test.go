package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Artexxx/HR-Registry/internal/dto"
)

type fakeAppender struct {
	entries []dto.JobHistoryEntry
	err     error
}

func (f *fakeAppender) Insert(_ context.Context, h dto.JobHistoryEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, h)
	return nil
}

func int64ptr(v int64) *int64 { return &v }

func TestRecordIfChanged_Creation_AppendsUnconditionally(t *testing.T) {
	appender := &fakeAppender{}
	recorder := NewRecorder(zerolog.Nop())

	after := dto.Employee{
		EmployeeID:   104,
		JobID:        "IT_PROG",
		DepartmentID: int64ptr(60),
	}

	appended, err := recorder.RecordIfChanged(context.Background(), appender, after, nil)
	require.NoError(t, err)
	assert.True(t, appended)

	require.Len(t, appender.entries, 1)
	entry := appender.entries[0]
	assert.Equal(t, int64(104), entry.EmployeeID)
	assert.Equal(t, "IT_PROG", entry.JobID)
	require.NotNil(t, entry.DepartmentID)
	assert.Equal(t, int64(60), *entry.DepartmentID)
	assert.Nil(t, entry.EndDate, "новая запись всегда открыта")
}

func TestRecordIfChanged_UnchangedAssignment_NoAppend(t *testing.T) {
	appender := &fakeAppender{}
	recorder := NewRecorder(zerolog.Nop())

	before := dto.Employee{EmployeeID: 104, JobID: "IT_PROG", DepartmentID: int64ptr(60)}
	after := before
	after.Salary = 120000 // смена оклада — не смена назначения

	appended, err := recorder.RecordIfChanged(context.Background(), appender, after, &before)
	require.NoError(t, err)
	assert.False(t, appended)
	assert.Empty(t, appender.entries)
}

func TestRecordIfChanged_ChangedAssignment_AppendsNewValues(t *testing.T) {
	appender := &fakeAppender{}
	recorder := NewRecorder(zerolog.Nop())

	before := dto.Employee{EmployeeID: 104, JobID: "IT_PROG", DepartmentID: int64ptr(60)}
	after := dto.Employee{EmployeeID: 104, JobID: "AD_VP", DepartmentID: int64ptr(90)}

	appended, err := recorder.RecordIfChanged(context.Background(), appender, after, &before)
	require.NoError(t, err)
	assert.True(t, appended)

	require.Len(t, appender.entries, 1)
	entry := appender.entries[0]
	assert.Equal(t, "AD_VP", entry.JobID)
	require.NotNil(t, entry.DepartmentID)
	assert.Equal(t, int64(90), *entry.DepartmentID)
}

func TestRecordIfChanged_AppendFailure_Propagates(t *testing.T) {
	wantErr := errors.New("fk violation")
	appender := &fakeAppender{err: wantErr}
	recorder := NewRecorder(zerolog.Nop())

	after := dto.Employee{EmployeeID: 104, JobID: "IT_PROG"}

	appended, err := recorder.RecordIfChanged(context.Background(), appender, after, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, appended)
}
