package consumer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAssignment(t *testing.T) {
	badDept := int64(-5)
	goodDept := int64(60)

	tests := []struct {
		name    string
		payload AssignmentCommandPayload
		want    string
	}{
		{
			name:    "valid",
			payload: AssignmentCommandPayload{EmployeeID: 104, JobID: "IT_PROG", DepartmentID: &goodDept},
			want:    "",
		},
		{
			name:    "valid without department",
			payload: AssignmentCommandPayload{EmployeeID: 104, JobID: "IT_PROG"},
			want:    "",
		},
		{
			name:    "zero employee_id",
			payload: AssignmentCommandPayload{JobID: "IT_PROG"},
			want:    "invalid value in field 'employee_id'=0",
		},
		{
			name:    "blank job_id",
			payload: AssignmentCommandPayload{EmployeeID: 104, JobID: "   "},
			want:    "required field 'job_id'",
		},
		{
			name:    "negative department_id",
			payload: AssignmentCommandPayload{EmployeeID: 104, JobID: "IT_PROG", DepartmentID: &badDept},
			want:    "invalid value in field 'department_id'=-5",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validateAssignment(tc.payload))
		})
	}
}
