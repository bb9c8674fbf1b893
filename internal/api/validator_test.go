package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Artexxx/HR-Registry/internal/dto"
)

func validEmployee() dto.Employee {
	return dto.Employee{
		LastName: "Иванова",
		Email:    "anna@company.ru",
		HireDate: "2020-02-04",
		JobID:    "IT_PROG",
		Salary:   95000,
	}
}

func TestValidateEmployee(t *testing.T) {
	commission := 0.15
	badCommission := 1.5
	manager := int64(100)

	tests := []struct {
		name   string
		mutate func(e *dto.Employee)
		want   string
	}{
		{
			name:   "valid",
			mutate: func(e *dto.Employee) {},
			want:   "",
		},
		{
			name:   "valid with commission and manager",
			mutate: func(e *dto.Employee) { e.CommissionPct = &commission; e.ManagerID = &manager },
			want:   "",
		},
		{
			name:   "missing last_name",
			mutate: func(e *dto.Employee) { e.LastName = "  " },
			want:   "required field 'last_name'",
		},
		{
			name:   "missing email",
			mutate: func(e *dto.Employee) { e.Email = "" },
			want:   "required field 'email'",
		},
		{
			name:   "email without at",
			mutate: func(e *dto.Employee) { e.Email = "anna.company.ru" },
			want:   "invalid value in field 'email'=anna.company.ru",
		},
		{
			name:   "bad hire_date format",
			mutate: func(e *dto.Employee) { e.HireDate = "04.02.2020" },
			want:   "invalid value in field 'hire_date'=04.02.2020",
		},
		{
			name:   "impossible hire_date",
			mutate: func(e *dto.Employee) { e.HireDate = "2020-13-40" },
			want:   "invalid value in field 'hire_date'=2020-13-40",
		},
		{
			name:   "missing job_id",
			mutate: func(e *dto.Employee) { e.JobID = "" },
			want:   "required field 'job_id'",
		},
		{
			name:   "non-positive salary",
			mutate: func(e *dto.Employee) { e.Salary = 0 },
			want:   "invalid value in field 'salary'=0",
		},
		{
			name:   "commission out of range",
			mutate: func(e *dto.Employee) { e.CommissionPct = &badCommission },
			want:   "invalid value in field 'commission_pct'=1.5",
		},
		{
			name: "manager is the employee",
			mutate: func(e *dto.Employee) {
				e.EmployeeID = 104
				self := int64(104)
				e.ManagerID = &self
			},
			want: "invalid value in field 'manager_id': manager is the employee",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := validEmployee()
			tc.mutate(&e)

			assert.Equal(t, tc.want, validateEmployee(e))
		})
	}
}
