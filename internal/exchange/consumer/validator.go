package consumer

import (
	"fmt"
	"strings"
)

func validateAssignment(p AssignmentCommandPayload) string {
	if p.EmployeeID < 1 {
		return fmt.Sprintf("invalid value in field 'employee_id'=%d", p.EmployeeID)
	}

	if strings.TrimSpace(p.JobID) == "" {
		return "required field 'job_id'"
	}

	if p.DepartmentID != nil && *p.DepartmentID < 1 {
		return fmt.Sprintf("invalid value in field 'department_id'=%d", *p.DepartmentID)
	}

	return ""
}
