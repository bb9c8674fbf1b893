package api

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Artexxx/HR-Registry/internal/dto"
)

var regexDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func checkDate(field, value string) string {
	if !regexDate.MatchString(value) || !validDate(value) {
		return fmt.Sprintf("invalid value in field '%s'=%s", field, value)
	}

	return ""
}

func checkEmail(field, value string) string {
	if !strings.Contains(value, "@") {
		return fmt.Sprintf("invalid value in field '%s'=%s", field, value)
	}

	return ""
}

func validateEmployee(e dto.Employee) string {
	if strings.TrimSpace(e.LastName) == "" {
		return "required field 'last_name'"
	}

	if strings.TrimSpace(e.Email) == "" {
		return "required field 'email'"
	}

	if msg := checkEmail("email", strings.TrimSpace(e.Email)); msg != "" {
		return msg
	}

	if strings.TrimSpace(e.HireDate) == "" {
		return "required field 'hire_date'"
	}

	if msg := checkDate("hire_date", strings.TrimSpace(e.HireDate)); msg != "" {
		return msg
	}

	if strings.TrimSpace(e.JobID) == "" {
		return "required field 'job_id'"
	}

	if e.Salary <= 0 {
		return fmt.Sprintf("invalid value in field 'salary'=%v", e.Salary)
	}

	if e.CommissionPct != nil && (*e.CommissionPct < 0 || *e.CommissionPct > 1) {
		return fmt.Sprintf("invalid value in field 'commission_pct'=%v", *e.CommissionPct)
	}

	if e.ManagerID != nil {
		if *e.ManagerID < 1 {
			return fmt.Sprintf("invalid value in field 'manager_id'=%d", *e.ManagerID)
		}

		if e.EmployeeID != 0 && *e.ManagerID == e.EmployeeID {
			return "invalid value in field 'manager_id': manager is the employee"
		}
	}

	return ""
}
