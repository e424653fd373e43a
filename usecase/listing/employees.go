package listing

import (
	"strings"

	"go.uber.org/zap"

	"github.com/staffdesk/console/domain"
	"github.com/staffdesk/console/gateway"
)

// NewEmployees builds the employee list controller. The filter matches
// case-insensitively across first name, last name, email, job title and
// department name.
func NewEmployees(gw gateway.Employees, logger *zap.Logger) *Controller[domain.Employee] {
	return NewController[domain.Employee](gw, employeeID, matchEmployee, logger)
}

func employeeID(e domain.Employee) int64 {
	return e.ID
}

func matchEmployee(e domain.Employee, needle string) bool {
	for _, field := range []string{e.FirstName, e.LastName, e.Email, e.JobTitle, e.DepartmentName()} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
