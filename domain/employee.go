package domain

import "time"

// DepartmentRef is the embedded department record carried by an employee.
type DepartmentRef struct {
	ID   int64  `json:"id"`
	Name string `json:"departmentName"`
}

// Employee mirrors the employee resource served by the remote API.
type Employee struct {
	ID          int64          `json:"id"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phoneNumber,omitempty"`
	JobTitle    string         `json:"jobTitle,omitempty"`
	Salary      float64        `json:"salary,omitempty"`
	HireDate    time.Time      `json:"hireDate,omitempty"`
	DateOfBirth time.Time      `json:"dateOfBirth,omitempty"`
	Address     string         `json:"address,omitempty"`
	IsActive    bool           `json:"isActive"`
	Department  *DepartmentRef `json:"department,omitempty"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// DepartmentName returns the assigned department name, empty when none.
func (e Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return e.Department.Name
}
