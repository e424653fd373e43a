package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/staffdesk/console/domain"
	"github.com/staffdesk/console/gateway"
)

type employeeGateway struct {
	client *Client
}

// NewEmployeeGateway creates the /employees resource gateway.
func NewEmployeeGateway(client *Client) gateway.Employees {
	return &employeeGateway{client: client}
}

func (g *employeeGateway) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	if err := g.client.do(ctx, fasthttp.MethodGet, "/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (g *employeeGateway) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	var employee domain.Employee
	if err := g.client.do(ctx, fasthttp.MethodGet, fmt.Sprintf("/employees/%d", id), nil, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (g *employeeGateway) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	var created domain.Employee
	if err := g.client.do(ctx, fasthttp.MethodPost, "/employees", employee, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *employeeGateway) Update(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	if employee == nil || employee.ID == 0 {
		return nil, domain.ErrInvalidPayload
	}
	var updated domain.Employee
	if err := g.client.do(ctx, fasthttp.MethodPut, fmt.Sprintf("/employees/%d", employee.ID), employee, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *employeeGateway) Patch(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Employee, error) {
	var updated domain.Employee
	if err := g.client.do(ctx, fasthttp.MethodPatch, fmt.Sprintf("/employees/%d", id), updates, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *employeeGateway) Delete(ctx context.Context, id int64) error {
	return g.client.do(ctx, fasthttp.MethodDelete, fmt.Sprintf("/employees/%d", id), nil, nil)
}

func (g *employeeGateway) ByDepartment(ctx context.Context, departmentID int64) ([]domain.Employee, error) {
	var employees []domain.Employee
	path := fmt.Sprintf("/employees/department/%d", departmentID)
	if err := g.client.do(ctx, fasthttp.MethodGet, path, nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (g *employeeGateway) Search(ctx context.Context, query string) ([]domain.Employee, error) {
	var employees []domain.Employee
	path := "/employees/search?query=" + url.QueryEscape(query)
	if err := g.client.do(ctx, fasthttp.MethodGet, path, nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (g *employeeGateway) BySalaryRange(ctx context.Context, min, max float64) ([]domain.Employee, error) {
	var employees []domain.Employee
	path := fmt.Sprintf("/employees/salary-range?min=%g&max=%g", min, max)
	if err := g.client.do(ctx, fasthttp.MethodGet, path, nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}
