package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/staffdesk/console/domain"
	"github.com/staffdesk/console/gateway"
)

type departmentGateway struct {
	client *Client
}

// NewDepartmentGateway creates the /departments resource gateway.
func NewDepartmentGateway(client *Client) gateway.Departments {
	return &departmentGateway{client: client}
}

func (g *departmentGateway) List(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	if err := g.client.do(ctx, fasthttp.MethodGet, "/departments", nil, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

func (g *departmentGateway) Get(ctx context.Context, id int64) (*domain.Department, error) {
	var department domain.Department
	if err := g.client.do(ctx, fasthttp.MethodGet, fmt.Sprintf("/departments/%d", id), nil, &department); err != nil {
		return nil, err
	}
	return &department, nil
}

func (g *departmentGateway) Create(ctx context.Context, department *domain.Department) (*domain.Department, error) {
	var created domain.Department
	if err := g.client.do(ctx, fasthttp.MethodPost, "/departments", department, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *departmentGateway) Update(ctx context.Context, department *domain.Department) (*domain.Department, error) {
	if department == nil || department.ID == 0 {
		return nil, domain.ErrInvalidPayload
	}
	var updated domain.Department
	if err := g.client.do(ctx, fasthttp.MethodPut, fmt.Sprintf("/departments/%d", department.ID), department, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *departmentGateway) Delete(ctx context.Context, id int64) error {
	return g.client.do(ctx, fasthttp.MethodDelete, fmt.Sprintf("/departments/%d", id), nil, nil)
}

func (g *departmentGateway) Employees(ctx context.Context, id int64) ([]domain.Employee, error) {
	var employees []domain.Employee
	if err := g.client.do(ctx, fasthttp.MethodGet, fmt.Sprintf("/departments/%d/employees", id), nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (g *departmentGateway) ByName(ctx context.Context, name string) (*domain.Department, error) {
	var department domain.Department
	path := "/departments/name/" + url.PathEscape(name)
	if err := g.client.do(ctx, fasthttp.MethodGet, path, nil, &department); err != nil {
		return nil, err
	}
	return &department, nil
}
