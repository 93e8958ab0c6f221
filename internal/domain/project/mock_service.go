package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/authz"
	"github.com/tasklink/tasklink/internal/domain/metadata"
	"github.com/tasklink/tasklink/internal/domain/paging"
)

var (
	MockDomainProject = Project{
		ID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name: "mock-project",
	}
	MockDomainProjectsPage = paging.Result[Project]{
		Items:    []Project{MockDomainProject},
		Page:     1,
		PageSize: 20,
		Total:    1,
	}
)

// MockProjectsService is a mock of the project Service interface that records
// calls and allows per-method overrides.
type MockProjectsService struct {
	CreateCalled   uint
	CreateOverride func() (*Project, error)
	GetCalled      uint
	GetOverride    func() (*Project, error)
	ListCalled     uint
	ListOverride   func() (*paging.Result[Project], error)
	UpdateCalled   uint
	UpdateOverride func() (*Project, error)
	DeleteCalled   uint
	DeleteOverride func() error
}

func (m *MockProjectsService) Create(ctx context.Context, principal authz.Principal, newProject *NewProject) (*Project, error) {
	m.CreateCalled++
	if m.CreateOverride != nil {
		return m.CreateOverride()
	}
	mock := MockDomainProject
	return &mock, nil
}

func (m *MockProjectsService) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	m.GetCalled++
	if m.GetOverride != nil {
		return m.GetOverride()
	}
	mock := MockDomainProject
	return &mock, nil
}

func (m *MockProjectsService) List(ctx context.Context, query paging.Query) (*paging.Result[Project], error) {
	m.ListCalled++
	if m.ListOverride != nil {
		return m.ListOverride()
	}
	mock := MockDomainProjectsPage
	return &mock, nil
}

func (m *MockProjectsService) Update(ctx context.Context, principal authz.Principal, id uuid.UUID, expected metadata.Version, update *Update) (*Project, error) {
	m.UpdateCalled++
	if m.UpdateOverride != nil {
		return m.UpdateOverride()
	}
	mock := MockDomainProject
	return &mock, nil
}

func (m *MockProjectsService) Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) error {
	m.DeleteCalled++
	if m.DeleteOverride != nil {
		return m.DeleteOverride()
	}
	return nil
}
