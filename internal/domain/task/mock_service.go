package task

import (
	"context"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/authz"
	"github.com/tasklink/tasklink/internal/domain/metadata"
	"github.com/tasklink/tasklink/internal/domain/paging"
)

var (
	MockDomainTask = Task{
		ID:        uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		ProjectID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Title:     "mock-task",
		Status:    StatusTodo,
		Priority:  PriorityMedium,
	}
	MockDomainTasksPage = paging.Result[Task]{
		Items:    []Task{MockDomainTask},
		Page:     1,
		PageSize: 20,
		Total:    1,
	}
)

// MockTasksService is a mock of the task Service interface that records calls
// and allows per-method overrides.
type MockTasksService struct {
	CreateCalled   uint
	CreateOverride func() (*Task, error)
	GetCalled      uint
	GetOverride    func() (*Task, error)
	ListCalled     uint
	ListOverride   func() (*paging.Result[Task], error)
	UpdateCalled   uint
	UpdateOverride func() (*Task, error)
	DeleteCalled   uint
	DeleteOverride func() error
}

func (m *MockTasksService) Create(ctx context.Context, principal authz.Principal, projectID uuid.UUID, newTask *NewTask) (*Task, error) {
	m.CreateCalled++
	if m.CreateOverride != nil {
		return m.CreateOverride()
	}
	mock := MockDomainTask
	return &mock, nil
}

func (m *MockTasksService) Get(ctx context.Context, projectID uuid.UUID, id uuid.UUID) (*Task, error) {
	m.GetCalled++
	if m.GetOverride != nil {
		return m.GetOverride()
	}
	mock := MockDomainTask
	return &mock, nil
}

func (m *MockTasksService) List(ctx context.Context, projectID uuid.UUID, query paging.Query) (*paging.Result[Task], error) {
	m.ListCalled++
	if m.ListOverride != nil {
		return m.ListOverride()
	}
	mock := MockDomainTasksPage
	return &mock, nil
}

func (m *MockTasksService) Update(ctx context.Context, principal authz.Principal, projectID uuid.UUID, id uuid.UUID, expected metadata.Version, update *Update) (*Task, error) {
	m.UpdateCalled++
	if m.UpdateOverride != nil {
		return m.UpdateOverride()
	}
	mock := MockDomainTask
	return &mock, nil
}

func (m *MockTasksService) Delete(ctx context.Context, principal authz.Principal, projectID uuid.UUID, id uuid.UUID) error {
	m.DeleteCalled++
	if m.DeleteOverride != nil {
		return m.DeleteOverride()
	}
	return nil
}
