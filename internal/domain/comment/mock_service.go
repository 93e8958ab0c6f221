package comment

import (
	"context"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/authz"
	"github.com/tasklink/tasklink/internal/domain/paging"
)

var (
	MockDomainComment = Comment{
		ID:       uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		TaskID:   uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		AuthorID: uuid.MustParse("44444444-4444-4444-4444-444444444444"),
		Body:     "mock-comment",
	}
	MockDomainCommentsPage = paging.Result[Comment]{
		Items:    []Comment{MockDomainComment},
		Page:     1,
		PageSize: 20,
		Total:    1,
	}
)

// MockCommentsService is a mock of the comment Service interface that records
// calls and allows per-method overrides.
type MockCommentsService struct {
	CreateCalled   uint
	CreateOverride func() (*Comment, error)
	ListCalled     uint
	ListOverride   func() (*paging.Result[Comment], error)
	DeleteCalled   uint
	DeleteOverride func() error
}

func (m *MockCommentsService) Create(ctx context.Context, principal authz.Principal, taskID uuid.UUID, newComment *NewComment) (*Comment, error) {
	m.CreateCalled++
	if m.CreateOverride != nil {
		return m.CreateOverride()
	}
	mock := MockDomainComment
	return &mock, nil
}

func (m *MockCommentsService) List(ctx context.Context, taskID uuid.UUID, query paging.Query) (*paging.Result[Comment], error) {
	m.ListCalled++
	if m.ListOverride != nil {
		return m.ListOverride()
	}
	mock := MockDomainCommentsPage
	return &mock, nil
}

func (m *MockCommentsService) Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) error {
	m.DeleteCalled++
	if m.DeleteOverride != nil {
		return m.DeleteOverride()
	}
	return nil
}
