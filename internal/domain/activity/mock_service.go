package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/paging"
)

var (
	MockDomainEntry = Entry{
		ID:         uuid.MustParse("55555555-5555-5555-5555-555555555555"),
		EntityType: EntityProject,
		EntityID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Action:     ActionCreated,
		ActorID:    uuid.MustParse("44444444-4444-4444-4444-444444444444"),
	}
	MockDomainEntriesPage = paging.Result[Entry]{
		Items:    []Entry{MockDomainEntry},
		Page:     1,
		PageSize: 20,
		Total:    1,
	}
)

// MockActivityService is a mock of the activity Service interface that records
// calls and allows per-method overrides.
type MockActivityService struct {
	RecordCalled      uint
	RecordOverride    func() error
	RecordedEntries   []NewEntry
	ForEntityCalled   uint
	ForEntityOverride func() (*paging.Result[Entry], error)
	SweepCalled       uint
	SweepCutoff       time.Time
	SweepOverride     func() (uint, error)
}

func (m *MockActivityService) Record(ctx context.Context, entry *NewEntry) error {
	m.RecordCalled++
	m.RecordedEntries = append(m.RecordedEntries, *entry)
	if m.RecordOverride != nil {
		return m.RecordOverride()
	}
	return nil
}

func (m *MockActivityService) ForEntity(ctx context.Context, entityID uuid.UUID, query paging.Query) (*paging.Result[Entry], error) {
	m.ForEntityCalled++
	if m.ForEntityOverride != nil {
		return m.ForEntityOverride()
	}
	mock := MockDomainEntriesPage
	return &mock, nil
}

func (m *MockActivityService) Sweep(ctx context.Context, before time.Time) (uint, error) {
	m.SweepCalled++
	m.SweepCutoff = before
	if m.SweepOverride != nil {
		return m.SweepOverride()
	}
	return 0, nil
}
