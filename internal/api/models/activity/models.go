package activity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	domainActivity "github.com/tasklink/tasklink/internal/domain/activity"
)

// Entry is the API model of an audit trail entry. OccurredAt is when the
// action it describes happened.
type Entry struct {
	ID         uuid.UUID       `json:"id" swaggertype:"string" format:"uuid"`
	EntityType string          `json:"entity_type" example:"task"`
	EntityID   uuid.UUID       `json:"entity_id" swaggertype:"string" format:"uuid"`
	Action     string          `json:"action" example:"updated"`
	ActorID    uuid.UUID       `json:"actor_id" swaggertype:"string" format:"uuid"`
	Snapshot   json.RawMessage `json:"snapshot,omitempty" swaggertype:"object"`
	OccurredAt time.Time       `json:"occurred_at" swaggertype:"string" format:"date-time"`
}

func FromDomainEntry(e *domainActivity.Entry) Entry {
	return Entry{
		ID:         e.ID,
		EntityType: string(e.EntityType),
		EntityID:   e.EntityID,
		Action:     string(e.Action),
		ActorID:    e.ActorID,
		Snapshot:   e.Snapshot,
		OccurredAt: time.Time(e.Metadata.CreatedAt),
	}
}
