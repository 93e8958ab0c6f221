// activity holds the audit trail models: one Entry per successful mutation of
// a resource, recorded best-effort and swept out after a retention window.
package activity

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/metadata"
)

// EntityType names the kind of resource an Entry is about
type EntityType string

const (
	EntityProject EntityType = "project"
	EntityTask    EntityType = "task"
	EntityComment EntityType = "comment"
)

// Action names what happened to the resource
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// NewEntry is an Entry that has yet to be persisted
type NewEntry struct {
	EntityType EntityType
	EntityID   uuid.UUID
	Action     Action
	ActorID    uuid.UUID
	Snapshot   json.RawMessage
}

// Entry is a persisted audit record. Its creation time doubles as the
// occurred-at time of the action it describes.
type Entry struct {
	ID         uuid.UUID         `json:"id"`
	EntityType EntityType        `json:"entity_type"`
	EntityID   uuid.UUID         `json:"entity_id"`
	Action     Action            `json:"action"`
	ActorID    uuid.UUID         `json:"actor_id"`
	Snapshot   json.RawMessage   `json:"snapshot,omitempty"`
	Metadata   metadata.Metadata `json:"metadata"`
}

func (e Entry) RecordID() uuid.UUID {
	return e.ID
}

func (e Entry) RecordMeta() metadata.Metadata {
	return e.Metadata
}

func (e Entry) WithID(id uuid.UUID) Entry {
	e.ID = id
	return e
}

func (e Entry) WithMeta(meta metadata.Metadata) Entry {
	e.Metadata = meta
	return e
}

// SnapshotOf captures a JSON snapshot of a record for the audit trail. A
// record that cannot be marshalled yields a nil snapshot rather than an
// error; the trail is best-effort.
func SnapshotOf(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
