package comment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/metadata"
)

// Body of a comment. Non-empty after trimming.
type Body string

// A Comment that has yet to be persisted
type NewComment struct {
	Body Body
}

// A Comment that has been persisted. Comments hang off a Task and carry their
// author; the body is never editable after creation.
type Comment struct {
	ID       uuid.UUID         `json:"id"`
	TaskID   uuid.UUID         `json:"task_id"`
	AuthorID uuid.UUID         `json:"author_id"`
	Body     Body              `json:"body"`
	Metadata metadata.Metadata `json:"metadata"`
}

func (c Comment) RecordID() uuid.UUID {
	return c.ID
}

func (c Comment) RecordMeta() metadata.Metadata {
	return c.Metadata
}

func (c Comment) WithID(id uuid.UUID) Comment {
	c.ID = id
	return c
}

func (c Comment) WithMeta(meta metadata.Metadata) Comment {
	c.Metadata = meta
	return c
}

// ValidateBody trims and checks a comment body
func ValidateBody(body Body) (Body, error) {
	trimmed := Body(strings.TrimSpace(string(body)))
	if len(trimmed) == 0 {
		return "", InvalidField{Field: "body", Reason: "must not be empty"}
	}
	return trimmed, nil
}

// InvalidField is returned when a caller-supplied field violates this
// entity's constraints
type InvalidField struct {
	Field  string
	Reason string
}

func (e InvalidField) Error() string {
	return fmt.Sprintf("Field [%v] is invalid: %v", e.Field, e.Reason)
}
