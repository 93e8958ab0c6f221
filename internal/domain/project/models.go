package project

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/metadata"
)

// Name of a project. 3 to 80 characters after trimming.
type Name string

// Free-form description
type Description string

const (
	nameMinLength = 3
	nameMaxLength = 80
)

// Wire sort keys for project listings. Anything else falls back to SortCreatedAt.
const (
	SortCreatedAt     = "createdAt"
	SortCreatedAtDesc = "-createdAt"
	SortName          = "name"
)

// A Project that has yet to be persisted
type NewProject struct {
	Name        Name
	Description *Description
	OwnerID     uuid.UUID
}

// A Project that has been persisted. It is identified by its ID and versioned
// according to its Metadata Version.
type Project struct {
	ID          uuid.UUID         `json:"id"`
	Name        Name              `json:"name"`
	Description *Description      `json:"description,omitempty"`
	OwnerID     uuid.UUID         `json:"owner_id"`
	Metadata    metadata.Metadata `json:"metadata"`
}

func (p Project) RecordID() uuid.UUID {
	return p.ID
}

func (p Project) RecordMeta() metadata.Metadata {
	return p.Metadata
}

func (p Project) WithID(id uuid.UUID) Project {
	p.ID = id
	return p
}

func (p Project) WithMeta(meta metadata.Metadata) Project {
	p.Metadata = meta
	return p
}

// Update carries the caller-editable fields of a Project
type Update struct {
	Name        Name
	Description *Description
}

// ValidateName trims and checks a project name, returning the cleaned-up
// value or an InvalidField describing what is wrong with it.
func ValidateName(name Name) (Name, error) {
	trimmed := Name(strings.TrimSpace(string(name)))
	// Length in characters, not bytes, so multibyte names aren't short-changed
	if length := utf8.RuneCountInString(string(trimmed)); length < nameMinLength || length > nameMaxLength {
		return "", InvalidField{
			Field:  "name",
			Reason: fmt.Sprintf("must be %d to %d characters", nameMinLength, nameMaxLength),
		}
	}
	return trimmed, nil
}

func trimDescription(description *Description) *Description {
	if description == nil {
		return nil
	}
	trimmed := Description(strings.TrimSpace(string(*description)))
	return &trimmed
}

// InvalidField is returned when a caller-supplied field violates this
// entity's constraints. Surfaced with field-level detail; storage is never
// touched.
type InvalidField struct {
	Field  string
	Reason string
}

func (e InvalidField) Error() string {
	return fmt.Sprintf("Field [%v] is invalid: %v", e.Field, e.Reason)
}
