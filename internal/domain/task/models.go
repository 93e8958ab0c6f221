package task

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/metadata"
)

// Title of a task. At least 3 characters after trimming.
type Title string

// Free-form description
type Description string

// DueDate is an optional deadline. Not validated against the clock; tasks may
// be created already overdue.
type DueDate time.Time

func (d DueDate) MarshalJSON() ([]byte, error) {
	return time.Time(d).MarshalJSON()
}

func (d *DueDate) UnmarshalJSON(data []byte) error {
	return (*time.Time)(d).UnmarshalJSON(data)
}

// Status is the workflow state of a task. The transition graph is open: any
// status may move to any other.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

// StatusFromString parses a wire status value
func StatusFromString(s string) (Status, error) {
	switch Status(s) {
	case StatusTodo, StatusInProgress, StatusBlocked, StatusDone:
		return Status(s), nil
	default:
		return "", InvalidField{Field: "status", Reason: fmt.Sprintf("[%v] is not a valid status", s)}
	}
}

// Priority of a task
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// PriorityFromString parses a wire priority value
func PriorityFromString(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return Priority(s), nil
	default:
		return "", InvalidField{Field: "priority", Reason: fmt.Sprintf("[%v] is not a valid priority", s)}
	}
}

// Rank orders priorities for sorting: critical > high > medium > low.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

const titleMinLength = 3

// Wire sort keys for task listings. Anything else falls back to SortCreatedAt.
const (
	SortCreatedAt     = "createdAt"
	SortCreatedAtDesc = "-createdAt"
	SortPriority      = "priority"
)

// A Task that has yet to be persisted
type NewTask struct {
	Title       Title
	Description *Description
	AssigneeID  *uuid.UUID
	Status      Status
	Priority    Priority
	DueDate     *DueDate
}

// A Task that has been persisted. Every Task belongs to exactly one Project
// for its whole life; ProjectID never changes.
type Task struct {
	ID          uuid.UUID         `json:"id"`
	ProjectID   uuid.UUID         `json:"project_id"`
	Title       Title             `json:"title"`
	Description *Description      `json:"description,omitempty"`
	AssigneeID  *uuid.UUID        `json:"assignee_id,omitempty"`
	Status      Status            `json:"status"`
	Priority    Priority          `json:"priority"`
	DueDate     *DueDate          `json:"due_date,omitempty"`
	Metadata    metadata.Metadata `json:"metadata"`
}

func (t Task) RecordID() uuid.UUID {
	return t.ID
}

func (t Task) RecordMeta() metadata.Metadata {
	return t.Metadata
}

func (t Task) WithID(id uuid.UUID) Task {
	t.ID = id
	return t
}

func (t Task) WithMeta(meta metadata.Metadata) Task {
	t.Metadata = meta
	return t
}

// Update carries the caller-editable fields of a Task. A nil AssigneeID
// unassigns the task.
type Update struct {
	Title       Title
	Description *Description
	AssigneeID  *uuid.UUID
	Status      Status
	Priority    Priority
	DueDate     *DueDate
}

// ValidateTitle trims and checks a task title
func ValidateTitle(title Title) (Title, error) {
	trimmed := Title(strings.TrimSpace(string(title)))
	if utf8.RuneCountInString(string(trimmed)) < titleMinLength {
		return "", InvalidField{
			Field:  "title",
			Reason: fmt.Sprintf("must be at least %d characters", titleMinLength),
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
// entity's constraints
type InvalidField struct {
	Field  string
	Reason string
}

func (e InvalidField) Error() string {
	return fmt.Sprintf("Field [%v] is invalid: %v", e.Field, e.Reason)
}
