package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/api/models/common"
	domainTask "github.com/tasklink/tasklink/internal/domain/task"
)

// NewTask is the API model for creating a Task. Status and Priority are
// optional and default downstream to todo/medium.
type NewTask struct {
	Title       string     `json:"title" binding:"required" example:"Ship it"`
	Description *string    `json:"description,omitempty"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty" swaggertype:"string" format:"uuid"`
	Status      string     `json:"status,omitempty" binding:"omitempty,taskStatus" example:"todo"`
	Priority    string     `json:"priority,omitempty" binding:"omitempty,taskPriority" example:"medium"`
	DueDate     *time.Time `json:"due_date,omitempty" swaggertype:"string" format:"date-time"`
}

func (t *NewTask) ToDomainNewTask() domainTask.NewTask {
	return domainTask.NewTask{
		Title:       domainTask.Title(t.Title),
		Description: (*domainTask.Description)(t.Description),
		AssigneeID:  t.AssigneeID,
		Status:      domainTask.Status(t.Status),
		Priority:    domainTask.Priority(t.Priority),
		DueDate:     (*domainTask.DueDate)(t.DueDate),
	}
}

// TaskUpdate is the API model for updating a Task. IfMatch is a body fallback
// for callers that cannot set the If-Match header.
type TaskUpdate struct {
	Title       string     `json:"title" binding:"required" example:"Ship it"`
	Description *string    `json:"description,omitempty"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty" swaggertype:"string" format:"uuid"`
	Status      string     `json:"status" binding:"required,taskStatus" example:"in_progress"`
	Priority    string     `json:"priority" binding:"required,taskPriority" example:"high"`
	DueDate     *time.Time `json:"due_date,omitempty" swaggertype:"string" format:"date-time"`
	IfMatch     *string    `json:"if_match,omitempty" example:"W/\"AAAAAAAAAAE=\""`
}

func (t *TaskUpdate) ToDomainUpdate() domainTask.Update {
	return domainTask.Update{
		Title:       domainTask.Title(t.Title),
		Description: (*domainTask.Description)(t.Description),
		AssigneeID:  t.AssigneeID,
		Status:      domainTask.Status(t.Status),
		Priority:    domainTask.Priority(t.Priority),
		DueDate:     (*domainTask.DueDate)(t.DueDate),
	}
}

// Task is the API model of a persisted Task
type Task struct {
	ID          uuid.UUID       `json:"id" swaggertype:"string" format:"uuid"`
	ProjectID   uuid.UUID       `json:"project_id" swaggertype:"string" format:"uuid"`
	Title       string          `json:"title" example:"Ship it"`
	Description *string         `json:"description,omitempty"`
	AssigneeID  *uuid.UUID      `json:"assignee_id,omitempty" swaggertype:"string" format:"uuid"`
	Status      string          `json:"status" example:"todo"`
	Priority    string          `json:"priority" example:"medium"`
	DueDate     *time.Time      `json:"due_date,omitempty" swaggertype:"string" format:"date-time"`
	Metadata    common.Metadata `json:"metadata"`
}

func FromDomainTask(t *domainTask.Task) Task {
	return Task{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       string(t.Title),
		Description: (*string)(t.Description),
		AssigneeID:  t.AssigneeID,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     (*time.Time)(t.DueDate),
		Metadata:    common.FromDomainMetadata(t.Metadata),
	}
}
