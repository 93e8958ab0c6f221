package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/activity"
	"github.com/tasklink/tasklink/internal/domain/comment"
	"github.com/tasklink/tasklink/internal/domain/project"
	"github.com/tasklink/tasklink/internal/domain/storage"
	"github.com/tasklink/tasklink/internal/domain/task"
)

func createdAsc[T storage.Record[T]](a, b T) bool {
	return time.Time(a.RecordMeta().CreatedAt).Before(time.Time(b.RecordMeta().CreatedAt))
}

func createdDesc[T storage.Record[T]](a, b T) bool {
	return time.Time(b.RecordMeta().CreatedAt).Before(time.Time(a.RecordMeta().CreatedAt))
}

// NewProjectStore returns an empty in-memory Project store
func NewProjectStore() storage.Store[project.Project] {
	return NewStore(Options[project.Project]{
		TextOf: func(p project.Project) []string {
			return []string{string(p.Name)}
		},
		Sorts: map[string]func(a, b project.Project) bool{
			project.SortCreatedAt:     createdAsc[project.Project],
			project.SortCreatedAtDesc: createdDesc[project.Project],
			project.SortName: func(a, b project.Project) bool {
				return a.Name < b.Name
			},
		},
		DefaultSort: project.SortCreatedAt,
	})
}

// NewTaskStore returns an empty in-memory Task store
func NewTaskStore() storage.Store[task.Task] {
	return NewStore(Options[task.Task]{
		TextOf: func(t task.Task) []string {
			return []string{string(t.Title)}
		},
		ParentOf: func(t task.Task) uuid.UUID {
			return t.ProjectID
		},
		Sorts: map[string]func(a, b task.Task) bool{
			task.SortCreatedAt:     createdAsc[task.Task],
			task.SortCreatedAtDesc: createdDesc[task.Task],
			task.SortPriority: func(a, b task.Task) bool {
				// Highest priority first
				return a.Priority.Rank() > b.Priority.Rank()
			},
		},
		DefaultSort: task.SortCreatedAt,
	})
}

// NewCommentStore returns an empty in-memory Comment store
func NewCommentStore() storage.Store[comment.Comment] {
	return NewStore(Options[comment.Comment]{
		ParentOf: func(c comment.Comment) uuid.UUID {
			return c.TaskID
		},
		Sorts: map[string]func(a, b comment.Comment) bool{
			"createdAt":             createdAsc[comment.Comment],
			comment.SortNewestFirst: createdDesc[comment.Comment],
		},
		DefaultSort: "createdAt",
	})
}

// NewActivityStore returns an empty in-memory activity Entry store
func NewActivityStore() storage.Store[activity.Entry] {
	return NewStore(Options[activity.Entry]{
		ParentOf: func(e activity.Entry) uuid.UUID {
			return e.EntityID
		},
		Sorts: map[string]func(a, b activity.Entry) bool{
			"createdAt":              createdAsc[activity.Entry],
			activity.SortNewestFirst: createdDesc[activity.Entry],
		},
		DefaultSort: "createdAt",
	})
}
