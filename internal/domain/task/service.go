package task

import (
	"context"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/activity"
	"github.com/tasklink/tasklink/internal/domain/authz"
	"github.com/tasklink/tasklink/internal/domain/metadata"
	"github.com/tasklink/tasklink/internal/domain/paging"
	"github.com/tasklink/tasklink/internal/domain/project"
	"github.com/tasklink/tasklink/internal/domain/storage"
)

// A Service that takes care of Tasks. All operations are scoped to a single
// Project: a task addressed through a project it does not belong to is treated
// as absent, never revealed.
type Service interface {
	// Create validates and persists a NewTask under the given Project,
	// returning storage.NotFound if the Project does not exist
	Create(ctx context.Context, principal authz.Principal, projectID uuid.UUID, newTask *NewTask) (*Task, error)

	// Get retrieves a Task by id within the given Project
	Get(ctx context.Context, projectID uuid.UUID, id uuid.UUID) (*Task, error)

	// List returns a page of the Project's Tasks matching the query
	List(ctx context.Context, projectID uuid.UUID, query paging.Query) (*paging.Result[Task], error)

	// Update applies an Update to the Task iff the expected version still
	// matches the persisted one, returning storage.VersionConflict otherwise.
	// The principal must own the enclosing project or hold the admin role.
	Update(ctx context.Context, principal authz.Principal, projectID uuid.UUID, id uuid.UUID, expected metadata.Version, update *Update) (*Task, error)

	// Delete removes the Task unconditionally. The principal must own the
	// enclosing project or hold the admin role.
	Delete(ctx context.Context, principal authz.Principal, projectID uuid.UUID, id uuid.UUID) error
}

func NewService(store storage.Store[Task], projects project.Service, authorizer authz.Authorizer, recorder activity.Recorder) Service {
	return &impl{
		store:      store,
		projects:   projects,
		authorizer: authorizer,
		recorder:   recorder,
	}
}

type impl struct {
	store      storage.Store[Task]
	projects   project.Service
	authorizer authz.Authorizer
	recorder   activity.Recorder
}

func (i *impl) Create(ctx context.Context, principal authz.Principal, projectID uuid.UUID, newTask *NewTask) (*Task, error) {
	if _, err := i.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	title, err := ValidateTitle(newTask.Title)
	if err != nil {
		return nil, err
	}
	status := newTask.Status
	if status == "" {
		status = StatusTodo
	} else if status, err = StatusFromString(string(status)); err != nil {
		return nil, err
	}
	priority := newTask.Priority
	if priority == "" {
		priority = PriorityMedium
	} else if priority, err = PriorityFromString(string(priority)); err != nil {
		return nil, err
	}
	created, err := i.store.Insert(ctx, Task{
		ProjectID:   projectID,
		Title:       title,
		Description: trimDescription(newTask.Description),
		AssigneeID:  newTask.AssigneeID,
		Status:      status,
		Priority:    priority,
		DueDate:     newTask.DueDate,
	})
	if err != nil {
		return nil, err
	}
	activity.RecordOrLog(ctx, i.recorder, &activity.NewEntry{
		EntityType: activity.EntityTask,
		EntityID:   created.ID,
		Action:     activity.ActionCreated,
		ActorID:    principal.ID,
		Snapshot:   activity.SnapshotOf(created),
	})
	return &created, nil
}

func (i *impl) Get(ctx context.Context, projectID uuid.UUID, id uuid.UUID) (*Task, error) {
	retrieved, err := i.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if retrieved.ProjectID != projectID {
		return nil, storage.NotFound{ID: id}
	}
	return &retrieved, nil
}

func (i *impl) List(ctx context.Context, projectID uuid.UUID, query paging.Query) (*paging.Result[Task], error) {
	return i.store.List(ctx, query, &projectID)
}

func (i *impl) Update(ctx context.Context, principal authz.Principal, projectID uuid.UUID, id uuid.UUID, expected metadata.Version, update *Update) (*Task, error) {
	owner, err := i.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	title, err := ValidateTitle(update.Title)
	if err != nil {
		return nil, err
	}
	status, err := StatusFromString(string(update.Status))
	if err != nil {
		return nil, err
	}
	priority, err := PriorityFromString(string(update.Priority))
	if err != nil {
		return nil, err
	}
	updated, err := storage.ConditionalUpdate(ctx, i.store, id, expected, func(current Task) (Task, error) {
		if current.ProjectID != projectID {
			return Task{}, storage.NotFound{ID: id}
		}
		if i.authorizer.Check(ctx, principal, owner.OwnerID) == authz.Denied {
			return Task{}, authz.Forbidden{Subject: principal.ID}
		}
		current.Title = title
		current.Description = trimDescription(update.Description)
		current.AssigneeID = update.AssigneeID
		current.Status = status
		current.Priority = priority
		current.DueDate = update.DueDate
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	activity.RecordOrLog(ctx, i.recorder, &activity.NewEntry{
		EntityType: activity.EntityTask,
		EntityID:   updated.ID,
		Action:     activity.ActionUpdated,
		ActorID:    principal.ID,
		Snapshot:   activity.SnapshotOf(updated),
	})
	return &updated, nil
}

func (i *impl) Delete(ctx context.Context, principal authz.Principal, projectID uuid.UUID, id uuid.UUID) error {
	owner, err := i.projects.Get(ctx, projectID)
	if err != nil {
		return err
	}
	current, err := i.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.ProjectID != projectID {
		return storage.NotFound{ID: id}
	}
	if i.authorizer.Check(ctx, principal, owner.OwnerID) == authz.Denied {
		return authz.Forbidden{Subject: principal.ID}
	}
	if err := i.store.Delete(ctx, id); err != nil {
		return err
	}
	activity.RecordOrLog(ctx, i.recorder, &activity.NewEntry{
		EntityType: activity.EntityTask,
		EntityID:   id,
		Action:     activity.ActionDeleted,
		ActorID:    principal.ID,
	})
	return nil
}
