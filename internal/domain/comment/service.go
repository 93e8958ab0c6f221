package comment

import (
	"context"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/activity"
	"github.com/tasklink/tasklink/internal/domain/authz"
	"github.com/tasklink/tasklink/internal/domain/paging"
	"github.com/tasklink/tasklink/internal/domain/storage"
	"github.com/tasklink/tasklink/internal/domain/task"
)

// SortNewestFirst is the only ordering comment listings expose.
const SortNewestFirst = "-createdAt"

// A Service that takes care of Comments
type Service interface {
	// Create validates and persists a NewComment on the given Task, authored
	// by the principal. Returns storage.NotFound if the Task does not exist.
	Create(ctx context.Context, principal authz.Principal, taskID uuid.UUID, newComment *NewComment) (*Comment, error)

	// List returns a page of the Task's Comments, newest first
	List(ctx context.Context, taskID uuid.UUID, query paging.Query) (*paging.Result[Comment], error)

	// Delete removes the Comment. Only its author or an admin may do so;
	// anyone else gets authz.Forbidden.
	Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) error
}

func NewService(store storage.Store[Comment], tasks storage.Store[task.Task], recorder activity.Recorder) Service {
	return &impl{
		store:    store,
		tasks:    tasks,
		recorder: recorder,
	}
}

type impl struct {
	store    storage.Store[Comment]
	tasks    storage.Store[task.Task]
	recorder activity.Recorder
}

func (i *impl) Create(ctx context.Context, principal authz.Principal, taskID uuid.UUID, newComment *NewComment) (*Comment, error) {
	if _, err := i.tasks.Get(ctx, taskID); err != nil {
		return nil, err
	}
	body, err := ValidateBody(newComment.Body)
	if err != nil {
		return nil, err
	}
	created, err := i.store.Insert(ctx, Comment{
		TaskID:   taskID,
		AuthorID: principal.ID,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	activity.RecordOrLog(ctx, i.recorder, &activity.NewEntry{
		EntityType: activity.EntityComment,
		EntityID:   created.ID,
		Action:     activity.ActionCreated,
		ActorID:    principal.ID,
		Snapshot:   activity.SnapshotOf(created),
	})
	return &created, nil
}

func (i *impl) List(ctx context.Context, taskID uuid.UUID, query paging.Query) (*paging.Result[Comment], error) {
	query.Sort = SortNewestFirst
	return i.store.List(ctx, query, &taskID)
}

func (i *impl) Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) error {
	current, err := i.store.Get(ctx, id)
	if err != nil {
		return err
	}
	// Only the author or an admin; project ownership grants nothing here
	if principal.Role != authz.RoleAdmin && principal.ID != current.AuthorID {
		return authz.Forbidden{Subject: principal.ID}
	}
	if err := i.store.Delete(ctx, id); err != nil {
		return err
	}
	activity.RecordOrLog(ctx, i.recorder, &activity.NewEntry{
		EntityType: activity.EntityComment,
		EntityID:   id,
		Action:     activity.ActionDeleted,
		ActorID:    principal.ID,
	})
	return nil
}
