package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/activity"
	"github.com/tasklink/tasklink/internal/domain/authz"
	"github.com/tasklink/tasklink/internal/domain/metadata"
	"github.com/tasklink/tasklink/internal/domain/paging"
	"github.com/tasklink/tasklink/internal/domain/storage"
)

// A Service that takes care of Projects
type Service interface {
	// Create validates and persists a NewProject owned by the principal
	Create(ctx context.Context, principal authz.Principal, newProject *NewProject) (*Project, error)

	// Get retrieves a Project by id, returning storage.NotFound if it does
	// not exist
	Get(ctx context.Context, id uuid.UUID) (*Project, error)

	// List returns a page of Projects matching the query
	List(ctx context.Context, query paging.Query) (*paging.Result[Project], error)

	// Update applies an Update to the Project iff the expected version still
	// matches the persisted one, returning storage.VersionConflict otherwise.
	// The principal must own the project or hold the admin role.
	Update(ctx context.Context, principal authz.Principal, id uuid.UUID, expected metadata.Version, update *Update) (*Project, error)

	// Delete removes the Project unconditionally. The principal must own the
	// project or hold the admin role.
	Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) error
}

func NewService(store storage.Store[Project], authorizer authz.Authorizer, recorder activity.Recorder) Service {
	return &impl{
		store:      store,
		authorizer: authorizer,
		recorder:   recorder,
	}
}

type impl struct {
	store      storage.Store[Project]
	authorizer authz.Authorizer
	recorder   activity.Recorder
}

func (i *impl) Create(ctx context.Context, principal authz.Principal, newProject *NewProject) (*Project, error) {
	name, err := ValidateName(newProject.Name)
	if err != nil {
		return nil, err
	}
	created, err := i.store.Insert(ctx, Project{
		Name:        name,
		Description: trimDescription(newProject.Description),
		OwnerID:     principal.ID,
	})
	if err != nil {
		return nil, err
	}
	activity.RecordOrLog(ctx, i.recorder, &activity.NewEntry{
		EntityType: activity.EntityProject,
		EntityID:   created.ID,
		Action:     activity.ActionCreated,
		ActorID:    principal.ID,
		Snapshot:   activity.SnapshotOf(created),
	})
	return &created, nil
}

func (i *impl) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	retrieved, err := i.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &retrieved, nil
}

func (i *impl) List(ctx context.Context, query paging.Query) (*paging.Result[Project], error) {
	return i.store.List(ctx, query, nil)
}

func (i *impl) Update(ctx context.Context, principal authz.Principal, id uuid.UUID, expected metadata.Version, update *Update) (*Project, error) {
	name, err := ValidateName(update.Name)
	if err != nil {
		return nil, err
	}
	updated, err := storage.ConditionalUpdate(ctx, i.store, id, expected, func(current Project) (Project, error) {
		if i.authorizer.Check(ctx, principal, current.OwnerID) == authz.Denied {
			return Project{}, authz.Forbidden{Subject: principal.ID}
		}
		current.Name = name
		current.Description = trimDescription(update.Description)
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	activity.RecordOrLog(ctx, i.recorder, &activity.NewEntry{
		EntityType: activity.EntityProject,
		EntityID:   updated.ID,
		Action:     activity.ActionUpdated,
		ActorID:    principal.ID,
		Snapshot:   activity.SnapshotOf(updated),
	})
	return &updated, nil
}

func (i *impl) Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) error {
	current, err := i.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if i.authorizer.Check(ctx, principal, current.OwnerID) == authz.Denied {
		return authz.Forbidden{Subject: principal.ID}
	}
	if err := i.store.Delete(ctx, id); err != nil {
		return err
	}
	activity.RecordOrLog(ctx, i.recorder, &activity.NewEntry{
		EntityType: activity.EntityProject,
		EntityID:   id,
		Action:     activity.ActionDeleted,
		ActorID:    principal.ID,
	})
	return nil
}
