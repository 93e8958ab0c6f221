package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tasklink/tasklink/internal/domain/paging"
	"github.com/tasklink/tasklink/internal/domain/storage"
)

// SortNewestFirst is the only ordering the activity trail exposes.
const SortNewestFirst = "-createdAt"

// Recorder is the narrow interface resource services use to append to the
// audit trail.
type Recorder interface {
	// Record persists a single audit entry.
	Record(ctx context.Context, entry *NewEntry) error
}

// A Service that takes care of the audit trail.
type Service interface {
	Recorder

	// ForEntity lists entries about one entity, newest first.
	ForEntity(ctx context.Context, entityID uuid.UUID, query paging.Query) (*paging.Result[Entry], error)

	// Sweep deletes entries recorded before the cutoff and returns how many
	// went. Idempotent; errors can be handled by simply logging.
	Sweep(ctx context.Context, before time.Time) (uint, error)
}

func NewService(store storage.Store[Entry]) Service {
	return &impl{store: store}
}

type impl struct {
	store storage.Store[Entry]
}

func (i *impl) Record(ctx context.Context, entry *NewEntry) error {
	_, err := i.store.Insert(ctx, Entry{
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     entry.Action,
		ActorID:    entry.ActorID,
		Snapshot:   entry.Snapshot,
	})
	return err
}

func (i *impl) ForEntity(ctx context.Context, entityID uuid.UUID, query paging.Query) (*paging.Result[Entry], error) {
	query.Sort = SortNewestFirst
	return i.store.List(ctx, query, &entityID)
}

func (i *impl) Sweep(ctx context.Context, before time.Time) (uint, error) {
	var swept uint
	for {
		page, err := i.store.List(ctx, paging.Query{Page: 1, PageSize: paging.MaxPageSize, Sort: "createdAt"}, nil)
		if err != nil {
			return swept, err
		}
		deletedThisPage := 0
		for _, entry := range page.Items {
			if time.Time(entry.Metadata.CreatedAt).Before(before) {
				if err := i.store.Delete(ctx, entry.ID); err != nil {
					// Raced with another sweeper; nothing to do
					if _, notFound := err.(storage.NotFound); !notFound {
						return swept, err
					}
				} else {
					swept++
					deletedThisPage++
				}
			}
		}
		if deletedThisPage == 0 {
			return swept, nil
		}
	}
}

// RecordOrLog appends to the trail, logging instead of failing when the
// recorder errors out: a mutation must never fail because its audit entry
// could not be written.
func RecordOrLog(ctx context.Context, recorder Recorder, entry *NewEntry) {
	if err := recorder.Record(ctx, entry); err != nil {
		log.Warn().
			Err(err).
			Str("entity_type", string(entry.EntityType)).
			Str("entity_id", entry.EntityID.String()).
			Str("action", string(entry.Action)).
			Msg("Failed to record activity entry")
	}
}
