package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/metadata"
)

// conditionalUpdateAttempts bounds the fetch-compare-swap loop: the initial
// attempt plus one automatic retry when the commit itself loses a race.
const conditionalUpdateAttempts = 2

// ConditionalUpdate runs the compare-and-swap workflow against a store:
//
//  1. Fetch the current record.
//  2. Compare its version byte-for-byte against the caller's expected one;
//     a mismatch is a VersionConflict before anything is written.
//  3. Run mutate, which validates and applies the change. A mutate error
//     aborts with storage untouched.
//  4. Commit via Swap. The store re-checks the version atomically, which
//     closes the race window between fetch and commit that the compare in
//     step 2 cannot see. If that check fails, the whole loop restarts from
//     fetch once, then surfaces VersionConflict.
//
// Of two concurrent updates presenting the same expected version, exactly one
// succeeds; the loser observes VersionConflict, never silent data loss.
func ConditionalUpdate[T Record[T]](
	ctx context.Context,
	store Store[T],
	id uuid.UUID,
	expected metadata.Version,
	mutate func(current T) (T, error),
) (T, error) {
	var zero T
	for attempt := 0; attempt < conditionalUpdateAttempts; attempt++ {
		current, err := store.Get(ctx, id)
		if err != nil {
			return zero, err
		}
		if !current.RecordMeta().Version.Equal(expected) {
			return zero, VersionConflict{ID: id}
		}
		updated, err := mutate(current)
		if err != nil {
			return zero, err
		}
		result, err := store.Swap(ctx, id, expected, updated)
		if err != nil {
			if _, conflict := err.(VersionConflict); conflict {
				continue
			}
			return zero, err
		}
		return result, nil
	}
	return zero, VersionConflict{ID: id}
}
