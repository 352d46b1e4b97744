// Package migrate implements the one-shot bulk transfer of user records
// between two storage backends, typically to seed the relational backend
// from the embedded store.
//
// The procedure is best-effort: records whose email already exists in the
// destination are skipped, any other per-record failure is collected, and
// the call reports every outcome in Result. Skipping duplicates makes a
// re-run against the same destination naturally idempotent. It is not
// all-or-nothing: the facade exposes no cross-operation transaction, and
// each destination write keeps its own per-operation atomicity.
package migrate

import (
	"context"
	"errors"
	"fmt"

	"uservault/internal/logging"
	"uservault/internal/storage"
)

// Result reports what a migration run did.
type Result struct {
	// Migrated counts records copied into the destination.
	Migrated int

	// Skipped counts records whose email was already present.
	Skipped int

	// Failed lists ids of records that could not be transferred for any
	// reason other than a duplicate email.
	Failed []string
}

// Run copies every record from src into dst. Id, username, email, password
// digest and creation timestamp transfer unchanged: no re-hashing, no new
// ids, no timestamp drift.
//
// The returned Result is valid even on error. When any record fails for a
// reason other than duplication, the error wraps ErrMigrationFailed and
// the first underlying cause.
func Run(ctx context.Context, src, dst storage.Storage, logger logging.Logger) (*Result, error) {
	users, err := src.GetAllUsers(ctx)
	if err != nil {
		return &Result{}, fmt.Errorf("%w: reading source: %w", storage.ErrMigrationFailed, err)
	}

	res := &Result{}
	var firstErr error

	for i := range users {
		u := users[i]

		if _, err := dst.SaveUser(ctx, &u); err != nil {
			if errors.Is(err, storage.ErrDuplicateUser) {
				res.Skipped++
				logger.Debug(ctx, "record already present, skipping", "id", u.ID)
				continue
			}
			res.Failed = append(res.Failed, u.ID)
			if firstErr == nil {
				firstErr = err
			}
			logger.Error(ctx, "record transfer failed", "id", u.ID, "error", err.Error())
			continue
		}
		res.Migrated++
	}

	logger.Info(ctx, "migration finished",
		"migrated", res.Migrated, "skipped", res.Skipped, "failed", len(res.Failed))

	if len(res.Failed) > 0 {
		return res, fmt.Errorf("%w: %w", storage.ErrMigrationFailed, firstErr)
	}
	return res, nil
}
