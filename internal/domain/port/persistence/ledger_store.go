package persistence

import (
	"context"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
)

// LedgerStore persists the entire user collection as one unit.
// There are no partial loads and no partial writes.
//
// A context that is already done is reported as ctx.Err(), unwrapped, so
// callers can tell a cancellation or deadline apart from a storage failure.
type LedgerStore interface {
	// Load reads the full collection in stored order.
	// Every call returns a fresh copy that the caller may mutate.
	//
	// Possible errors:
	// - ErrStorage: If the medium is unreadable or holds malformed data
	// - context.Canceled, context.DeadlineExceeded: If ctx is done
	Load(ctx context.Context) ([]entity.User, error)

	// Save replaces everything previously stored with users.
	// Callers must pass a complete collection, never a partial one.
	//
	// Possible errors:
	// - ErrStorage: If the write fails; prior state is left intact
	// - context.Canceled, context.DeadlineExceeded: If ctx is done; nothing is written
	Save(ctx context.Context, users []entity.User) error
}
