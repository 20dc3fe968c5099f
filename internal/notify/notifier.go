// Package notify announces discovered realm mappings to external
// channels.
package notify

import (
	"context"

	"github.com/wowecon/ahtracker/internal/store"
)

// Notifier delivers discovery announcements.
type Notifier interface {
	// AnnounceMapping reports a single newly discovered realm mapping.
	AnnounceMapping(ctx context.Context, m store.RealmMapping) error
	// AnnounceMappings reports the outcome of a full discovery
	// refresh.
	AnnounceMappings(ctx context.Context, mappings []store.RealmMapping) error
}
