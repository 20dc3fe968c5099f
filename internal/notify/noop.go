package notify

import (
	"context"
	"log/slog"

	"github.com/wowecon/ahtracker/internal/store"
)

// NoOpNotifier implements Notifier by logging discarded announcements.
// It is used when no webhook is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards announcements with a
// log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// AnnounceMapping logs and discards a single announcement.
func (n *NoOpNotifier) AnnounceMapping(_ context.Context, m store.RealmMapping) error {
	n.log.Debug("discovery announcement discarded (no backend configured)",
		"realm", m.Descriptor.RealmKey,
		"connected_realm_id", m.Descriptor.ConnectedRealmID,
	)
	return nil
}

// AnnounceMappings logs and discards a batch announcement.
func (n *NoOpNotifier) AnnounceMappings(_ context.Context, mappings []store.RealmMapping) error {
	n.log.Debug("discovery batch announcement discarded (no backend configured)",
		"count", len(mappings),
	)
	return nil
}
