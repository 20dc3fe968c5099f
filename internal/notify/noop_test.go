package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wowecon/ahtracker/internal/store"
)

func TestNoOpNotifier(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NoError(t, n.AnnounceMapping(context.Background(), testDiscovery("thunderstrike", 6202)))
	assert.NoError(t, n.AnnounceMappings(context.Background(), []store.RealmMapping{
		testDiscovery("spineshatter", 6201),
	}))
}
