//go:build integration

package blizzard_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowecon/ahtracker/internal/blizzard"
	domain "github.com/wowecon/ahtracker/pkg/types"
)

// TestClient_Integration requires live Battle.net API credentials.
// Run with: go test -tags=integration -run TestClient_Integration ./internal/blizzard/...
//
// Required environment variables:
//   - BLIZZARD_CLIENT_ID: Battle.net application client ID
//   - BLIZZARD_CLIENT_SECRET: Battle.net application client secret
func TestClient_Integration(t *testing.T) {
	clientID := os.Getenv("BLIZZARD_CLIENT_ID")
	clientSecret := os.Getenv("BLIZZARD_CLIENT_SECRET")

	if clientID == "" || clientSecret == "" {
		t.Skip("BLIZZARD_CLIENT_ID and BLIZZARD_CLIENT_SECRET must be set for integration tests")
	}

	tokens := blizzard.NewOAuthTokenProvider(clientID, clientSecret)
	client := blizzard.NewClient(tokens)

	refs, err := client.ConnectedRealmIndex(
		context.Background(), domain.RegionUS, "dynamic-classic1x-us",
	)
	require.NoError(t, err)
	assert.NotEmpty(t, refs)

	for _, ref := range refs {
		assert.NotEmpty(t, ref.Href)
	}
}
