package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wowecon/ahtracker/internal/blizzard"
	"github.com/wowecon/ahtracker/internal/engine"
	"github.com/wowecon/ahtracker/internal/items"
	"github.com/wowecon/ahtracker/internal/resolver"
	"github.com/wowecon/ahtracker/internal/store"
	"github.com/wowecon/ahtracker/pkg/types"
)

// fakeGameData serves canned responses for handler tests.
type fakeGameData struct {
	auctions   map[int][]domain.AuctionListing
	auctionErr error

	index   map[string][]blizzard.ConnectedRealmRef
	details map[int]*blizzard.RealmDetail
}

func (f *fakeGameData) ConnectedRealmIndex(
	_ context.Context, region domain.Region, ns string,
) ([]blizzard.ConnectedRealmRef, error) {
	refs, ok := f.index[string(region)+"|"+ns]
	if !ok {
		return nil, &domain.FetchError{Operation: "connected_realm_index", Status: 404}
	}
	return refs, nil
}

func (f *fakeGameData) ConnectedRealm(
	_ context.Context, _ domain.Region, _ string, id int,
) (*blizzard.RealmDetail, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, &domain.FetchError{Operation: "connected_realm", Status: 404}
	}
	return d, nil
}

func (f *fakeGameData) Auctions(
	_ context.Context, desc domain.RealmDescriptor,
) ([]domain.AuctionListing, error) {
	if f.auctionErr != nil {
		return nil, f.auctionErr
	}
	return f.auctions[desc.ConnectedRealmID], nil
}

func testRoster() []domain.RealmDescriptor {
	return []domain.RealmDescriptor{
		{
			RealmKey:         "dreamscythe",
			DisplayName:      "Dreamscythe",
			Region:           domain.RegionUS,
			ConnectedRealmID: 6103,
			Namespace:        "dynamic-classic1x-us",
		},
		{
			RealmKey:    "thunderstrike",
			DisplayName: "Thunderstrike",
			Region:      domain.RegionEU,
		},
	}
}

func mustCatalog(t *testing.T) *items.Catalog {
	t.Helper()
	c, err := items.Default()
	require.NoError(t, err)
	return c
}

func newTestEngine(t *testing.T, client *fakeGameData) *engine.Engine {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	roster := testRoster()

	res := resolver.New(client, store.NewMemoryStore(), roster, resolver.Options{
		Regions:        []domain.Region{domain.RegionUS, domain.RegionEU},
		NamespaceBases: []string{"dynamic-classic1x"},
		RealmsPerProbe: 5,
	}, log)

	catalog, err := items.Default()
	require.NoError(t, err)

	keys := make([]string, 0, len(roster))
	for _, d := range roster {
		keys = append(keys, d.RealmKey)
	}

	return engine.New(client, res, catalog, keys, time.Minute, engine.WithLogger(log))
}
