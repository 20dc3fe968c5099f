package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowecon/ahtracker/internal/api/handlers"
	"github.com/wowecon/ahtracker/internal/blizzard"
)

func TestDiscoveryHandler_RefreshDiscovery(t *testing.T) {
	t.Parallel()

	t.Run("finds unresolved realm", func(t *testing.T) {
		t.Parallel()

		ns := "dynamic-classic1x-eu"
		client := &fakeGameData{
			index: map[string][]blizzard.ConnectedRealmRef{
				"eu|" + ns: {
					{Href: "https://eu.api.blizzard.com/data/wow/connected-realm/6201?namespace=" + ns},
				},
			},
			details: map[int]*blizzard.RealmDetail{
				6201: {
					ID: 6201,
					Realms: []blizzard.RealmInfo{
						{ID: 6201, Name: "Thunderstrike", Slug: "thunderstrike"},
					},
				},
			},
		}

		_, api := humatest.New(t)
		handlers.RegisterDiscoveryRoutes(api, handlers.NewDiscoveryHandler(newTestEngine(t, client)))

		resp := api.Post("/api/v1/discovery/refresh")
		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Discovered []struct {
				RealmKey         string `json:"realmKey"`
				ConnectedRealmID int    `json:"connectedRealmId"`
				Namespace        string `json:"namespace"`
			} `json:"discovered"`
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

		assert.Equal(t, 1, body.Count)
		require.Len(t, body.Discovered, 1)
		assert.Equal(t, "thunderstrike", body.Discovered[0].RealmKey)
		assert.Equal(t, 6201, body.Discovered[0].ConnectedRealmID)
		assert.Equal(t, ns, body.Discovered[0].Namespace)
	})

	t.Run("nothing discovered", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		handlers.RegisterDiscoveryRoutes(api, handlers.NewDiscoveryHandler(newTestEngine(t, &fakeGameData{})))

		resp := api.Post("/api/v1/discovery/refresh")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"count":0`)
	})
}
