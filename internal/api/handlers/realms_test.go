package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowecon/ahtracker/internal/api/handlers"
)

func TestRealmsHandler_ListRealms(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterRealmRoutes(api, handlers.NewRealmsHandler(newTestEngine(t, &fakeGameData{}), true))

	resp := api.Get("/api/v1/realms")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Realms []struct {
			RealmKey string `json:"realmKey"`
			Resolved bool   `json:"resolved"`
			Source   string `json:"source"`
		} `json:"realms"`
		CredentialsConfigured bool `json:"credentialsConfigured"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.True(t, body.CredentialsConfigured)
	require.Len(t, body.Realms, 2)
	assert.Equal(t, "dreamscythe", body.Realms[0].RealmKey)
	assert.True(t, body.Realms[0].Resolved)
	assert.Equal(t, "static", body.Realms[0].Source)
	assert.Equal(t, "thunderstrike", body.Realms[1].RealmKey)
	assert.False(t, body.Realms[1].Resolved)
}

func TestItemsHandler_ListItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		wantNames []string
		allowMore bool
	}{
		{
			name:      "substring filter",
			url:       "/api/v1/items?q=lotus",
			wantNames: []string{"Black Lotus"},
		},
		{
			name:      "popular filter",
			url:       "/api/v1/items?popular=true",
			wantNames: []string{"Black Lotus", "Thorium Bar"},
			allowMore: true,
		},
		{
			name:      "no filter returns whole catalog",
			url:       "/api/v1/items",
			wantNames: []string{"Black Lotus", "Mooncloth", "Bottomless Bag"},
			allowMore: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterItemRoutes(api, handlers.NewItemsHandler(mustCatalog(t)))

			resp := api.Get(tt.url)
			require.Equal(t, http.StatusOK, resp.Code)

			var body struct {
				Items []struct {
					Name string `json:"name"`
				} `json:"items"`
				Total int `json:"total"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

			var names []string
			for _, it := range body.Items {
				names = append(names, it.Name)
			}
			for _, want := range tt.wantNames {
				assert.Contains(t, names, want)
			}
			if !tt.allowMore {
				assert.Len(t, names, len(tt.wantNames))
			}
			assert.Equal(t, len(body.Items), body.Total)
		})
	}
}
