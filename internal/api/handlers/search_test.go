package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"

	"github.com/wowecon/ahtracker/internal/api/handlers"
	"github.com/wowecon/ahtracker/pkg/types"
)

func lotusListings() []domain.AuctionListing {
	return []domain.AuctionListing{
		{ItemID: 19007, ItemName: "Black Lotus", Buyout: 500000, Quantity: 1},
		{ItemID: 19007, ItemName: "Black Lotus", Buyout: 200000, Quantity: 1},
		{ItemID: 19007, ItemName: "Black Lotus", Buyout: 800000, Quantity: 1},
		{ItemID: 19007, ItemName: "Black Lotus", Buyout: 100000, Quantity: 1},
	}
}

func TestSearchHandler_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		url        string
		client     *fakeGameData
		wantStatus int
		wantBody   []string
	}{
		{
			name: "live data",
			url:  "/api/v1/search?q=black+lotus&server=dreamscythe&faction=both",
			client: &fakeGameData{auctions: map[int][]domain.AuctionListing{
				6103: lotusListings(),
			}},
			wantStatus: http.StatusOK,
			wantBody: []string{
				`"dataSource":"blizzard-api"`,
				`"name":"Black Lotus"`,
				`"alliance":26.67`,
				`"count":4`,
				`"searchQuery":"black lotus"`,
				`"selectedServer":"dreamscythe"`,
			},
		},
		{
			name:       "missing query returns 400",
			url:        "/api/v1/search?server=dreamscythe",
			client:     &fakeGameData{},
			wantStatus: http.StatusBadRequest,
			wantBody:   []string{"Search query required"},
		},
		{
			name: "upstream auth failure returns 200 with fallback data",
			url:  "/api/v1/search?q=black+lotus&server=dreamscythe",
			client: &fakeGameData{
				auctionErr: &domain.AuthError{Status: 401, Body: "invalid client"},
			},
			wantStatus: http.StatusOK,
			wantBody: []string{
				`"dataSource":"fallback-error"`,
				`"name":"Black Lotus"`,
			},
		},
		{
			name:       "item absent in live auctions returns sample data",
			url:        "/api/v1/search?q=mooncloth&server=dreamscythe",
			client:     &fakeGameData{auctions: map[int][]domain.AuctionListing{6103: {}}},
			wantStatus: http.StatusOK,
			wantBody: []string{
				`"dataSource":"sample-data"`,
				`"name":"Mooncloth"`,
			},
		},
		{
			name: "unresolved realm gets a not-configured entry",
			url:  "/api/v1/search?q=black+lotus&server=all",
			client: &fakeGameData{auctions: map[int][]domain.AuctionListing{
				6103: lotusListings(),
			}},
			wantStatus: http.StatusOK,
			wantBody: []string{
				`"dataSource":"blizzard-api"`,
				`"error":"not configured"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(newTestEngine(t, tt.client)))

			resp := api.Get(tt.url)

			assert.Equal(t, tt.wantStatus, resp.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}
