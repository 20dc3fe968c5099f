package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wowecon/ahtracker/pkg/types"
)

func listing(name string, buyout, bid int64) domain.AuctionListing {
	return domain.AuctionListing{ItemName: name, Buyout: buyout, Bid: bid, Quantity: 1}
}

func TestPriceFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		listings     []domain.AuctionListing
		query        string
		wantGold     float64
		wantCount    int
		wantNotFound bool
	}{
		{
			name: "averages the three lowest buyouts",
			listings: []domain.AuctionListing{
				listing("Black Lotus", 50000, 0),
				listing("Black Lotus", 20000, 0),
				listing("Black Lotus", 80000, 0),
				listing("Black Lotus", 10000, 0),
			},
			query: "black lotus",
			// lowest three are 10000, 20000, 50000 copper
			wantGold:  2.67,
			wantCount: 4,
		},
		{
			name: "fewer than three listings uses what exists",
			listings: []domain.AuctionListing{
				listing("Mooncloth", 40000, 0),
				listing("Mooncloth", 20000, 0),
			},
			query:     "mooncloth",
			wantGold:  3.0,
			wantCount: 2,
		},
		{
			name: "single listing",
			listings: []domain.AuctionListing{
				listing("Thorium Bar", 12500, 0),
			},
			query:     "thorium",
			wantGold:  1.25,
			wantCount: 1,
		},
		{
			name: "match is case-insensitive substring",
			listings: []domain.AuctionListing{
				listing("Greater Fire Protection Potion", 30000, 0),
				listing("Fire Oil", 500, 0),
			},
			query:     "FIRE PROTECTION",
			wantGold:  3.0,
			wantCount: 1,
		},
		{
			name: "bid fills in for missing buyout",
			listings: []domain.AuctionListing{
				listing("Elixir of the Mongoose", 0, 15000),
				listing("Elixir of the Mongoose", 25000, 20000),
			},
			query:     "mongoose",
			wantGold:  2.0,
			wantCount: 2,
		},
		{
			name: "listings with no price at all are skipped",
			listings: []domain.AuctionListing{
				listing("Bottomless Bag", 0, 0),
				listing("Bottomless Bag", 100000, 0),
			},
			query:     "bottomless",
			wantGold:  10.0,
			wantCount: 1,
		},
		{
			name: "no matching listings",
			listings: []domain.AuctionListing{
				listing("Black Lotus", 50000, 0),
			},
			query:        "arcanite bar",
			wantNotFound: true,
		},
		{
			name:         "empty listings",
			listings:     nil,
			query:        "anything",
			wantNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			quote := PriceFor(tt.listings, tt.query)

			if tt.wantNotFound {
				assert.Equal(t, notFoundError, quote.Error)
				assert.Zero(t, quote.Alliance)
				assert.Zero(t, quote.Horde)
				assert.Zero(t, quote.ListingCount)
				return
			}

			assert.Empty(t, quote.Error)
			assert.Equal(t, tt.wantGold, quote.Alliance)
			assert.Equal(t, tt.wantGold, quote.Horde, "both factions share one house")
			assert.Equal(t, tt.wantCount, quote.ListingCount)
			assert.NotEmpty(t, quote.Note)
		})
	}
}
