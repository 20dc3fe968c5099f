package pricing

import (
	"math"
	"sort"
	"strings"

	"github.com/wowecon/ahtracker/pkg/types"
)

// lowestN is how many of the cheapest listings feed the representative
// price. Using the bottom of the market rather than the mean keeps a
// single overpriced listing from skewing the quote.
const lowestN = 3

// factionNote is attached to every populated quote. The classic auction
// house API reports a single shared house, so both faction prices are
// always identical.
const factionNote = "faction prices are identical: the API exposes a single shared auction house"

// notFoundError marks a quote for an item with no matching listings.
const notFoundError = "no auctions found for this item"

// PriceFor reduces the listings matching name to a single quote. Matching
// is a case-insensitive substring test against the listing's item name.
// Each matched listing contributes its buyout, or its bid when no buyout
// is set; listings with neither are skipped.
func PriceFor(listings []domain.AuctionListing, name string) domain.PriceQuote {
	term := strings.ToLower(name)

	var prices []int64
	for _, l := range listings {
		if !strings.Contains(strings.ToLower(l.ItemName), term) {
			continue
		}
		price := l.Buyout
		if price <= 0 {
			price = l.Bid
		}
		if price <= 0 {
			continue
		}
		prices = append(prices, price)
	}

	if len(prices) == 0 {
		return domain.PriceQuote{Error: notFoundError}
	}

	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })

	n := lowestN
	if len(prices) < n {
		n = len(prices)
	}
	var sum int64
	for _, p := range prices[:n] {
		sum += p
	}
	gold := roundGold(float64(sum) / float64(n))

	return domain.PriceQuote{
		Alliance:     gold,
		Horde:        gold,
		ListingCount: len(prices),
		Note:         factionNote,
	}
}

// roundGold converts copper to gold at two decimal places.
func roundGold(copper float64) float64 {
	return math.Round(copper/float64(CopperPerGold)*100) / 100
}
