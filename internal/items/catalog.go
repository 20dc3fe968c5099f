// Package items carries the embedded item catalog and the curated sample
// prices used when the live auction API is unavailable.
package items

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wowecon/ahtracker/pkg/types"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Item is a catalog entry plus its illustrative prices, in gold. The
// per-realm map overrides the base price where present.
type Item struct {
	domain.ItemRecord `yaml:",inline"`

	SamplePrice  float64            `yaml:"sample_price"`
	SamplePrices map[string]float64 `yaml:"sample_prices"`
}

// Catalog is the parsed item list. Methods never mutate it, so a single
// instance is safe to share across goroutines.
type Catalog struct {
	Version int    `yaml:"version"`
	Items   []Item `yaml:"items"`
}

// Load parses raw YAML into a catalog.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing item catalog: %w", err)
	}
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("item catalog is empty")
	}
	return &c, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return Load(catalogYAML)
})

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return defaultCatalog()
}

// Search returns the items whose name contains term, case-insensitively,
// in catalog order.
func (c *Catalog) Search(term string) []Item {
	var out []Item
	for _, it := range c.Items {
		if it.MatchesName(term) {
			out = append(out, it)
		}
	}
	return out
}

// ByID looks an item up by its game ID.
func (c *Catalog) ByID(id int) (Item, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Popular returns the curated popular subset, sorted by name.
func (c *Catalog) Popular() []Item {
	var out []Item
	for _, it := range c.Items {
		if it.Popular {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// PriceOn returns the item's sample price in gold for a realm, falling
// back to the base price when the realm has no override.
func (it Item) PriceOn(realmKey string) float64 {
	if p, ok := it.SamplePrices[realmKey]; ok {
		return p
	}
	return it.SamplePrice
}

// sampleNote tags quotes built from the embedded data rather than live
// auctions.
const sampleNote = "illustrative sample price, not live auction data"

// SampleQuote builds a quote for the item on a realm from the embedded
// sample data.
func (it Item) SampleQuote(realmKey string) domain.PriceQuote {
	gold := it.PriceOn(realmKey)
	return domain.PriceQuote{
		Alliance:     gold,
		Horde:        gold,
		ListingCount: 0,
		Note:         sampleNote,
	}
}
