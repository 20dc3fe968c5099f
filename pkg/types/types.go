// Package domain defines the core business types for the auction house
// price tracker.
package domain

import (
	"fmt"
	"strings"
)

// Region identifies a Battle.net API region.
type Region string

// Region constants.
const (
	RegionUS Region = "us"
	RegionEU Region = "eu"
	RegionKR Region = "kr"
	RegionTW Region = "tw"
)

// APIBase returns the region-specific API host.
func (r Region) APIBase() string {
	return fmt.Sprintf("https://%s.api.blizzard.com", string(r))
}

// Quality is the item quality tier.
type Quality string

// Quality constants.
const (
	QualityCommon   Quality = "common"
	QualityUncommon Quality = "uncommon"
	QualityRare     Quality = "rare"
	QualityEpic     Quality = "epic"
)

// DataSource tags a search result with its provenance.
type DataSource string

// Data source constants. Live results come from the Battle.net API;
// sample-data results are the curated fallback table; fallback-error
// marks sample data substituted after an upstream failure.
const (
	SourceLive          DataSource = "blizzard-api"
	SourceSample        DataSource = "sample-data"
	SourceFallbackError DataSource = "fallback-error"
)

// RealmDescriptor describes a realm and the identifiers needed to query
// its auction house. ConnectedRealmID of zero means unresolved: the
// descriptor must not be used for auction queries until the discovery
// sweep (or the static mapping) fills it in.
type RealmDescriptor struct {
	RealmKey         string `json:"realm_key"          yaml:"realm_key"`
	DisplayName      string `json:"display_name"       yaml:"display_name"`
	Region           Region `json:"region"             yaml:"region"`
	ConnectedRealmID int    `json:"connected_realm_id" yaml:"connected_realm_id"`
	Namespace        string `json:"namespace"          yaml:"namespace"`
}

// Resolved reports whether the descriptor carries a usable connected
// realm ID and namespace.
func (d *RealmDescriptor) Resolved() bool {
	return d.ConnectedRealmID > 0 && d.Namespace != ""
}

// APIBase returns the API host for the descriptor's region, defaulting
// to US when the region is unset.
func (d *RealmDescriptor) APIBase() string {
	if d.Region == "" {
		return RegionUS.APIBase()
	}
	return d.Region.APIBase()
}

// AuctionListing is a single auction house listing. Prices are in
// copper, the smallest currency subunit. Listings are ephemeral:
// fetched per search, never stored.
type AuctionListing struct {
	ItemID   int    `json:"item_id"`
	ItemName string `json:"item_name,omitempty"`
	Buyout   int64  `json:"buyout"`
	Bid      int64  `json:"bid"`
	Quantity int    `json:"quantity"`
}

// PriceQuote is the aggregated price for one item on one realm.
// Alliance and Horde carry the identical value: the upstream auction
// API does not separate buyer/seller faction, and that simplification
// is deliberate and preserved (see Note).
type PriceQuote struct {
	Alliance     float64 `json:"alliance"`
	Horde        float64 `json:"horde"`
	ListingCount int     `json:"count"`
	Error        string  `json:"error,omitempty"`
	Note         string  `json:"note,omitempty"`
}

// ItemRecord is static reference data about a tracked item, loaded
// once at process start.
type ItemRecord struct {
	ID       int     `json:"id"       yaml:"id"`
	Name     string  `json:"name"     yaml:"name"`
	Quality  Quality `json:"quality"  yaml:"quality"`
	Category string  `json:"category" yaml:"category"`
	Icon     string  `json:"icon,omitempty" yaml:"icon"`
	Popular  bool    `json:"popular"  yaml:"popular"`
}

// MatchesName reports whether the record's name contains term,
// case-insensitively. Substring matching is deliberate so partial
// queries like "lotus" still hit.
func (i *ItemRecord) MatchesName(term string) bool {
	return strings.Contains(
		strings.ToLower(i.Name),
		strings.ToLower(term),
	)
}

// ItemResult is one item in a search response, with per-realm quotes.
type ItemResult struct {
	Name    string                `json:"name"`
	Quality Quality               `json:"quality"`
	Icon    string                `json:"icon,omitempty"`
	Prices  map[string]PriceQuote `json:"prices"`
	Note    string                `json:"note,omitempty"`
}

// SearchResult is the aggregate outcome of one search request.
type SearchResult struct {
	Items          []ItemResult `json:"items"`
	DataSource     DataSource   `json:"dataSource"`
	ServersChecked []string     `json:"serversChecked"`
	AuctionCount   int          `json:"auctionCount,omitempty"`
	Error          string       `json:"error,omitempty"`
}
