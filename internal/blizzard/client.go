// Package blizzard provides a Battle.net Game Data API client abstracted
// behind interfaces for testability.
package blizzard

import (
	"context"

	domain "github.com/wowecon/ahtracker/pkg/types"
)

// ConnectedRealmRef is one entry of the connected realm index: a bare
// href pointing at the realm detail document.
type ConnectedRealmRef struct {
	Href string `json:"href"`
}

// RealmDetail is a connected realm detail document.
type RealmDetail struct {
	ID     int         `json:"id"`
	Realms []RealmInfo `json:"realms"`
}

// RealmInfo describes one realm inside a connected realm.
type RealmInfo struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Locale   string `json:"locale"`
	Timezone string `json:"timezone"`
}

// GameDataClient defines the Battle.net Game Data API operations the
// tracker needs. Region is an API host prefix ("us", "eu", ...),
// namespace a dataset tag like "dynamic-classic1x-us".
type GameDataClient interface {
	// ConnectedRealmIndex lists connected realm references for a
	// (region, namespace) combination.
	ConnectedRealmIndex(ctx context.Context, region domain.Region, namespace string) ([]ConnectedRealmRef, error)

	// ConnectedRealm fetches the detail document for one connected realm.
	ConnectedRealm(ctx context.Context, region domain.Region, namespace string, id int) (*RealmDetail, error)

	// Auctions fetches the full auction listing for a resolved realm.
	// The upstream returns the complete set in one response; there is
	// no pagination.
	Auctions(ctx context.Context, desc domain.RealmDescriptor) ([]domain.AuctionListing, error)
}

// TokenProvider defines the interface for obtaining OAuth2 tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
