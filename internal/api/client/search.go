package client

import (
	"context"
	"net/url"
	"time"

	"github.com/wowecon/ahtracker/pkg/types"
)

// SearchResponse is the search endpoint response.
type SearchResponse struct {
	domain.SearchResult

	SearchQuery     string    `json:"searchQuery"`
	SelectedServer  string    `json:"selectedServer,omitempty"`
	SelectedFaction string    `json:"selectedFaction,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Search looks an item up across one realm or the whole roster.
func (c *Client) Search(ctx context.Context, query, server, faction string) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	if server != "" {
		q.Set("server", server)
	}
	if faction != "" {
		q.Set("faction", faction)
	}

	var out SearchResponse
	if err := c.get(ctx, "/api/v1/search?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RealmEntry is one roster realm in the realms response.
type RealmEntry struct {
	RealmKey         string `json:"realmKey"`
	DisplayName      string `json:"displayName"`
	Region           string `json:"region"`
	ConnectedRealmID int    `json:"connectedRealmId,omitempty"`
	Namespace        string `json:"namespace,omitempty"`
	Resolved         bool   `json:"resolved"`
	Source           string `json:"source,omitempty"`
}

// RealmsResponse is the realms endpoint response.
type RealmsResponse struct {
	Realms                []RealmEntry `json:"realms"`
	CredentialsConfigured bool         `json:"credentialsConfigured"`
}

// ListRealms returns the configured realm roster with resolution state.
func (c *Client) ListRealms(ctx context.Context) (*RealmsResponse, error) {
	var out RealmsResponse
	if err := c.get(ctx, "/api/v1/realms", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ItemsResponse is the items endpoint response.
type ItemsResponse struct {
	Items []domain.ItemRecord `json:"items"`
	Total int                 `json:"total"`
}

// ListItems returns catalog items, optionally filtered.
func (c *Client) ListItems(ctx context.Context, query string, popular bool) (*ItemsResponse, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if popular {
		q.Set("popular", "true")
	}

	path := "/api/v1/items"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out ItemsResponse
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DiscoveredRealm is one sweep result in the refresh response.
type DiscoveredRealm struct {
	RealmKey         string `json:"realmKey"`
	Region           string `json:"region"`
	ConnectedRealmID int    `json:"connectedRealmId"`
	Namespace        string `json:"namespace"`
}

// DiscoveryResponse is the discovery refresh response.
type DiscoveryResponse struct {
	Discovered []DiscoveredRealm `json:"discovered"`
	Count      int               `json:"count"`
}

// RefreshDiscovery triggers a discovery sweep for unresolved realms.
func (c *Client) RefreshDiscovery(ctx context.Context) (*DiscoveryResponse, error) {
	var out DiscoveryResponse
	if err := c.post(ctx, "/api/v1/discovery/refresh", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
