package blizzard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wowecon/ahtracker/internal/metrics"
	domain "github.com/wowecon/ahtracker/pkg/types"
)

const defaultLocale = "en_US"

// Client implements GameDataClient against the live Battle.net API.
// Every call goes through the rate limiter (when set) and sends the
// bearer token in the Authorization header; query-string tokens are
// rejected by some namespaces and are never used.
type Client struct {
	tokens      TokenProvider
	locale      string
	client      *http.Client
	rateLimiter *RateLimiter

	// baseOverride replaces the region-derived API host, for tests.
	baseOverride string
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithLocale overrides the default en_US locale.
func WithLocale(l string) ClientOption {
	return func(c *Client) {
		c.locale = l
	}
}

// WithGameDataHTTPClient overrides the default HTTP client.
func WithGameDataHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and
// daily API call limits. When set, every request goes through Wait() first.
func WithRateLimiter(r *RateLimiter) ClientOption {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithBaseURL overrides the region-derived API host. For tests.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.baseOverride = base
	}
}

// NewClient creates a Battle.net Game Data API client.
func NewClient(tokens TokenProvider, opts ...ClientOption) *Client {
	c := &Client{
		tokens: tokens,
		locale: defaultLocale,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type realmIndexResponse struct {
	ConnectedRealms []ConnectedRealmRef `json:"connected_realms"`
}

// ConnectedRealmIndex implements GameDataClient.ConnectedRealmIndex.
func (c *Client) ConnectedRealmIndex(
	ctx context.Context,
	region domain.Region,
	namespace string,
) ([]ConnectedRealmRef, error) {
	u := c.base(region) + "/data/wow/connected-realm/index?" + c.query(namespace)

	var out realmIndexResponse
	if err := c.getJSON(ctx, "realm-index", u, &out); err != nil {
		return nil, err
	}
	return out.ConnectedRealms, nil
}

// ConnectedRealm implements GameDataClient.ConnectedRealm.
func (c *Client) ConnectedRealm(
	ctx context.Context,
	region domain.Region,
	namespace string,
	id int,
) (*RealmDetail, error) {
	u := c.base(region) + "/data/wow/connected-realm/" + strconv.Itoa(id) +
		"?" + c.query(namespace)

	out := &RealmDetail{}
	if err := c.getJSON(ctx, "realm-detail", u, out); err != nil {
		return nil, err
	}
	return out, nil
}

type auctionsResponse struct {
	Auctions []wireAuction `json:"auctions"`
}

type wireAuction struct {
	Item struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"item"`
	Buyout   int64 `json:"buyout"`
	Bid      int64 `json:"bid"`
	Quantity int   `json:"quantity"`
}

// Auctions implements GameDataClient.Auctions. The descriptor must be
// resolved; callers are expected to fall back to sample data otherwise.
func (c *Client) Auctions(
	ctx context.Context,
	desc domain.RealmDescriptor,
) ([]domain.AuctionListing, error) {
	if !desc.Resolved() {
		return nil, &domain.NotFoundError{RealmKey: desc.RealmKey}
	}

	base := c.baseOverride
	if base == "" {
		base = desc.APIBase()
	}
	u := base + "/data/wow/connected-realm/" +
		strconv.Itoa(desc.ConnectedRealmID) + "/auctions?" + c.query(desc.Namespace)

	var out auctionsResponse
	if err := c.getJSON(ctx, "auctions", u, &out); err != nil {
		return nil, err
	}
	return toListings(out.Auctions), nil
}

func toListings(auctions []wireAuction) []domain.AuctionListing {
	listings := make([]domain.AuctionListing, 0, len(auctions))
	for i := range auctions {
		a := &auctions[i]
		listings = append(listings, domain.AuctionListing{
			ItemID:   a.Item.ID,
			ItemName: a.Item.Name,
			Buyout:   a.Buyout,
			Bid:      a.Bid,
			Quantity: a.Quantity,
		})
	}
	return listings
}

func (c *Client) base(region domain.Region) string {
	if c.baseOverride != "" {
		return c.baseOverride
	}
	return region.APIBase()
}

func (c *Client) query(namespace string) string {
	params := url.Values{}
	params.Set("namespace", namespace)
	params.Set("locale", c.locale)
	return params.Encode()
}

// getJSON performs one bearer-authenticated GET and decodes the body.
// Non-2xx responses become FetchErrors carrying the operation and status.
func (c *Client) getJSON(ctx context.Context, operation, u string, out any) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.BlizzardDailyLimitHits.Inc()
			}
			return fmt.Errorf("rate limit: %w", err)
		}
		metrics.BlizzardDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}
	metrics.BlizzardAPICallsTotal.WithLabelValues(operation).Inc()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("getting auth token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.FetchError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.FetchError{Operation: operation, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return &domain.FetchError{Operation: operation, Status: resp.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing %s response: %w", operation, err)
	}
	return nil
}
