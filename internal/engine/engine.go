// Package engine orchestrates searches: token, realm resolution, auction
// retrieval, price aggregation, and the sample-data fallback.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wowecon/ahtracker/internal/blizzard"
	"github.com/wowecon/ahtracker/internal/items"
	"github.com/wowecon/ahtracker/internal/metrics"
	"github.com/wowecon/ahtracker/internal/notify"
	"github.com/wowecon/ahtracker/internal/pricing"
	"github.com/wowecon/ahtracker/internal/resolver"
	"github.com/wowecon/ahtracker/internal/store"
	"github.com/wowecon/ahtracker/pkg/types"
)

// Per-realm error markers. "not configured" covers realms the resolver
// cannot map; the unavailable marker covers transient upstream failures.
const (
	errNotConfigured = "not configured"
	errUnavailable   = "auction data unavailable"
)

const liveNote = "live auction house data from Anniversary realms"

// Engine runs searches against live auction data with graceful
// degradation to the embedded sample catalog. All state is read-only or
// internally synchronized; one Engine serves all requests.
type Engine struct {
	resolver *resolver.Resolver
	catalog  *items.Catalog
	notifier notify.Notifier
	log      *slog.Logger

	realmKeys []string
	cache     *auctionCache
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithNotifier sets the discovery notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// New creates an Engine. realmKeys fixes the roster order used when a
// search targets all realms; cacheTTL of zero disables the auction
// snapshot cache.
func New(
	client blizzard.GameDataClient,
	res *resolver.Resolver,
	catalog *items.Catalog,
	realmKeys []string,
	cacheTTL time.Duration,
	opts ...Option,
) *Engine {
	e := &Engine{
		resolver:  res,
		catalog:   catalog,
		log:       slog.Default(),
		realmKeys: realmKeys,
		cache:     newAuctionCache(cacheTTL, client.Auctions),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.notifier == nil {
		e.notifier = notify.NewNoOpNotifier(e.log)
	}
	return e
}

// Search looks up an item across one realm or the whole roster. It never
// fails outright: upstream trouble degrades to sample data, and the
// result's DataSource records what actually happened. The error return
// covers only context cancellation.
func (e *Engine) Search(ctx context.Context, query, server string) (*domain.SearchResult, error) {
	start := time.Now()
	defer func() {
		metrics.SearchDuration.Observe(time.Since(start).Seconds())
	}()

	servers := e.serversFor(server)
	prices := make(map[string]domain.PriceQuote, len(servers))

	var (
		foundLive   bool
		fetchedAny  bool
		totalCount  int
		upstreamErr error
	)

	for _, key := range servers {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		desc, err := e.resolver.Resolve(ctx, key)
		if err != nil {
			e.log.Debug("realm not resolvable", "realm", key, "error", err)
			prices[key] = domain.PriceQuote{Error: errNotConfigured}
			continue
		}

		listings, err := e.cache.get(ctx, desc)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.log.Warn("fetching auctions failed",
				"realm", key, "error", err)
			upstreamErr = err
			prices[key] = domain.PriceQuote{Error: errUnavailable}
			continue
		}
		fetchedAny = true

		quote := pricing.PriceFor(listings, query)
		prices[key] = quote
		if quote.ListingCount > 0 {
			foundLive = true
			totalCount += quote.ListingCount
		}
	}

	if foundLive {
		metrics.SearchesTotal.WithLabelValues(string(domain.SourceLive)).Inc()
		return &domain.SearchResult{
			Items:          []domain.ItemResult{e.liveItem(query, prices)},
			DataSource:     domain.SourceLive,
			ServersChecked: servers,
			AuctionCount:   totalCount,
		}, nil
	}

	// No realm produced a matching listing. Auth and transport failures
	// without a single successful fetch are reported as fallback-error;
	// everything else is plain sample data.
	source := domain.SourceSample
	reason := "no-live-data"
	errMsg := ""
	if !fetchedAny && upstreamErr != nil {
		source = domain.SourceFallbackError
		errMsg = upstreamErr.Error()
		reason = "upstream-error"
		if errors.Is(upstreamErr, domain.ErrAuth) {
			reason = "auth"
		}
	}
	metrics.SearchesTotal.WithLabelValues(string(source)).Inc()
	metrics.FallbacksTotal.WithLabelValues(reason).Inc()

	return e.fallbackResult(query, servers, prices, source, errMsg), nil
}

// liveItem builds the single live result item: identity from the
// catalog when the query matches a known item, otherwise the raw query.
func (e *Engine) liveItem(query string, prices map[string]domain.PriceQuote) domain.ItemResult {
	name := query
	quality := domain.QualityCommon
	icon := ""
	if matches := e.catalog.Search(query); len(matches) > 0 {
		name = matches[0].Name
		quality = matches[0].Quality
		icon = matches[0].Icon
	}
	return domain.ItemResult{
		Name:    name,
		Quality: quality,
		Icon:    icon,
		Prices:  prices,
		Note:    liveNote,
	}
}

// fallbackResult substitutes sample prices for every catalog item
// matching the query. Realms the resolver could not map keep their
// not-configured entries instead of a sample quote.
func (e *Engine) fallbackResult(
	query string,
	servers []string,
	livePrices map[string]domain.PriceQuote,
	source domain.DataSource,
	errMsg string,
) *domain.SearchResult {
	note := "sample data, item not found in live auctions"
	if source == domain.SourceFallbackError {
		note = "sample data, live auction lookup failed"
	}

	var results []domain.ItemResult
	for _, it := range e.catalog.Search(query) {
		prices := make(map[string]domain.PriceQuote, len(servers))
		for _, key := range servers {
			if q, ok := livePrices[key]; ok && q.Error == errNotConfigured {
				prices[key] = q
				continue
			}
			prices[key] = it.SampleQuote(key)
		}
		results = append(results, domain.ItemResult{
			Name:    it.Name,
			Quality: it.Quality,
			Icon:    it.Icon,
			Prices:  prices,
			Note:    note,
		})
	}

	return &domain.SearchResult{
		Items:          results,
		DataSource:     source,
		ServersChecked: servers,
		Error:          errMsg,
	}
}

// serversFor expands the server parameter into roster keys. Empty and
// "all" mean the whole roster.
func (e *Engine) serversFor(server string) []string {
	if server == "" || server == "all" {
		out := make([]string, len(e.realmKeys))
		copy(out, e.realmKeys)
		return out
	}
	return []string{server}
}

// RefreshMappings re-runs the discovery sweep for unresolved realms and
// announces anything newly found.
func (e *Engine) RefreshMappings(ctx context.Context) ([]store.RealmMapping, error) {
	found, err := e.resolver.Refresh(ctx)
	if err != nil {
		return found, err
	}
	if len(found) > 0 {
		if nerr := e.notifier.AnnounceMappings(ctx, found); nerr != nil {
			e.log.Warn("announcing discovered mappings failed", "error", nerr)
		}
	}
	return found, nil
}

// RealmStates reports the roster with resolution state.
func (e *Engine) RealmStates(ctx context.Context) []resolver.RealmState {
	return e.resolver.States(ctx)
}
