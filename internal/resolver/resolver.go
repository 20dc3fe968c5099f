// Package resolver maps realm keys to connected realm descriptors.
// Static config mappings resolve with zero network calls; unknown realms
// fall back to a discovery sweep over candidate regions and namespaces.
package resolver

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wowecon/ahtracker/internal/blizzard"
	"github.com/wowecon/ahtracker/internal/store"
	"github.com/wowecon/ahtracker/pkg/types"
)

// Options bounds the discovery sweep.
type Options struct {
	// Regions to try, in order. The requested realm's own region is
	// always tried first regardless of its position here.
	Regions []domain.Region
	// NamespaceBases are region-less namespace candidates; the sweep
	// composes "<base>-<region>" per region.
	NamespaceBases []string
	// RealmsPerProbe bounds how many connected realms are inspected
	// per (region, namespace) combination.
	RealmsPerProbe int
	// ProbeDelay spaces out upstream calls during the sweep.
	ProbeDelay time.Duration
	// ProbeAuctions verifies a matched realm by fetching its auctions
	// before accepting the mapping.
	ProbeAuctions bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOnDiscovered registers a hook invoked for every mapping the sweep
// finds. Used for notifications; must not block.
func WithOnDiscovered(fn func(store.RealmMapping)) Option {
	return func(r *Resolver) {
		r.onDiscovered = fn
	}
}

// Resolver resolves realm keys. Safe for concurrent use; concurrent
// sweeps for the same key are coalesced.
type Resolver struct {
	client blizzard.GameDataClient
	store  store.Store
	log    *slog.Logger
	opts   Options

	roster map[string]domain.RealmDescriptor

	mu    sync.RWMutex
	cache map[string]domain.RealmDescriptor

	sf           singleflight.Group
	onDiscovered func(store.RealmMapping)
}

// New creates a Resolver over the configured realm roster.
func New(
	client blizzard.GameDataClient,
	st store.Store,
	roster []domain.RealmDescriptor,
	opts Options,
	log *slog.Logger,
	options ...Option,
) *Resolver {
	byKey := make(map[string]domain.RealmDescriptor, len(roster))
	for _, d := range roster {
		byKey[d.RealmKey] = d
	}

	r := &Resolver{
		client: client,
		store:  st,
		log:    log,
		opts:   opts,
		roster: byKey,
		cache:  make(map[string]domain.RealmDescriptor),
	}
	for _, o := range options {
		o(r)
	}
	return r
}

// Resolve returns a usable descriptor for realmKey. Statically resolved
// realms and cached sweep results return without any network calls.
// A key outside the roster, or a sweep that exhausts every candidate,
// returns a NotFoundError.
func (r *Resolver) Resolve(ctx context.Context, realmKey string) (domain.RealmDescriptor, error) {
	static, ok := r.roster[realmKey]
	if !ok {
		return domain.RealmDescriptor{}, &domain.NotFoundError{RealmKey: realmKey}
	}
	if static.Resolved() {
		return static, nil
	}

	r.mu.RLock()
	cached, ok := r.cache[realmKey]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	if m, err := r.store.GetMapping(ctx, realmKey); err == nil && m.Descriptor.Resolved() {
		r.remember(m.Descriptor)
		return m.Descriptor, nil
	}

	v, err, _ := r.sf.Do(realmKey, func() (any, error) {
		desc, err := r.sweep(ctx, static)
		if err != nil {
			return domain.RealmDescriptor{}, err
		}
		r.record(ctx, desc)
		return desc, nil
	})
	if err != nil {
		return domain.RealmDescriptor{}, err
	}
	return v.(domain.RealmDescriptor), nil
}

// Refresh re-runs the discovery sweep for every roster realm that has no
// static mapping, updating the store. It returns the mappings found.
// Cached results are discarded first so the sweep sees current upstream
// state.
func (r *Resolver) Refresh(ctx context.Context) ([]store.RealmMapping, error) {
	r.mu.Lock()
	r.cache = make(map[string]domain.RealmDescriptor)
	r.mu.Unlock()

	var found []store.RealmMapping
	for key, static := range r.roster {
		if static.Resolved() {
			continue
		}
		select {
		case <-ctx.Done():
			return found, ctx.Err()
		default:
		}

		desc, err := r.sweep(ctx, static)
		if err != nil {
			r.log.Warn("discovery refresh: realm still unresolved",
				"realm", key, "error", err)
			continue
		}
		r.record(ctx, desc)
		found = append(found, store.RealmMapping{
			Descriptor: desc,
			Source:     store.SourceDiscovery,
		})
	}
	return found, nil
}

// RealmState is a roster entry plus its current resolution state.
type RealmState struct {
	Descriptor domain.RealmDescriptor `json:"descriptor"`
	Resolved   bool                   `json:"resolved"`
	Source     string                 `json:"source,omitempty"`
}

// States reports the roster with resolution state, consulting the cache
// and store but never the network.
func (r *Resolver) States(ctx context.Context) []RealmState {
	out := make([]RealmState, 0, len(r.roster))
	for key, static := range r.roster {
		st := RealmState{Descriptor: static}
		switch {
		case static.Resolved():
			st.Resolved = true
			st.Source = store.SourceStatic
		default:
			r.mu.RLock()
			cached, ok := r.cache[key]
			r.mu.RUnlock()
			if !ok {
				if m, err := r.store.GetMapping(ctx, key); err == nil && m.Descriptor.Resolved() {
					cached, ok = m.Descriptor, true
				}
			}
			if ok {
				st.Descriptor = cached
				st.Resolved = true
				st.Source = store.SourceDiscovery
			}
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Descriptor.RealmKey < out[j].Descriptor.RealmKey
	})
	return out
}

func (r *Resolver) remember(desc domain.RealmDescriptor) {
	r.mu.Lock()
	r.cache[desc.RealmKey] = desc
	r.mu.Unlock()
}

// record memoizes a sweep result, persists it, and fires the discovery
// hook. Store failures are logged, not fatal: the in-process cache still
// serves the mapping.
func (r *Resolver) record(ctx context.Context, desc domain.RealmDescriptor) {
	r.remember(desc)

	m := store.RealmMapping{
		Descriptor: desc,
		Source:     store.SourceDiscovery,
	}
	if err := r.store.UpsertMapping(ctx, &m); err != nil {
		r.log.Warn("persisting discovered mapping",
			"realm", desc.RealmKey, "error", err)
	}
	if r.onDiscovered != nil {
		r.onDiscovered(m)
	}
}
