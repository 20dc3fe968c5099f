package resolver

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/wowecon/ahtracker/internal/blizzard"
	"github.com/wowecon/ahtracker/internal/metrics"
	"github.com/wowecon/ahtracker/pkg/types"
)

// sweep walks candidate (region, namespace) combinations for a realm.
// Each combination is probed at most once; the first confirmed match
// wins. Exhaustion returns a NotFoundError.
func (r *Resolver) sweep(ctx context.Context, static domain.RealmDescriptor) (domain.RealmDescriptor, error) {
	start := time.Now()
	defer func() {
		metrics.SweepDuration.Observe(time.Since(start).Seconds())
	}()

	keywords := keywordsFor(static)
	r.log.Info("starting discovery sweep",
		"realm", static.RealmKey, "keywords", keywords)

	for _, region := range r.sweepRegions(static.Region) {
		for _, base := range r.opts.NamespaceBases {
			ns := base + "-" + string(region)
			metrics.SweepProbesTotal.Inc()

			desc, found, err := r.probeNamespace(ctx, static, region, ns, keywords)
			if err != nil {
				if ctx.Err() != nil {
					metrics.SweepsTotal.WithLabelValues("canceled").Inc()
					return domain.RealmDescriptor{}, ctx.Err()
				}
				r.log.Debug("namespace probe failed",
					"realm", static.RealmKey, "region", region,
					"namespace", ns, "error", err)
				continue
			}
			if found {
				r.log.Info("discovery sweep matched realm",
					"realm", static.RealmKey, "region", region,
					"namespace", ns,
					"connected_realm_id", desc.ConnectedRealmID)
				metrics.SweepsTotal.WithLabelValues("found").Inc()
				return desc, nil
			}
		}
	}

	metrics.SweepsTotal.WithLabelValues("exhausted").Inc()
	return domain.RealmDescriptor{}, &domain.NotFoundError{RealmKey: static.RealmKey}
}

// probeNamespace inspects a bounded prefix of the connected realms in
// one (region, namespace) combination, looking for a keyword match.
func (r *Resolver) probeNamespace(
	ctx context.Context,
	static domain.RealmDescriptor,
	region domain.Region,
	namespace string,
	keywords []string,
) (domain.RealmDescriptor, bool, error) {
	refs, err := r.client.ConnectedRealmIndex(ctx, region, namespace)
	if err != nil {
		return domain.RealmDescriptor{}, false, err
	}

	limit := r.opts.RealmsPerProbe
	if limit <= 0 || limit > len(refs) {
		limit = len(refs)
	}

	for _, ref := range refs[:limit] {
		if err := r.pause(ctx); err != nil {
			return domain.RealmDescriptor{}, false, err
		}

		id, ok := parseRealmID(ref.Href)
		if !ok {
			continue
		}

		detail, err := r.client.ConnectedRealm(ctx, region, namespace, id)
		if err != nil {
			if ctx.Err() != nil {
				return domain.RealmDescriptor{}, false, err
			}
			r.log.Debug("realm detail fetch failed",
				"region", region, "namespace", namespace,
				"connected_realm_id", id, "error", err)
			continue
		}

		if !matchesKeywords(detail, keywords) {
			continue
		}

		candidate := domain.RealmDescriptor{
			RealmKey:         static.RealmKey,
			DisplayName:      static.DisplayName,
			Region:           region,
			ConnectedRealmID: detail.ID,
			Namespace:        namespace,
		}

		if r.opts.ProbeAuctions {
			if _, err := r.client.Auctions(ctx, candidate); err != nil {
				if ctx.Err() != nil {
					return domain.RealmDescriptor{}, false, err
				}
				r.log.Debug("auction probe rejected candidate",
					"realm", static.RealmKey, "region", region,
					"namespace", namespace, "error", err)
				continue
			}
		}

		return candidate, true, nil
	}

	return domain.RealmDescriptor{}, false, nil
}

// sweepRegions orders candidate regions: the realm's configured region
// first, then the remaining configured regions in order, deduplicated.
func (r *Resolver) sweepRegions(own domain.Region) []domain.Region {
	out := make([]domain.Region, 0, len(r.opts.Regions)+1)
	seen := make(map[domain.Region]bool)
	if own != "" {
		out = append(out, own)
		seen[own] = true
	}
	for _, reg := range r.opts.Regions {
		if !seen[reg] {
			out = append(out, reg)
			seen[reg] = true
		}
	}
	return out
}

// pause waits the configured inter-probe delay, honoring cancellation.
func (r *Resolver) pause(ctx context.Context) error {
	if r.opts.ProbeDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(r.opts.ProbeDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// keywordsFor builds the lowercase match terms for a realm: its key plus
// the words of its display name.
func keywordsFor(d domain.RealmDescriptor) []string {
	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(d.RealmKey)
	for _, w := range strings.Fields(d.DisplayName) {
		add(w)
	}
	return out
}

// matchesKeywords reports whether any realm in the connected group
// matches any keyword by case-insensitive substring on name or slug.
func matchesKeywords(detail *blizzard.RealmDetail, keywords []string) bool {
	for _, realm := range detail.Realms {
		name := strings.ToLower(realm.Name)
		slug := strings.ToLower(realm.Slug)
		for _, kw := range keywords {
			if strings.Contains(name, kw) || strings.Contains(slug, kw) {
				return true
			}
		}
	}
	return false
}

// parseRealmID extracts the trailing connected realm ID from an index
// href like ".../data/wow/connected-realm/6103?namespace=...".
func parseRealmID(href string) (int, bool) {
	if i := strings.IndexByte(href, '?'); i >= 0 {
		href = href[:i]
	}
	href = strings.TrimSuffix(href, "/")
	seg := href[strings.LastIndexByte(href, '/')+1:]
	id, err := strconv.Atoi(seg)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
