package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wowecon/ahtracker/internal/engine"
)

// DiscoveryHandler triggers realm discovery sweeps.
type DiscoveryHandler struct {
	engine *engine.Engine
}

// NewDiscoveryHandler creates a new DiscoveryHandler.
func NewDiscoveryHandler(eng *engine.Engine) *DiscoveryHandler {
	return &DiscoveryHandler{engine: eng}
}

// DiscoveredRealm is one sweep result in the refresh response.
type DiscoveredRealm struct {
	RealmKey         string `json:"realmKey"`
	Region           string `json:"region"`
	ConnectedRealmID int    `json:"connectedRealmId"`
	Namespace        string `json:"namespace"`
}

// RefreshDiscoveryOutput is the response for the refresh endpoint.
type RefreshDiscoveryOutput struct {
	Body struct {
		Discovered []DiscoveredRealm `json:"discovered"`
		Count      int               `json:"count"`
	}
}

// RefreshDiscovery re-runs the discovery sweep for unresolved realms.
// The sweep runs synchronously; with the default probe delay a full
// refresh takes a few seconds.
func (h *DiscoveryHandler) RefreshDiscovery(ctx context.Context, _ *struct{}) (*RefreshDiscoveryOutput, error) {
	found, err := h.engine.RefreshMappings(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("discovery sweep failed: " + err.Error())
	}

	out := &RefreshDiscoveryOutput{}
	out.Body.Discovered = make([]DiscoveredRealm, 0, len(found))
	for _, m := range found {
		out.Body.Discovered = append(out.Body.Discovered, DiscoveredRealm{
			RealmKey:         m.Descriptor.RealmKey,
			Region:           string(m.Descriptor.Region),
			ConnectedRealmID: m.Descriptor.ConnectedRealmID,
			Namespace:        m.Descriptor.Namespace,
		})
	}
	out.Body.Count = len(out.Body.Discovered)
	return out, nil
}

// RegisterDiscoveryRoutes registers discovery endpoints with the Huma API.
func RegisterDiscoveryRoutes(api huma.API, h *DiscoveryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh-discovery",
		Method:      http.MethodPost,
		Path:        "/api/v1/discovery/refresh",
		Summary:     "Re-run realm discovery",
		Description: "Sweeps candidate regions and namespaces for unresolved realms and persists new mappings.",
		Tags:        []string{"discovery"},
		Errors:      []int{http.StatusBadGateway},
	}, h.RefreshDiscovery)
}
