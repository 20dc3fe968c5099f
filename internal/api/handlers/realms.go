package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wowecon/ahtracker/internal/engine"
)

// RealmsHandler reports the configured realm roster.
type RealmsHandler struct {
	engine  *engine.Engine
	credsOK bool
}

// NewRealmsHandler creates a new RealmsHandler. credsOK reports whether
// Battle.net credentials are configured; only presence is ever exposed.
func NewRealmsHandler(eng *engine.Engine, credsOK bool) *RealmsHandler {
	return &RealmsHandler{engine: eng, credsOK: credsOK}
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

// ListRealmsOutput is the response for the realms endpoint.
type ListRealmsOutput struct {
	Body struct {
		Realms                []RealmEntry `json:"realms"`
		CredentialsConfigured bool         `json:"credentialsConfigured"`
	}
}

// ListRealms returns the roster with resolution state. It consults the
// mapping cache and store but never the upstream API.
func (h *RealmsHandler) ListRealms(ctx context.Context, _ *struct{}) (*ListRealmsOutput, error) {
	states := h.engine.RealmStates(ctx)

	out := &ListRealmsOutput{}
	out.Body.Realms = make([]RealmEntry, 0, len(states))
	out.Body.CredentialsConfigured = h.credsOK
	for _, s := range states {
		out.Body.Realms = append(out.Body.Realms, RealmEntry{
			RealmKey:         s.Descriptor.RealmKey,
			DisplayName:      s.Descriptor.DisplayName,
			Region:           string(s.Descriptor.Region),
			ConnectedRealmID: s.Descriptor.ConnectedRealmID,
			Namespace:        s.Descriptor.Namespace,
			Resolved:         s.Resolved,
			Source:           s.Source,
		})
	}
	return out, nil
}

// RegisterRealmRoutes registers realm endpoints with the Huma API.
func RegisterRealmRoutes(api huma.API, h *RealmsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-realms",
		Method:      http.MethodGet,
		Path:        "/api/v1/realms",
		Summary:     "List configured realms",
		Description: "Returns the realm roster with resolution state and mapping source.",
		Tags:        []string{"realms"},
	}, h.ListRealms)
}
