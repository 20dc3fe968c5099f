package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wowecon/ahtracker/internal/engine"
	"github.com/wowecon/ahtracker/pkg/types"
)

// SearchHandler handles item price searches.
type SearchHandler struct {
	engine *engine.Engine
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(eng *engine.Engine) *SearchHandler {
	return &SearchHandler{engine: eng}
}

// SearchInput is the query for the search endpoint. Query is checked in
// the handler rather than marked required: a missing q must answer 400,
// not a validation 422.
type SearchInput struct {
	Query   string `query:"q"       doc:"Item name or substring" example:"black lotus"`
	Server  string `query:"server"  doc:"Realm key, or \"all\" for the whole roster" example:"dreamscythe"`
	Faction string `query:"faction" doc:"Faction filter (informational; the auction house is shared)" enum:"alliance,horde,both," example:"both"`
}

// SearchOutput is the response for the search endpoint.
type SearchOutput struct {
	Body struct {
		domain.SearchResult

		SearchQuery     string    `json:"searchQuery"`
		SelectedServer  string    `json:"selectedServer,omitempty"`
		SelectedFaction string    `json:"selectedFaction,omitempty"`
		Timestamp       time.Time `json:"timestamp"`
	}
}

// Search looks an item up across the configured realms. Upstream
// failures degrade to sample data inside the engine; this endpoint only
// fails for a missing query or a canceled request.
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if input.Query == "" {
		return nil, huma.Error400BadRequest("Search query required")
	}

	result, err := h.engine.Search(ctx, input.Query, input.Server)
	if err != nil {
		return nil, err
	}

	out := &SearchOutput{}
	out.Body.SearchResult = *result
	out.Body.SearchQuery = input.Query
	out.Body.SelectedServer = input.Server
	out.Body.SelectedFaction = input.Faction
	out.Body.Timestamp = time.Now().UTC()
	return out, nil
}

// RegisterSearchRoutes registers search endpoints with the Huma API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-auctions",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search auction house prices",
		Description: "Aggregates current auction prices for an item across Anniversary realms, with sample-data fallback.",
		Tags:        []string{"search"},
		Errors:      []int{http.StatusBadRequest},
	}, h.Search)
}
