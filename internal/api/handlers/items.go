package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wowecon/ahtracker/internal/items"
	"github.com/wowecon/ahtracker/pkg/types"
)

// ItemsHandler serves the tracked item catalog.
type ItemsHandler struct {
	catalog *items.Catalog
}

// NewItemsHandler creates a new ItemsHandler.
func NewItemsHandler(c *items.Catalog) *ItemsHandler {
	return &ItemsHandler{catalog: c}
}

// ListItemsInput filters the catalog listing.
type ListItemsInput struct {
	Query   string `query:"q"       doc:"Name substring filter" example:"elixir"`
	Popular bool   `query:"popular" doc:"Only return the curated popular items"`
}

// ListItemsOutput is the response for the items endpoint.
type ListItemsOutput struct {
	Body struct {
		Items []domain.ItemRecord `json:"items"`
		Total int                 `json:"total"`
	}
}

// ListItems returns catalog items, optionally filtered by name substring
// or the popular flag.
func (h *ItemsHandler) ListItems(_ context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	var matched []items.Item
	switch {
	case input.Popular:
		matched = h.catalog.Popular()
	case input.Query != "":
		matched = h.catalog.Search(input.Query)
	default:
		matched = h.catalog.Items
	}

	out := &ListItemsOutput{}
	out.Body.Items = make([]domain.ItemRecord, 0, len(matched))
	for _, it := range matched {
		out.Body.Items = append(out.Body.Items, it.ItemRecord)
	}
	out.Body.Total = len(out.Body.Items)
	return out, nil
}

// RegisterItemRoutes registers item catalog endpoints with the Huma API.
func RegisterItemRoutes(api huma.API, h *ItemsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-items",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "List tracked items",
		Description: "Returns the embedded item catalog, optionally filtered.",
		Tags:        []string{"items"},
	}, h.ListItems)
}
