package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/michiko-bakery/storefront-api/internal/catalog"
)

type productResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	Image          string   `json:"image"`
	Category       string   `json:"category"`
	Type           string   `json:"type"`
	VariantOptions []string `json:"variantOptions,omitempty"`
}

// listProducts returns every product in display order.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.List()

	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = h.toProductResponse(p)
	}
	writeJSON(w, r, http.StatusOK, out)
}

// getProduct returns a single product by ID.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, r, http.StatusOK, h.toProductResponse(*p))
}

// toProductResponse converts a catalog product into the API shape. Image
// paths are prefixed with the configured image base URL.
func (h *Handler) toProductResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price.InexactFloat64(),
		Image:          h.imageBaseURL + p.Image,
		Category:       p.Category,
		Type:           string(p.Type),
		VariantOptions: p.VariantOptions,
	}
}
