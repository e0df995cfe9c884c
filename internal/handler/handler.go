package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/michiko-bakery/storefront-api/internal/cart"
	"github.com/michiko-bakery/storefront-api/internal/catalog"
	"github.com/michiko-bakery/storefront-api/internal/order"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// ImageBaseURL is prepended to relative image paths in product responses.
	// When empty, image paths are returned as stored in the catalog.
	ImageBaseURL string
}

// Handler exposes the storefront over HTTP, delegating all business logic to
// the catalog, cart manager, and checkout service.
type Handler struct {
	catalog      *catalog.Catalog
	carts        *cart.Manager
	orders       *order.Service
	imageBaseURL string
}

// New constructs a Handler with the required dependencies.
func New(cfg Config, cat *catalog.Catalog, carts *cart.Manager, orders *order.Service) *Handler {
	return &Handler{
		catalog:      cat,
		carts:        carts,
		orders:       orders,
		imageBaseURL: cfg.ImageBaseURL,
	}
}

// Routes registers all API endpoints on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)

	mux.HandleFunc("POST /api/carts", h.createCart)
	mux.HandleFunc("GET /api/carts/{id}", h.getCart)
	mux.HandleFunc("POST /api/carts/{id}/items", h.addItem)
	mux.HandleFunc("PUT /api/carts/{id}/items", h.updateItem)
	mux.HandleFunc("DELETE /api/carts/{id}/items", h.removeItem)
	mux.HandleFunc("POST /api/carts/{id}/checkout", h.checkout)
}

// errorResponse is the JSON error body for all endpoints.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zctx.From(r.Context()).Debug("Write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Code: status, Message: msg})
}

// decodeJSON reads the request body into dst. On failure it writes a 400
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
