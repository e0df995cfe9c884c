package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/michiko-bakery/storefront-api/internal/cart"
	"github.com/michiko-bakery/storefront-api/internal/catalog"
)

type cartLineResponse struct {
	ProductID      string  `json:"productId"`
	Name           string  `json:"name"`
	VariantOption  string  `json:"variantOption,omitempty"`
	CosmeticOption string  `json:"cosmeticOption,omitempty"`
	UnitPrice      float64 `json:"unitPrice"`
	Quantity       int     `json:"quantity"`
	LineTotal      float64 `json:"lineTotal"`
}

type cartResponse struct {
	ID         string             `json:"id"`
	Items      []cartLineResponse `json:"items"`
	TotalItems int                `json:"totalItems"`
	TotalPrice float64            `json:"totalPrice"`
}

type addItemRequest struct {
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity,omitempty"`
	VariantOption  string `json:"variantOption,omitempty"`
	CosmeticOption string `json:"cosmeticOption,omitempty"`
}

type updateItemRequest struct {
	ProductID      string `json:"productId"`
	VariantOption  string `json:"variantOption,omitempty"`
	CosmeticOption string `json:"cosmeticOption,omitempty"`
	Quantity       int    `json:"quantity"`
}

// createCart allocates a fresh session cart.
func (h *Handler) createCart(w http.ResponseWriter, r *http.Request) {
	id, c := h.carts.Create()
	writeJSON(w, r, http.StatusCreated, toCartResponse(id, c))
}

// getCart returns the cart's lines and derived totals.
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, ok := h.loadCart(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, toCartResponse(id, c))
}

// addItem puts a product into the cart. An omitted quantity means one unit.
func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, ok := h.loadCart(w, r, id)
	if !ok {
		return
	}

	var req addItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	p, err := h.catalog.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, r, http.StatusUnprocessableEntity, "product "+req.ProductID+" not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	if err := c.Add(*p, req.Quantity, req.VariantOption, req.CosmeticOption); err != nil {
		var vErr *cart.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, r, http.StatusUnprocessableEntity, vErr.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, r, http.StatusOK, toCartResponse(id, c))
}

// updateItem sets a line's quantity to an absolute value; zero or below
// removes the line.
func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, ok := h.loadCart(w, r, id)
	if !ok {
		return
	}

	var req updateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c.UpdateQuantity(cart.LineKey{
		ProductID:      req.ProductID,
		VariantOption:  req.VariantOption,
		CosmeticOption: req.CosmeticOption,
	}, req.Quantity)

	writeJSON(w, r, http.StatusOK, toCartResponse(id, c))
}

// removeItem deletes a line by its identity, passed as query parameters.
// Removing an absent line succeeds.
func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, ok := h.loadCart(w, r, id)
	if !ok {
		return
	}

	q := r.URL.Query()
	c.Remove(cart.LineKey{
		ProductID:      q.Get("productId"),
		VariantOption:  q.Get("variantOption"),
		CosmeticOption: q.Get("cosmeticOption"),
	})

	writeJSON(w, r, http.StatusOK, toCartResponse(id, c))
}

// loadCart fetches the session cart or writes a 404.
func (h *Handler) loadCart(w http.ResponseWriter, r *http.Request, id string) (*cart.Cart, bool) {
	c, err := h.carts.Get(id)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "cart not found")
		return nil, false
	}
	return c, true
}

func toCartResponse(id string, c *cart.Cart) cartResponse {
	lines := c.Lines()

	items := make([]cartLineResponse, len(lines))
	totalItems := 0
	for i, l := range lines {
		items[i] = cartLineResponse{
			ProductID:      l.Key.ProductID,
			Name:           l.Product.Name,
			VariantOption:  l.Key.VariantOption,
			CosmeticOption: l.Key.CosmeticOption,
			UnitPrice:      l.Product.Price.InexactFloat64(),
			Quantity:       l.Quantity,
			LineTotal:      l.Total().InexactFloat64(),
		}
		totalItems += l.Quantity
	}

	return cartResponse{
		ID:         id,
		Items:      items,
		TotalItems: totalItems,
		TotalPrice: c.TotalPrice().InexactFloat64(),
	}
}
