package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/michiko-bakery/storefront-api/internal/order"
	"github.com/michiko-bakery/storefront-api/internal/webhook"
)

type checkoutRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerEmail   string `json:"customerEmail,omitempty"`
	DeliveryMethod  string `json:"deliveryMethod"`
	TimeSlot        string `json:"timeSlot"`
	RecipientName   string `json:"recipientName,omitempty"`
	RecipientPhone  string `json:"recipientPhone,omitempty"`
	Address         string `json:"address,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

type orderItemResponse struct {
	ProductID      string  `json:"productId"`
	Name           string  `json:"name"`
	VariantOption  string  `json:"variantOption,omitempty"`
	CosmeticOption string  `json:"cosmeticOption,omitempty"`
	UnitPrice      float64 `json:"unitPrice"`
	Quantity       int     `json:"quantity"`
	LineTotal      float64 `json:"lineTotal"`
}

type orderResponse struct {
	OrderNumber    string              `json:"orderNumber"`
	PlacedAt       string              `json:"placedAt"`
	Timestamp      string              `json:"timestamp"`
	DeliveryMethod string              `json:"deliveryMethod"`
	TimeSlot       string              `json:"timeSlot"`
	Items          []orderItemResponse `json:"items"`
	Subtotal       float64             `json:"subtotal"`
	ShippingFee    float64             `json:"shippingFee"`
	Total          float64             `json:"total"`
}

// checkout composes an order from the cart and the submitted form, sends it
// to the intake endpoint, and returns the order record. The cart is cleared
// on success and preserved on any failure.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, ok := h.loadCart(w, r, id)
	if !ok {
		return
	}

	var req checkoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.orders.Checkout(r.Context(), c, order.Form{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		DeliveryMethod:  order.DeliveryMethod(req.DeliveryMethod),
		TimeSlot:        order.TimeSlot(req.TimeSlot),
		RecipientName:   req.RecipientName,
		RecipientPhone:  req.RecipientPhone,
		Address:         req.Address,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		h.writeCheckoutError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, order.ErrEmptyCart) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var vErr *order.ValidationError
	if errors.As(err, &vErr) {
		writeError(w, r, http.StatusUnprocessableEntity, vErr.Error())
		return
	}

	var sErr *webhook.SubmissionError
	if errors.As(err, &sErr) {
		zctx.From(r.Context()).Warn("Order submission failed", zap.Error(err))
		writeError(w, r, http.StatusBadGateway, "order submission failed, please try again")
		return
	}

	zctx.From(r.Context()).Error("Checkout failed", zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, "internal error")
}

func toOrderResponse(o *order.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemResponse{
			ProductID:      item.ProductID,
			Name:           item.Name,
			VariantOption:  item.VariantOption,
			CosmeticOption: item.CosmeticOption,
			UnitPrice:      item.UnitPrice.InexactFloat64(),
			Quantity:       item.Quantity,
			LineTotal:      item.LineTotal.InexactFloat64(),
		}
	}

	return orderResponse{
		OrderNumber:    o.Number,
		PlacedAt:       o.PlacedAt.Format(time.RFC3339),
		Timestamp:      o.Timestamp,
		DeliveryMethod: string(o.Form.DeliveryMethod),
		TimeSlot:       string(o.Form.TimeSlot),
		Items:          items,
		Subtotal:       o.Subtotal.InexactFloat64(),
		ShippingFee:    o.ShippingFee.InexactFloat64(),
		Total:          o.Total.InexactFloat64(),
	}
}
