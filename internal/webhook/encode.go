package webhook

import (
	"time"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/michiko-bakery/storefront-api/internal/order"
)

// encodeOrder serializes an order into the intake endpoint's JSON shape.
func encodeOrder(o *order.Order) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("orderNumber", func(e *jx.Encoder) { e.Str(o.Number) })
		e.Field("placedAt", func(e *jx.Encoder) { e.Str(o.PlacedAt.Format(time.RFC3339)) })
		e.Field("timestamp", func(e *jx.Encoder) { e.Str(o.Timestamp) })

		e.Field("customerName", func(e *jx.Encoder) { e.Str(o.Form.CustomerName) })
		e.Field("customerPhone", func(e *jx.Encoder) { e.Str(o.Form.CustomerPhone) })
		e.Field("customerEmail", func(e *jx.Encoder) { e.Str(o.Form.CustomerEmail) })
		e.Field("deliveryMethod", func(e *jx.Encoder) { e.Str(string(o.Form.DeliveryMethod)) })
		e.Field("timeSlot", func(e *jx.Encoder) { e.Str(string(o.Form.TimeSlot)) })
		e.Field("recipientName", func(e *jx.Encoder) { e.Str(o.Form.RecipientName) })
		e.Field("recipientPhone", func(e *jx.Encoder) { e.Str(o.Form.RecipientPhone) })
		e.Field("address", func(e *jx.Encoder) { e.Str(o.Form.Address) })
		e.Field("specialRequests", func(e *jx.Encoder) { e.Str(o.Form.SpecialRequests) })

		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, item := range o.Items {
					encodeItem(e, item)
				}
			})
		})

		e.Field("subtotal", func(e *jx.Encoder) { encodeDecimal(e, o.Subtotal) })
		e.Field("shippingFee", func(e *jx.Encoder) { encodeDecimal(e, o.ShippingFee) })
		e.Field("total", func(e *jx.Encoder) { encodeDecimal(e, o.Total) })
	})
	return e.Bytes()
}

func encodeItem(e *jx.Encoder, item order.Line) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("productId", func(e *jx.Encoder) { e.Str(item.ProductID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(item.Name) })
		e.Field("variantOption", func(e *jx.Encoder) { e.Str(item.VariantOption) })
		e.Field("cosmeticOption", func(e *jx.Encoder) { e.Str(item.CosmeticOption) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
		e.Field("unitPrice", func(e *jx.Encoder) { encodeDecimal(e, item.UnitPrice) })
		e.Field("lineTotal", func(e *jx.Encoder) { encodeDecimal(e, item.LineTotal) })
	})
}

func encodeDecimal(e *jx.Encoder, d decimal.Decimal) {
	e.Num(jx.Num(d.String()))
}
