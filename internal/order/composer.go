package order

import (
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/shopspring/decimal"

	"github.com/michiko-bakery/storefront-api/internal/cart"
)

// Shipping defaults. The threshold and flat fee are configuration, not
// behaviour: the composition algorithm never changes when they do.
var (
	// DefaultFreeShippingThreshold is the subtotal at or above which home
	// delivery ships free.
	DefaultFreeShippingThreshold = decimal.NewFromInt(2000)
	// DefaultShippingFee is the flat courier fee below the threshold.
	DefaultShippingFee = decimal.NewFromInt(180)
)

// DefaultOrderPrefix starts every generated order number.
const DefaultOrderPrefix = "MK"

const (
	issuedCapacity = 1_000_000
	issuedFPR      = 0.0001
)

// ComposerConfig tunes order composition. Zero values fall back to the
// package defaults.
type ComposerConfig struct {
	OrderPrefix           string
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

// Composer turns a cart snapshot and a filled-in form into an immutable
// Order: it computes the money, stamps the time, and issues the order number.
type Composer struct {
	cfg ComposerConfig
	now func() time.Time

	// issued tracks order numbers handed out by this process so a repeat
	// within the same millisecond window gets a fresh suffix. Best effort
	// only; cross-process collisions remain possible and accepted.
	mu     sync.Mutex
	issued *bloom.BloomFilter
}

// NewComposer creates a Composer with the given configuration.
func NewComposer(cfg ComposerConfig) *Composer {
	if cfg.OrderPrefix == "" {
		cfg.OrderPrefix = DefaultOrderPrefix
	}
	if cfg.FreeShippingThreshold.IsZero() {
		cfg.FreeShippingThreshold = DefaultFreeShippingThreshold
	}
	if cfg.ShippingFee.IsZero() {
		cfg.ShippingFee = DefaultShippingFee
	}
	return &Composer{
		cfg:    cfg,
		now:    time.Now,
		issued: bloom.NewWithEstimates(issuedCapacity, issuedFPR),
	}
}

// Line is a frozen copy of one cart line at composition time. Later cart
// mutation cannot alter it.
type Line struct {
	ProductID      string
	Name           string
	VariantOption  string
	CosmeticOption string
	UnitPrice      decimal.Decimal
	Quantity       int
	LineTotal      decimal.Decimal
}

// Order is the complete, read-only order record. It is built once by
// Compose and never mutated afterwards.
type Order struct {
	Number   string
	PlacedAt time.Time
	// Timestamp is PlacedAt formatted for humans. Display only; no ordering
	// guarantees.
	Timestamp string

	Form  Form
	Items []Line

	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Total       decimal.Decimal
}

// Compose assembles an Order from the cart snapshot and form.
//
// The form should already be validated; Compose only normalizes it (clearing
// delivery fields on meetup orders). Composing from an empty snapshot is
// permitted here — rejecting empty carts is the caller's job, see
// Service.Checkout.
func (c *Composer) Compose(lines []cart.Line, f Form) *Order {
	items := make([]Line, len(lines))
	subtotal := decimal.Zero
	for i, l := range lines {
		items[i] = Line{
			ProductID:      l.Key.ProductID,
			Name:           l.Product.Name,
			VariantOption:  l.Key.VariantOption,
			CosmeticOption: l.Key.CosmeticOption,
			UnitPrice:      l.Product.Price,
			Quantity:       l.Quantity,
			LineTotal:      l.Total(),
		}
		subtotal = subtotal.Add(items[i].LineTotal)
	}

	f = f.normalized()

	fee := decimal.Zero
	if f.DeliveryMethod == DeliveryHome && subtotal.LessThan(c.cfg.FreeShippingThreshold) {
		fee = c.cfg.ShippingFee
	}

	now := c.now()

	return &Order{
		Number:      c.nextNumber(now),
		PlacedAt:    now,
		Timestamp:   now.Format("2006/01/02 15:04"),
		Form:        f,
		Items:       items,
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal.Add(fee),
	}
}
