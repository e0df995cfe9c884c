package cart

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/michiko-bakery/storefront-api/internal/catalog"
)

// ValidationError indicates a rejected cart mutation: a missing required
// variant choice or a bad quantity. It is never defaulted away silently.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// LineKey is the composite identity of a cart line. Two lines are the same
// entry only when product, variant option, and cover option all match.
type LineKey struct {
	ProductID      string
	VariantOption  string
	CosmeticOption string
}

// Line is one cart entry: a product plus its selected options and quantity.
// Quantity is always positive; a line that would drop to zero is removed
// instead.
type Line struct {
	Key      LineKey
	Product  catalog.Product
	Quantity int
}

// Total returns price * quantity for this line.
func (l Line) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart owns a set of lines in insertion order. All mutation flows through it,
// and every method serializes against the others, so no caller can ever
// observe a zero or negative quantity line.
type Cart struct {
	mu    sync.Mutex
	lines []*Line
	index map[LineKey]*Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: make(map[LineKey]*Line)}
}

// Add puts quantity units of the product into the cart. Adding the same
// (product, variant, cover) identity again increases the existing line;
// a new identity appends a line at the end.
//
// Combo products require a variant option drawn from the product's list;
// single products accept none. Violations return a *ValidationError.
func (c *Cart) Add(p catalog.Product, quantity int, variantOption, cosmeticOption string) error {
	if quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be greater than 0"}
	}

	switch p.Type {
	case catalog.TypeCombo:
		if variantOption == "" {
			return &ValidationError{Field: "variantOption", Reason: "combo product requires a variant choice"}
		}
		if !p.HasVariantOption(variantOption) {
			return &ValidationError{Field: "variantOption", Reason: fmt.Sprintf("%q is not an option of product %s", variantOption, p.ID)}
		}
	default:
		if variantOption != "" {
			return &ValidationError{Field: "variantOption", Reason: fmt.Sprintf("product %s has no variant options", p.ID)}
		}
	}

	key := LineKey{ProductID: p.ID, VariantOption: variantOption, CosmeticOption: cosmeticOption}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.index[key]; ok {
		line.Quantity += quantity
		return nil
	}

	line := &Line{Key: key, Product: p, Quantity: quantity}
	c.lines = append(c.lines, line)
	c.index[key] = line
	return nil
}

// UpdateQuantity sets a line's quantity to exactly quantity. A value of zero
// or below removes the line. Updating an absent line is a no-op.
func (c *Cart) UpdateQuantity(key LineKey, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.index[key]; !ok {
		return
	}
	if quantity <= 0 {
		c.remove(key)
		return
	}
	c.index[key].Quantity = quantity
}

// Remove deletes the line with the given identity. Removing an absent line
// is a no-op, not an error.
func (c *Cart) Remove(key LineKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(key)
}

// remove must be called with c.mu held.
func (c *Cart) remove(key LineKey) {
	if _, ok := c.index[key]; !ok {
		return
	}
	delete(c.index, key)
	for i, line := range c.lines {
		if line.Key == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.index = make(map[LineKey]*Line)
}

// Lines returns a snapshot of the cart contents in insertion order. The
// returned values are copies; later cart mutation does not affect them.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	for i, line := range c.lines {
		out[i] = *line
	}
	return out
}

// TotalItems returns the sum of all line quantities.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the sum of all line totals. It is recomputed on every
// call; nothing is cached.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	sum := decimal.Zero
	for _, line := range c.lines {
		sum = sum.Add(line.Total())
	}
	return sum
}
