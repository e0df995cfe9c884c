package catalog

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Type tags a product as a plain item or a combo with selectable contents.
type Type string

const (
	// TypeSingle is a standalone product with no variant choices.
	TypeSingle Type = "single"
	// TypeCombo is a multi-item product; the buyer picks its contents from
	// VariantOptions.
	TypeCombo Type = "combo"
)

// Product is an immutable catalog entry.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    string
	Type        Type

	// VariantOptions lists the mutually exclusive content choices for a
	// combo product. Empty for single products.
	VariantOptions []string
}

// HasVariantOption reports whether option is one of the product's variant
// choices.
func (p Product) HasVariantOption(option string) bool {
	for _, v := range p.VariantOptions {
		if v == option {
			return true
		}
	}
	return false
}

// Catalog is the static, ordered product list served by the storefront.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	products []Product
	byID     map[string]*Product
}

// New validates the given products and builds a Catalog. Order is preserved
// as given; it is the display order.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]*Product, len(products)),
	}
	copy(c.products, products)

	for i := range c.products {
		p := &c.products[i]
		if err := validate(*p); err != nil {
			return nil, errors.Wrapf(err, "product %q", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, errors.Errorf("duplicate product id %q", p.ID)
		}
		c.byID[p.ID] = p
	}

	return c, nil
}

func validate(p Product) error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Price.IsNegative() {
		return errors.New("price must not be negative")
	}

	switch p.Type {
	case TypeSingle:
		if len(p.VariantOptions) > 0 {
			return errors.New("single product must not define variant options")
		}
	case TypeCombo:
		if len(p.VariantOptions) == 0 {
			return errors.New("combo product requires at least one variant option")
		}
	default:
		return errors.Errorf("unknown product type %q", p.Type)
	}

	return nil
}

// List returns every product in display order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// GetByID returns a single product by its identifier, or ErrNotFound.
func (c *Catalog) GetByID(id string) (*Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *p
	return &out, nil
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
