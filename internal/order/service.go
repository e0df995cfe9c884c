package order

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/michiko-bakery/storefront-api/internal/cart"
)

// ErrEmptyCart is returned when checkout is attempted on a cart with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// Submitter delivers a composed order to the remote intake endpoint.
// Submission is best effort: a nil return means the bytes were sent, not
// that anyone accepted the order.
type Submitter interface {
	Submit(ctx context.Context, o *Order) error
}

// Service runs the checkout flow: validate the form, compose the order,
// submit it, and reset the cart.
type Service struct {
	composer  *Composer
	submitter Submitter
}

// NewService creates a checkout Service.
func NewService(composer *Composer, submitter Submitter) *Service {
	return &Service{
		composer:  composer,
		submitter: submitter,
	}
}

// Checkout validates the form, composes an immutable Order from the current
// cart contents, and submits it. The cart is cleared only after the
// submission transport succeeds; on any failure cart contents are left
// untouched so the caller can retry.
//
// Checkout does not serialize concurrent calls for the same cart: two
// concurrent invocations compose and send two independent orders. Preventing
// double submission is the trigger surface's job.
func (s *Service) Checkout(ctx context.Context, c *cart.Cart, f Form) (*Order, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	o := s.composer.Compose(lines, f)

	if err := s.submitter.Submit(ctx, o); err != nil {
		return nil, errors.Wrap(err, "submit order")
	}

	c.Clear()
	return o, nil
}
