package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/michiko-bakery/storefront-api/internal/catalog"
)

// --- Helpers ---

func newTestProduct(id, name string, price int64) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: "cake",
		Type:     catalog.TypeSingle,
	}
}

func newTestCombo(id, name string, price int64, options ...string) catalog.Product {
	return catalog.Product{
		ID:             id,
		Name:           name,
		Price:          decimal.NewFromInt(price),
		Category:       "gift-box",
		Type:           catalog.TypeCombo,
		VariantOptions: options,
	}
}

// --- Tests ---

func TestAdd_MergesIdenticalIdentity(t *testing.T) {
	c := New()
	p := newTestProduct("1", "原味蛋糕", 280)

	require.NoError(t, c.Add(p, 2, "", ""))
	require.NoError(t, c.Add(p, 3, "", ""))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5, c.TotalItems())
}

func TestAdd_DifferentVariantsAreDistinctLines(t *testing.T) {
	c := New()
	combo := newTestCombo("4", "禮盒", 560, "A+B", "B+C")

	require.NoError(t, c.Add(combo, 1, "A+B", ""))
	require.NoError(t, c.Add(combo, 1, "B+C", ""))

	require.Len(t, c.Lines(), 2)
	assert.Equal(t, 2, c.TotalItems())
}

func TestAdd_DifferentCoverOptionsAreDistinctLines(t *testing.T) {
	c := New()
	p := newTestProduct("1", "原味蛋糕", 280)

	require.NoError(t, c.Add(p, 1, "", "pink"))
	require.NoError(t, c.Add(p, 1, "", "white"))
	require.NoError(t, c.Add(p, 1, "", "pink"))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestAdd_ComboRequiresVariantChoice(t *testing.T) {
	c := New()
	combo := newTestCombo("4", "禮盒", 560, "A+B")

	err := c.Add(combo, 1, "", "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "variantOption", vErr.Field)
	assert.Empty(t, c.Lines())
}

func TestAdd_ComboRejectsUnknownVariant(t *testing.T) {
	c := New()
	combo := newTestCombo("4", "禮盒", 560, "A+B")

	err := c.Add(combo, 1, "X+Y", "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "variantOption", vErr.Field)
}

func TestAdd_SingleRejectsVariant(t *testing.T) {
	c := New()
	p := newTestProduct("1", "原味蛋糕", 280)

	err := c.Add(p, 1, "A+B", "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	c := New()
	p := newTestProduct("1", "原味蛋糕", 280)

	for _, qty := range []int{0, -1, -100} {
		err := c.Add(p, qty, "", "")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "quantity %d", qty)
	}
	assert.Empty(t, c.Lines())
}

func TestUpdateQuantity(t *testing.T) {
	p := newTestProduct("1", "原味蛋糕", 280)
	key := LineKey{ProductID: "1"}

	t.Run("absolute set", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(p, 2, "", ""))

		c.UpdateQuantity(key, 7)
		assert.Equal(t, 7, c.TotalItems())
	})

	t.Run("zero removes the line", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(p, 2, "", ""))

		c.UpdateQuantity(key, 0)
		assert.Empty(t, c.Lines())
	})

	t.Run("negative removes the line", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(p, 2, "", ""))

		c.UpdateQuantity(key, -5)
		assert.Empty(t, c.Lines())
	})

	t.Run("absent line is a no-op", func(t *testing.T) {
		c := New()
		c.UpdateQuantity(LineKey{ProductID: "missing"}, 3)
		assert.Empty(t, c.Lines())
	})
}

func TestRemove_AbsentLineIsNoop(t *testing.T) {
	c := New()
	p := newTestProduct("1", "原味蛋糕", 280)
	require.NoError(t, c.Add(p, 1, "", ""))

	c.Remove(LineKey{ProductID: "nope"})
	require.Len(t, c.Lines(), 1)
}

func TestRemove_KeepsInsertionOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(newTestProduct("1", "a", 100), 1, "", ""))
	require.NoError(t, c.Add(newTestProduct("2", "b", 200), 1, "", ""))
	require.NoError(t, c.Add(newTestProduct("3", "c", 300), 1, "", ""))

	c.Remove(LineKey{ProductID: "2"})

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0].Key.ProductID)
	assert.Equal(t, "3", lines[1].Key.ProductID)
}

func TestTotals(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(newTestProduct("1", "原味蛋糕", 280), 2, "", ""))
	require.NoError(t, c.Add(newTestProduct("2", "巧克力蛋糕", 320), 1, "", ""))

	assert.Equal(t, 3, c.TotalItems())
	assert.True(t, decimal.NewFromInt(880).Equal(c.TotalPrice()))

	c.UpdateQuantity(LineKey{ProductID: "1"}, 1)
	assert.Equal(t, 2, c.TotalItems())
	assert.True(t, decimal.NewFromInt(600).Equal(c.TotalPrice()))
}

func TestLines_ReturnsIndependentSnapshot(t *testing.T) {
	c := New()
	p := newTestProduct("1", "原味蛋糕", 280)
	require.NoError(t, c.Add(p, 2, "", ""))

	snapshot := c.Lines()
	c.UpdateQuantity(LineKey{ProductID: "1"}, 9)

	assert.Equal(t, 2, snapshot[0].Quantity)
	assert.Equal(t, 9, c.Lines()[0].Quantity)
}

func TestClear(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(newTestProduct("1", "原味蛋糕", 280), 2, "", ""))

	c.Clear()

	assert.Empty(t, c.Lines())
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.TotalPrice().IsZero())
}

// TestConcurrentMutations drives the cart from many goroutines and checks
// the invariants hold afterwards: totals match surviving lines and no line
// has a non-positive quantity.
func TestConcurrentMutations(t *testing.T) {
	c := New()
	p := newTestProduct("1", "原味蛋糕", 280)
	key := LineKey{ProductID: "1"}

	var g errgroup.Group
	for range 50 {
		g.Go(func() error {
			return c.Add(p, 1, "", "")
		})
		g.Go(func() error {
			c.UpdateQuantity(key, 10)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	total := 0
	for _, line := range c.Lines() {
		require.Positive(t, line.Quantity)
		total += line.Quantity
	}
	assert.Equal(t, total, c.TotalItems())
}
