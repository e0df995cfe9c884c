package catalog

import (
	"os"
	"path/filepath"
	"testing"

	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func single(id, name string, price int64) Product {
	return Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
		Type:  TypeSingle,
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		products []Product
		wantErr  string
	}{
		{
			name:     "valid",
			products: []Product{single("1", "a", 100), single("2", "b", 200)},
		},
		{
			name:     "missing id",
			products: []Product{single("", "a", 100)},
			wantErr:  "id is required",
		},
		{
			name:     "missing name",
			products: []Product{single("1", "", 100)},
			wantErr:  "name is required",
		},
		{
			name:     "negative price",
			products: []Product{single("1", "a", -1)},
			wantErr:  "price must not be negative",
		},
		{
			name:     "duplicate id",
			products: []Product{single("1", "a", 100), single("1", "b", 200)},
			wantErr:  "duplicate product id",
		},
		{
			name: "combo without variants",
			products: []Product{{
				ID: "4", Name: "box", Price: decimal.NewFromInt(560), Type: TypeCombo,
			}},
			wantErr: "combo product requires at least one variant option",
		},
		{
			name: "single with variants",
			products: []Product{{
				ID: "1", Name: "a", Price: decimal.NewFromInt(100), Type: TypeSingle,
				VariantOptions: []string{"x"},
			}},
			wantErr: "single product must not define variant options",
		},
		{
			name: "unknown type",
			products: []Product{{
				ID: "1", Name: "a", Price: decimal.NewFromInt(100), Type: "bundle",
			}},
			wantErr: "unknown product type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.products)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, len(tt.products), c.Len())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCatalog_List(t *testing.T) {
	c, err := New([]Product{single("2", "b", 200), single("1", "a", 100)})
	require.NoError(t, err)

	// Display order is preserved as given, not sorted.
	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].ID)
	assert.Equal(t, "1", list[1].ID)

	// The returned slice is a copy.
	list[0].Name = "mutated"
	assert.Equal(t, "b", c.List()[0].Name)
}

func TestCatalog_GetByID(t *testing.T) {
	c, err := New([]Product{single("1", "a", 100)})
	require.NoError(t, err)

	p, err := c.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, "a", p.Name)

	_, err = c.GetByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHasVariantOption(t *testing.T) {
	p := Product{VariantOptions: []string{"A+B", "B+C"}}
	assert.True(t, p.HasVariantOption("A+B"))
	assert.False(t, p.HasVariantOption("A+C"))
	assert.False(t, p.HasVariantOption(""))
}

func TestDefault_EmbeddedCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())

	p, err := c.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, TypeSingle, p.Type)
	assert.True(t, decimal.NewFromInt(280).Equal(p.Price))

	box, err := c.GetByID("4")
	require.NoError(t, err)
	assert.Equal(t, TypeCombo, box.Type)
	assert.NotEmpty(t, box.VariantOptions)
}

const testCatalogJSON = `[
  {"id": "1", "name": "經典原味蛋糕", "price": "280", "category": "cake", "type": "single"},
  {"id": "4", "name": "雙入蛋糕禮盒", "price": "560", "category": "gift-box", "type": "combo",
   "variantOptions": ["經典原味+巧克力"]}
]`

func TestLoad_PlainJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogJSON), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestLoad_Gzipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := pgzip.NewWriter(f)
	_, err = gz.Write([]byte(testCatalogJSON))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	p, err := c.GetByID("4")
	require.NoError(t, err)
	assert.Equal(t, TypeCombo, p.Type)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
