package catalog

import (
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
)

// Default embedded catalog, used when no catalog file is configured.
//
//go:embed data/catalog.json
var defaultCatalogJSON []byte

// productJSON is the on-disk shape of a catalog entry.
type productJSON struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Image          string          `json:"image"`
	Category       string          `json:"category"`
	Type           string          `json:"type"`
	VariantOptions []string        `json:"variantOptions,omitempty"`
}

// Default builds the Catalog from the embedded product data.
func Default() (*Catalog, error) {
	c, err := decode(defaultCatalogJSON)
	if err != nil {
		return nil, errors.Wrap(err, "embedded catalog")
	}
	return c, nil
}

// Load reads a catalog from a JSON file. Files ending in .gz are
// transparently decompressed.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	c, err := decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return c, nil
}

func decode(raw []byte) (*Catalog, error) {
	var rows []productJSON
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}

	products := make([]Product, len(rows))
	for i, row := range rows {
		products[i] = Product{
			ID:             row.ID,
			Name:           row.Name,
			Description:    row.Description,
			Price:          row.Price,
			Image:          row.Image,
			Category:       row.Category,
			Type:           Type(row.Type),
			VariantOptions: row.VariantOptions,
		}
	}

	return New(products)
}
