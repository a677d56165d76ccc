package catalogfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"courierbot/internal/core/domain/model/catalog"

	"github.com/shopspring/decimal"
)

var ErrUnsupportedFormat = errors.New("unsupported drinks file format")

// Old layout: {"categories": [{"id", "name": {lang: ..}, "drinks": [{"id", "name", "price", "cost"}]}]}
type legacyFile struct {
	Categories []struct {
		ID     string            `json:"id"`
		Name   map[string]string `json:"name"`
		Drinks []struct {
			ID    string            `json:"id"`
			Name  map[string]string `json:"name"`
			Price decimal.Decimal   `json:"price"`
			Cost  decimal.Decimal   `json:"cost"`
		} `json:"drinks"`
	} `json:"categories"`
}

// New layout: {"<category>": {"name": {lang: ..}, "items": {"<drink>": {"en": .., "ru": .., "price": ..}}}}
type keyedCategory struct {
	Name  map[string]string `json:"name"`
	Items json.RawMessage   `json:"items"`
}

// Parse reads either drinks file layout into one catalog. Menu order follows
// the file.
func Parse(data []byte) (*catalog.Catalog, error) {
	top, err := orderedObject(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	for _, f := range top {
		if f.key == "categories" {
			return parseLegacy(data)
		}
	}
	return parseKeyed(top)
}

func parseLegacy(data []byte) (*catalog.Catalog, error) {
	var file legacyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	var (
		categories []catalog.Category
		drinks     []catalog.Drink
	)
	for _, c := range file.Categories {
		categories = append(categories, catalog.Category{ID: c.ID, Names: c.Name})
		for _, d := range c.Drinks {
			drinks = append(drinks, catalog.Drink{
				ID:         d.ID,
				CategoryID: c.ID,
				Names:      d.Name,
				Price:      d.Price,
				Cost:       d.Cost,
			})
		}
	}
	return catalog.New(categories, drinks)
}

func parseKeyed(top []field) (*catalog.Catalog, error) {
	var (
		categories []catalog.Category
		drinks     []catalog.Drink
	)
	for _, f := range top {
		var c keyedCategory
		if err := json.Unmarshal(f.value, &c); err != nil {
			return nil, fmt.Errorf("%w: category %s: %w", ErrUnsupportedFormat, f.key, err)
		}
		categories = append(categories, catalog.Category{ID: f.key, Names: c.Name})

		if len(c.Items) == 0 {
			continue
		}
		items, err := orderedObject(c.Items)
		if err != nil {
			return nil, fmt.Errorf("%w: items of %s: %w", ErrUnsupportedFormat, f.key, err)
		}
		for _, it := range items {
			d, err := parseKeyedDrink(f.key, it)
			if err != nil {
				return nil, err
			}
			drinks = append(drinks, d)
		}
	}
	return catalog.New(categories, drinks)
}

// parseKeyedDrink treats every string member other than price and cost as a
// localized name.
func parseKeyedDrink(categoryID string, it field) (catalog.Drink, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(it.value, &raw); err != nil {
		return catalog.Drink{}, fmt.Errorf("%w: drink %s: %w", ErrUnsupportedFormat, it.key, err)
	}

	d := catalog.Drink{ID: it.key, CategoryID: categoryID, Names: map[string]string{}}
	for k, v := range raw {
		switch k {
		case "price":
			if err := json.Unmarshal(v, &d.Price); err != nil {
				return catalog.Drink{}, fmt.Errorf("%w: price of %s: %w", ErrUnsupportedFormat, it.key, err)
			}
		case "cost":
			if err := json.Unmarshal(v, &d.Cost); err != nil {
				return catalog.Drink{}, fmt.Errorf("%w: cost of %s: %w", ErrUnsupportedFormat, it.key, err)
			}
		default:
			var name string
			if json.Unmarshal(v, &name) == nil {
				d.Names[k] = name
			}
		}
	}
	return d, nil
}

type field struct {
	key   string
	value json.RawMessage
}

// orderedObject splits a JSON object into its members, keeping file order.
func orderedObject(data []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected a JSON object")
	}

	var out []field
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err = dec.Decode(&value); err != nil {
			return nil, err
		}
		out = append(out, field{key: key, value: value})
	}
	return out, nil
}
