// Package catalog is the normalized drink menu. Source formats are resolved by
// the catalogfile adapter; nothing here knows how the menu was stored.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"courierbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultLanguage is used when a name is missing in the requested language.
const DefaultLanguage = "en"

// Category groups drinks on the menu.
type Category struct {
	ID    string
	Names map[string]string
}

// Drink is a sellable catalog entry. Cost is the purchase price used by
// reporting; only Price takes part in orders.
type Drink struct {
	ID         string
	CategoryID string
	Names      map[string]string
	Price      decimal.Decimal
	Cost       decimal.Decimal
}

// Name returns the drink name in lang, falling back to English and then to
// the alphabetically first available language.
func (d Drink) Name(lang string) string {
	return localized(d.Names, lang, d.ID)
}

func (c Category) Name(lang string) string {
	return localized(c.Names, lang, c.ID)
}

// Catalog is an immutable menu snapshot.
type Catalog struct {
	categories []Category
	drinks     []Drink
	byID       map[string]int
}

// New validates and indexes the menu. Drink ids must be unique across categories.
func New(categories []Category, drinks []Drink) (*Catalog, error) {
	c := &Catalog{
		categories: slices.Clone(categories),
		drinks:     slices.Clone(drinks),
		byID:       make(map[string]int, len(drinks)),
	}
	known := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		known[cat.ID] = struct{}{}
	}
	for i, d := range c.drinks {
		if strings.TrimSpace(d.ID) == "" {
			return nil, errs.NewValueIsRequiredError("drink id")
		}
		if d.Price.IsNegative() {
			return nil, errs.NewValueIsInvalidErrorWithCause("drink price", fmt.Errorf("%s costs %s", d.ID, d.Price))
		}
		if _, ok := known[d.CategoryID]; !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("drink category", fmt.Errorf("%s refers to unknown category %q", d.ID, d.CategoryID))
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("drink id", fmt.Errorf("%q is listed twice", d.ID))
		}
		c.byID[d.ID] = i
	}
	return c, nil
}

// Empty returns a catalog with nothing on it.
func Empty() *Catalog {
	return &Catalog{byID: map[string]int{}}
}

func (c *Catalog) Find(id string) (Drink, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Drink{}, false
	}
	return c.drinks[i], true
}

func (c *Catalog) Categories() []Category {
	return slices.Clone(c.categories)
}

// DrinksIn returns the drinks of a category in menu order.
func (c *Catalog) DrinksIn(categoryID string) []Drink {
	var out []Drink
	for _, d := range c.drinks {
		if d.CategoryID == categoryID {
			out = append(out, d)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.drinks)
}

func localized(names map[string]string, lang, fallback string) string {
	if n := names[lang]; n != "" {
		return n
	}
	if n := names[DefaultLanguage]; n != "" {
		return n
	}
	langs := make([]string, 0, len(names))
	for l, n := range names {
		if n != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		return fallback
	}
	slices.Sort(langs)
	return names[langs[0]]
}
