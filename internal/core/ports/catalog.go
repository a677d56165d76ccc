package ports

import (
	"context"

	"courierbot/internal/core/domain/model/cart"
	"courierbot/internal/core/domain/model/catalog"
)

// CatalogProvider returns the current drink menu.
type CatalogProvider interface {
	Catalog(ctx context.Context) (*catalog.Catalog, error)
}

// SessionStore keeps carts of customers who are building an order. Entries
// live in process memory only. Callers hold the customer's user lock.
type SessionStore interface {
	Get(userID int64) (*cart.Cart, bool)
	Put(c *cart.Cart)
	Delete(userID int64)
	Len() int
}
