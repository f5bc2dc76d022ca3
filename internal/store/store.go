// Package store provides the product repository and the file access used to persist it.
package store

import (
	"context"

	"github.com/abgdnv/gocatalog/internal/catalog"
)

// ProductStore is an ordered collection of products.
// Implementations return copies so callers never share memory with the store.
type ProductStore interface {
	// Add appends a product to the end of the list.
	Add(p catalog.Product)

	// ReplaceAll discards the current list and stores the given products in order.
	ReplaceAll(products []catalog.Product)

	// FindAll returns every product in insertion order.
	// Returns an empty slice if no products exist.
	FindAll() []catalog.Product

	// FindByID returns the first product with the given ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(id string) (*catalog.Product, error)

	// Update replaces the product with the same ID, keeping its position.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(p catalog.Product) error

	// RemoveByID removes every product with the given ID and returns how many were removed.
	RemoveByID(id string) int
}

// ContentStore reads and writes the raw serialized product list.
type ContentStore interface {
	// ReadContent returns the stored content, or nil if nothing has been stored yet.
	ReadContent(ctx context.Context) ([]byte, error)

	// WriteContent replaces the stored content.
	WriteContent(ctx context.Context, data []byte) error
}
