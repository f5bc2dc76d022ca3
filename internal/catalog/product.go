// Package catalog defines the product model of the catalog and the rules every product must satisfy.
package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxPrice is the highest price a product can carry.
var MaxPrice = decimal.NewFromInt(1_000_000_000)

// Category groups products by kind.
type Category struct {
	Name string `json:"name"`
}

// Manufacturer is the producer of a product.
type Manufacturer struct {
	Name string `json:"name"`
}

// Product is a single catalog entry.
type Product struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Category     Category        `json:"category"`
	Manufacturer Manufacturer    `json:"manufacturer"`
}

// ProductInput holds the user supplied fields of a product.
type ProductInput struct {
	Title        string          `json:"title" validate:"notblank"`
	Price        decimal.Decimal `json:"price" validate:"gt=0,lte=1000000000"`
	Category     string          `json:"category" validate:"notblank"`
	Manufacturer string          `json:"manufacturer" validate:"notblank"`
}

// NewProduct creates a product with a fresh random ID from the given input.
// Leading and trailing whitespace is trimmed from every name.
func NewProduct(in ProductInput) *Product {
	p := &Product{ID: NewID()}
	p.Apply(in)
	return p
}

// Apply overwrites the user editable fields of the product, keeping its ID.
func (p *Product) Apply(in ProductInput) {
	p.Title = strings.TrimSpace(in.Title)
	p.Price = in.Price
	p.Category = Category{Name: strings.TrimSpace(in.Category)}
	p.Manufacturer = Manufacturer{Name: strings.TrimSpace(in.Manufacturer)}
}

// NewID returns a new random product ID.
func NewID() string {
	return uuid.NewString()
}

// SameTitle reports whether two titles are equal ignoring case and surrounding whitespace.
func SameTitle(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
