package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abgdnv/gocatalog/internal/catalog"
	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/result"
	"github.com/abgdnv/gocatalog/internal/store"
	"github.com/shopspring/decimal"
)

// FileService converts the product list to and from its JSON file form.
type FileService struct {
	content store.ContentStore
	logger  *slog.Logger
}

// NewFileService creates a FileService on top of the given content store.
func NewFileService(content store.ContentStore, logger *slog.Logger) *FileService {
	return &FileService{
		content: content,
		logger:  logger.With("component", "file"),
	}
}

// fileProduct is the on-disk shape of a product.
type fileProduct struct {
	ID           string          `json:"Id"`
	Title        string          `json:"Title"`
	Price        json.Number     `json:"Price"`
	Category     *fileNamedValue `json:"Category"`
	Manufacturer *fileNamedValue `json:"Manufacturer"`
}

type fileNamedValue struct {
	Name string `json:"Name"`
}

// Save writes the whole list to the file as indented JSON.
func (f *FileService) Save(ctx context.Context, products []catalog.Product) result.Response[bool] {
	records := make([]fileProduct, 0, len(products))
	for _, p := range products {
		records = append(records, toFileProduct(p))
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err == nil {
		err = f.content.WriteContent(ctx, data)
	}
	if err != nil {
		f.logger.ErrorContext(ctx, "Error saving products to file", "error", err)
		return result.Fail[bool](fmt.Errorf("%w: %w", perrors.ErrPersistence, err),
			fmt.Sprintf("Error when trying to save file: %s", err))
	}
	f.logger.DebugContext(ctx, "Products saved to file", "count", len(products))
	return result.OK(true, "Saved list to file successfully.")
}

// Load reads the file back. A nil entry in the result stands for a null entry in the file.
func (f *FileService) Load(ctx context.Context) result.Response[[]*catalog.Product] {
	data, err := f.content.ReadContent(ctx)
	if err != nil {
		return f.readFailure(ctx, err)
	}
	if len(data) == 0 {
		f.logger.DebugContext(ctx, "No product file content to load")
		return result.OK[[]*catalog.Product](nil, "No file to load content from.")
	}

	var records []*fileProduct
	if err := json.Unmarshal(data, &records); err != nil {
		return f.readFailure(ctx, fmt.Errorf("%w: %w", perrors.ErrInvalidFile, err))
	}
	products := make([]*catalog.Product, 0, len(records))
	for i, rec := range records {
		if rec == nil {
			products = append(products, nil)
			continue
		}
		p, err := fromFileProduct(rec)
		if err != nil {
			return f.readFailure(ctx, fmt.Errorf("%w: entry %d: %w", perrors.ErrInvalidFile, i, err))
		}
		products = append(products, p)
	}
	f.logger.DebugContext(ctx, "Products read from file", "count", len(products))
	return result.OK(products, "Loaded list successfully from file.")
}

func (f *FileService) readFailure(ctx context.Context, err error) result.Response[[]*catalog.Product] {
	f.logger.ErrorContext(ctx, "Error loading products from file", "error", err)
	return result.Fail[[]*catalog.Product](err, fmt.Sprintf("Error when trying to read file: %s", err))
}

func toFileProduct(p catalog.Product) fileProduct {
	return fileProduct{
		ID:           p.ID,
		Title:        p.Title,
		Price:        json.Number(p.Price.String()),
		Category:     &fileNamedValue{Name: p.Category.Name},
		Manufacturer: &fileNamedValue{Name: p.Manufacturer.Name},
	}
}

func fromFileProduct(rec *fileProduct) (*catalog.Product, error) {
	price := decimal.Zero
	if rec.Price != "" {
		var err error
		if price, err = decimal.NewFromString(rec.Price.String()); err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", rec.Price, err)
		}
	}
	p := &catalog.Product{
		ID:    rec.ID,
		Title: rec.Title,
		Price: price,
	}
	if rec.Category != nil {
		p.Category.Name = rec.Category.Name
	}
	if rec.Manufacturer != nil {
		p.Manufacturer.Name = rec.Manufacturer.Name
	}
	return p, nil
}
