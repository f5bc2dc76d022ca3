// Package service implements the catalog operations on top of the product store and the product file.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abgdnv/gocatalog/internal/catalog"
	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/result"
	"github.com/abgdnv/gocatalog/internal/store"
)

// ProductService defines the operations available on the catalog.
// Every failure is reported through the returned response, never as a panic.
type ProductService interface {
	// GetProducts returns every product in insertion order.
	GetProducts(ctx context.Context) result.Response[[]catalog.Product]

	// GetProduct returns the product with the given ID.
	GetProduct(ctx context.Context, id string) result.Response[*catalog.Product]

	// CreateProduct validates the input, adds a new product and saves the list.
	CreateProduct(ctx context.Context, in catalog.ProductInput) result.Response[*catalog.Product]

	// UpdateProduct validates the input, replaces the fields of an existing product and saves the list.
	UpdateProduct(ctx context.Context, id string, in catalog.ProductInput) result.Response[*catalog.Product]

	// RemoveProduct removes every product with the given ID, saves the list and returns the removed count.
	RemoveProduct(ctx context.Context, id string) result.Response[int]

	// LoadProducts reads the product file into the catalog and returns the resulting list.
	LoadProducts(ctx context.Context, mode LoadMode) result.Response[[]catalog.Product]

	// SaveProducts writes the whole catalog to the product file.
	SaveProducts(ctx context.Context) result.Response[bool]
}

// FileStorage persists the whole product list.
type FileStorage interface {
	Save(ctx context.Context, products []catalog.Product) result.Response[bool]
	Load(ctx context.Context) result.Response[[]*catalog.Product]
}

// LoadMode controls how loaded products are combined with the current catalog.
type LoadMode string

const (
	// LoadMerge adds file products whose title is not in the catalog yet.
	LoadMerge LoadMode = "merge"
	// LoadReplace discards the catalog and keeps the file products, skipping repeated titles.
	LoadReplace LoadMode = "replace"
)

// ParseLoadMode converts s to a LoadMode. An empty string means LoadMerge.
func ParseLoadMode(s string) (LoadMode, error) {
	switch LoadMode(s) {
	case "", LoadMerge:
		return LoadMerge, nil
	case LoadReplace:
		return LoadReplace, nil
	default:
		return "", fmt.Errorf("%w: unknown load mode %q", perrors.ErrInvalidArgument, s)
	}
}

type Service struct {
	// mu serializes mutations so the duplicate check and the save see a consistent list.
	mu        sync.Mutex
	store     store.ProductStore
	files     FileStorage
	validator *catalog.Validator
	logger    *slog.Logger
}

// NewService creates a new instance of ProductService.
func NewService(productStore store.ProductStore, files FileStorage, logger *slog.Logger) *Service {
	return &Service{
		store:     productStore,
		files:     files,
		validator: catalog.NewValidator(),
		logger:    logger.With("component", "service"),
	}
}

var _ ProductService = (*Service)(nil)

func (s *Service) GetProducts(ctx context.Context) (res result.Response[[]catalog.Product]) {
	defer recoverInto(ctx, s.logger, &res)

	list := s.store.FindAll()
	if len(list) == 0 {
		return result.OK(list, "No products in list.")
	}
	return result.OK(list, "Products retrieved successfully.")
}

func (s *Service) GetProduct(ctx context.Context, id string) (res result.Response[*catalog.Product]) {
	defer recoverInto(ctx, s.logger, &res)

	if catalog.IsBlank(id) {
		return blankID[*catalog.Product]()
	}
	found, err := s.store.FindByID(id)
	if err != nil {
		return result.Fail[*catalog.Product](err, "Could not find product.")
	}
	return result.OK(found, "Product retrieved successfully.")
}

func (s *Service) CreateProduct(ctx context.Context, in catalog.ProductInput) (res result.Response[*catalog.Product]) {
	defer recoverInto(ctx, s.logger, &res)

	if err := s.validator.Validate(in); err != nil {
		return invalidInput[*catalog.Product](err, "Could not create product.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.titleTaken(in.Title, "") {
		return result.Fail[*catalog.Product](perrors.ErrDuplicateTitle, "A product with the same name already exists.")
	}
	p := catalog.NewProduct(in)
	s.store.Add(*p)
	s.logger.InfoContext(ctx, "Product created", "ID", p.ID, "Title", p.Title)
	return persist(ctx, s, p, "Product was created successfully.")
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in catalog.ProductInput) (res result.Response[*catalog.Product]) {
	defer recoverInto(ctx, s.logger, &res)

	if catalog.IsBlank(id) {
		return blankID[*catalog.Product]()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.FindByID(id)
	if err != nil {
		return result.Fail[*catalog.Product](err, "Could not find product to update.")
	}
	if err := s.validator.Validate(in); err != nil {
		return invalidInput[*catalog.Product](err, "Could not update product.")
	}
	if s.titleTaken(in.Title, id) {
		return result.Fail[*catalog.Product](perrors.ErrDuplicateTitle, "A product with the same name already exists.")
	}
	existing.Apply(in)
	if err := s.store.Update(*existing); err != nil {
		return result.Fail[*catalog.Product](err, "Could not find product to update.")
	}
	s.logger.InfoContext(ctx, "Product updated", "ID", existing.ID, "Title", existing.Title)
	return persist(ctx, s, existing, "Product was updated.")
}

func (s *Service) RemoveProduct(ctx context.Context, id string) (res result.Response[int]) {
	defer recoverInto(ctx, s.logger, &res)

	if catalog.IsBlank(id) {
		return blankID[int]()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.store.RemoveByID(id)
	if removed == 0 {
		return result.Fail[int](perrors.ErrProductNotFound, "Could not find product to remove.")
	}
	s.logger.InfoContext(ctx, "Product removed", "ID", id, "count", removed)
	return persist(ctx, s, removed, "Product was removed.")
}

func (s *Service) LoadProducts(ctx context.Context, mode LoadMode) (res result.Response[[]catalog.Product]) {
	defer recoverInto(ctx, s.logger, &res)

	if mode == "" {
		mode = LoadMerge
	}
	if _, err := ParseLoadMode(string(mode)); err != nil {
		return result.Fail[[]catalog.Product](err, fmt.Sprintf("Unknown load mode %q.", mode))
	}

	loaded := s.files.Load(ctx)
	if !loaded.Success {
		return result.Cast[[]catalog.Product](loaded)
	}
	if len(loaded.Result) == 0 {
		return result.OK(s.store.FindAll(), "File is empty or does not exist.")
	}
	products, reason := checkLoaded(loaded.Result)
	if reason != "" {
		return result.Fail[[]catalog.Product](perrors.ErrInvalidFile, reason)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == LoadReplace {
		s.store.ReplaceAll(nil)
	}
	added := 0
	for _, p := range products {
		if s.titleTaken(p.Title, "") {
			s.logger.DebugContext(ctx, "Skipping loaded product with existing title", "Title", p.Title)
			continue
		}
		s.store.Add(p)
		added++
	}
	s.logger.InfoContext(ctx, "Products loaded from file", "mode", mode, "loaded", len(products), "added", added)
	return result.OK(s.store.FindAll(), "Products loaded successfully from file.")
}

func (s *Service) SaveProducts(ctx context.Context) (res result.Response[bool]) {
	defer recoverInto(ctx, s.logger, &res)

	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.files.Save(ctx, s.store.FindAll())
	if !saved.Success {
		return saved
	}
	return result.OK(true, "Products saved to file successfully.")
}

// checkLoaded rejects the whole file on the first invalid entry and assigns IDs to entries without one.
// The returned reason is empty when every entry is acceptable.
func checkLoaded(entries []*catalog.Product) ([]catalog.Product, string) {
	products := make([]catalog.Product, 0, len(entries))
	for _, p := range entries {
		switch {
		case p == nil:
			return nil, "File contains null product entries. File load aborted."
		case catalog.IsBlank(p.Title):
			return nil, "File contains product with empty or null title. File load aborted."
		case p.Price.IsNegative():
			return nil, "Product has an invalid negative price. File load aborted."
		}
		loaded := *p
		if catalog.IsBlank(loaded.ID) {
			loaded.ID = catalog.NewID()
		}
		products = append(products, loaded)
	}
	return products, ""
}

// titleTaken reports whether another product than exceptID already uses title.
func (s *Service) titleTaken(title, exceptID string) bool {
	for _, p := range s.store.FindAll() {
		if p.ID != exceptID && catalog.SameTitle(p.Title, title) {
			return true
		}
	}
	return false
}

// persist writes the list after a successful mutation. The mutation stays applied when the write fails.
func persist[T any](ctx context.Context, s *Service, payload T, message string) result.Response[T] {
	saved := s.files.Save(ctx, s.store.FindAll())
	if !saved.Success {
		s.logger.WarnContext(ctx, "Catalog changed but could not be saved", "error", saved.Err)
		return result.Partial(payload, saved.Err, fmt.Sprintf("%s But saving to file failed: %s", message, saved.Message))
	}
	return result.OK(payload, message)
}
