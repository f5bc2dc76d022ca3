package store

import (
	"slices"
	"sync"

	"github.com/abgdnv/gocatalog/internal/catalog"
	perrors "github.com/abgdnv/gocatalog/internal/errors"
)

// inMemory implements ProductStore using a slice guarded by a mutex.
type inMemory struct {
	mu       sync.RWMutex
	products []catalog.Product
}

// NewInMemoryStore creates a new empty instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make([]catalog.Product, 0),
	}
}

func (s *inMemory) Add(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(s.products, p)
}

func (s *inMemory) ReplaceAll(products []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(make([]catalog.Product, 0, len(products)), products...)
}

func (s *inMemory) FindAll() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.products)
}

func (s *inMemory) FindByID(id string) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, perrors.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

func (s *inMemory) Update(p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(p.ID)
	if i < 0 {
		return perrors.ErrProductNotFound
	}
	s.products[i] = p
	return nil
}

func (s *inMemory) RemoveByID(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.products)
	s.products = slices.DeleteFunc(s.products, func(p catalog.Product) bool {
		return p.ID == id
	})
	return before - len(s.products)
}

// indexOf must be called with the lock held.
func (s *inMemory) indexOf(id string) int {
	return slices.IndexFunc(s.products, func(p catalog.Product) bool {
		return p.ID == id
	})
}
