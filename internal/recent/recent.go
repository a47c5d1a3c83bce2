package recent

import (
	"context"
	"sync"

	"github.com/thelegendaryarticuno/myfashion/internal/domain"
)

// MaxEntries bounds the recently-viewed list per shopper.
const MaxEntries = 5

// Entry is the compact product summary kept per view, enough to render the
// strip without another catalog lookup.
type Entry struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Image     string  `json:"image,omitempty"`
}

// EntryFromProduct builds the stored summary for a viewed product.
func EntryFromProduct(p *domain.Product) Entry {
	return Entry{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Image:     p.PrimaryImage(),
	}
}

// Repository keeps the recently-viewed list per shopper: most recent first,
// de-duplicated by product id, at most MaxEntries long.
type Repository interface {
	// Touch records a product view. A repeat view moves the product to the
	// front instead of adding a duplicate.
	Touch(ctx context.Context, shopperID string, entry Entry) error

	// List returns the shopper's list, most recent first. A shopper with no
	// views gets an empty list, not an error.
	List(ctx context.Context, shopperID string) ([]Entry, error)
}

// push applies the list discipline shared by both implementations.
func push(entries []Entry, entry Entry) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entry)
	for _, e := range entries {
		if e.ProductID == entry.ProductID {
			continue
		}
		out = append(out, e)
	}
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}

// MemoryRepository is an in-process Repository for tests and single-node
// development runs.
type MemoryRepository struct {
	mu    sync.RWMutex
	lists map[string][]Entry
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{lists: make(map[string][]Entry)}
}

// Touch records a product view.
func (r *MemoryRepository) Touch(_ context.Context, shopperID string, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lists[shopperID] = push(r.lists[shopperID], entry)
	return nil
}

// List returns the shopper's list, most recent first.
func (r *MemoryRepository) List(_ context.Context, shopperID string) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.lists[shopperID]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}
