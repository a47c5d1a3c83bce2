package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thelegendaryarticuno/myfashion/internal/backend"
	"github.com/thelegendaryarticuno/myfashion/internal/catalog"
	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	"github.com/thelegendaryarticuno/myfashion/internal/recent"
	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

// RelatedLimit caps the related items strip on the product page.
const RelatedLimit = 8

// CatalogBackend is the slice of the fashion API the storefront surface
// needs.
type CatalogBackend interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	FindReviews(ctx context.Context, productID string) ([]domain.Review, error)
	AddToCart(ctx context.Context, input backend.AddToCartInput) error
	PostComplaint(ctx context.Context, complaint domain.Complaint) error
}

// ActivityPublisher publishes shopper activity events. Failures are logged
// and swallowed; activity is never on the request's critical path.
type ActivityPublisher interface {
	PublishProductViewed(ctx context.Context, product *domain.Product, shopperID string) error
	PublishCartItemAdded(ctx context.Context, shopperID, productID string, quantity int) error
}

// CatalogQuery is the session-less encoding of a catalog view: the client
// sends its whole selection on every request and gets the corresponding
// window back.
type CatalogQuery struct {
	Category    string
	PriceLabels []string
	Colors      []string
	Sizes       []string
	Occasions   []string
	Sort        string
	Pages       int
}

// CatalogPage is the computed window plus everything needed to render the
// grid chrome.
type CatalogPage struct {
	Products  []domain.Product    `json:"products"`
	Total     int                 `json:"total"`
	HasMore   bool                `json:"hasMore"`
	Category  string              `json:"category"`
	Sort      catalog.SortOption  `json:"sort"`
	Filters   map[string][]string `json:"filters"`
	FetchedAt time.Time           `json:"fetchedAt"`
}

// ProductDetails is the product page payload.
type ProductDetails struct {
	Product *domain.Product  `json:"product"`
	Reviews []domain.Review  `json:"reviews"`
	Related []domain.Product `json:"related"`
}

type snapshot struct {
	products  []domain.Product
	fetchedAt time.Time
	err       error
}

// StorefrontService owns the catalog snapshot and the shopper-facing
// operations computed from it. The snapshot is fetched once, reused until
// it goes stale, and refreshed in the caller's request when needed. A
// failed fetch is remembered as an explicit error state so the surface can
// offer a retry instead of hanging.
type StorefrontService struct {
	backend CatalogBackend
	recent  recent.Repository
	events  ActivityPublisher
	logger  *slog.Logger
	maxAge  time.Duration

	mu   sync.RWMutex
	snap snapshot
}

// NewStorefrontService creates the storefront service. maxAge bounds how
// long a fetched snapshot is served before the next request refreshes it.
func NewStorefrontService(b CatalogBackend, rec recent.Repository, events ActivityPublisher, logger *slog.Logger, maxAge time.Duration) *StorefrontService {
	return &StorefrontService{
		backend: b,
		recent:  rec,
		events:  events,
		logger:  logger,
		maxAge:  maxAge,
	}
}

// Catalog computes one catalog window from the current snapshot and the
// client's selection.
func (s *StorefrontService) Catalog(ctx context.Context, query CatalogQuery) (*CatalogPage, error) {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	view := catalog.New(snap.products)
	if query.Category != "" {
		view.SelectCategory(query.Category)
	}
	for _, label := range query.PriceLabels {
		view.ToggleFilter(catalog.FilterPrice, label)
	}
	for _, label := range query.Colors {
		view.ToggleFilter(catalog.FilterColor, label)
	}
	for _, label := range query.Sizes {
		view.ToggleFilter(catalog.FilterSize, label)
	}
	for _, label := range query.Occasions {
		view.ToggleFilter(catalog.FilterOccasion, label)
	}
	if query.Sort != "" {
		view.Sort(catalog.SortOption(query.Sort))
	}
	for i := 1; i < query.Pages; i++ {
		view.LoadMore()
	}

	filters := make(map[string][]string)
	for _, t := range []catalog.FilterType{catalog.FilterPrice, catalog.FilterColor, catalog.FilterSize, catalog.FilterOccasion} {
		if selected := view.Filters().Selected(t); len(selected) > 0 {
			filters[string(t)] = selected
		}
	}

	return &CatalogPage{
		Products:  view.Visible(),
		Total:     view.Total(),
		HasMore:   view.HasMore(),
		Category:  view.Category(),
		Sort:      view.SortOption(),
		Filters:   filters,
		FetchedAt: snap.fetchedAt,
	}, nil
}

// Categories returns the distinct categories present in the snapshot, in
// first-seen order with the "all" sentinel first.
func (s *StorefrontService) Categories(ctx context.Context) ([]string, error) {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	categories := []string{catalog.CategoryAll}
	for _, p := range snap.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories, nil
}

// RefreshCatalog forces a snapshot refetch. It backs the retry affordance
// shown when the catalog is in its error state.
func (s *StorefrontService) RefreshCatalog(ctx context.Context) error {
	_, err := s.refreshSnapshot(ctx)
	return err
}

// ProductDetails loads one product with its reviews and related items,
// records the view on the shopper's recently-viewed list and publishes the
// activity event. Recent-list and event failures are logged, not returned;
// the page renders regardless.
func (s *StorefrontService) ProductDetails(ctx context.Context, productID, shopperID string) (*ProductDetails, error) {
	product, err := s.backend.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.backend.FindReviews(ctx, productID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load reviews",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		reviews = []domain.Review{}
	}

	related, err := s.relatedProducts(ctx, product)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load related products",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		related = []domain.Product{}
	}

	if shopperID != "" {
		if err := s.recent.Touch(ctx, shopperID, recent.EntryFromProduct(product)); err != nil {
			s.logger.WarnContext(ctx, "failed to record recently viewed",
				slog.String("shopper_id", shopperID),
				slog.String("product_id", productID),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := s.events.PublishProductViewed(ctx, product, shopperID); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product.viewed event",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	return &ProductDetails{
		Product: product,
		Reviews: reviews,
		Related: related,
	}, nil
}

// RecentlyViewed returns the shopper's recently-viewed strip.
func (s *StorefrontService) RecentlyViewed(ctx context.Context, shopperID string) ([]recent.Entry, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}
	return s.recent.List(ctx, shopperID)
}

// AddToCart records a cart addition with the backend and publishes the
// activity event.
func (s *StorefrontService) AddToCart(ctx context.Context, input backend.AddToCartInput) error {
	if err := s.backend.AddToCart(ctx, input); err != nil {
		return err
	}

	if err := s.events.PublishCartItemAdded(ctx, input.UserID, input.ProductID, input.Quantity); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.item_added event",
			slog.String("user_id", input.UserID),
			slog.String("product_id", input.ProductID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// FileComplaint forwards a contact form submission to the backend.
func (s *StorefrontService) FileComplaint(ctx context.Context, complaint domain.Complaint) error {
	complaint.Status = domain.ComplaintStatusPending
	if err := s.backend.PostComplaint(ctx, complaint); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "complaint filed", slog.String("email", complaint.Email))
	return nil
}

func (s *StorefrontService) relatedProducts(ctx context.Context, product *domain.Product) ([]domain.Product, error) {
	if product.Category == "" {
		return []domain.Product{}, nil
	}

	sameCategory, err := s.backend.GetProductsByCategory(ctx, product.Category)
	if err != nil {
		return nil, err
	}

	related := make([]domain.Product, 0, RelatedLimit)
	for _, p := range sameCategory {
		if p.ProductID == product.ProductID {
			continue
		}
		related = append(related, p)
		if len(related) == RelatedLimit {
			break
		}
	}
	return related, nil
}

// currentSnapshot returns a fresh-enough snapshot, refetching when the
// cache is empty or stale. When a refetch fails but an earlier snapshot
// exists, the stale data is served rather than failing the request.
func (s *StorefrontService) currentSnapshot(ctx context.Context) (snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	fresh := snap.err == nil && !snap.fetchedAt.IsZero() && time.Since(snap.fetchedAt) < s.maxAge
	if fresh {
		return snap, nil
	}

	refreshed, err := s.refreshSnapshot(ctx)
	if err != nil {
		if !snap.fetchedAt.IsZero() && snap.products != nil {
			s.logger.WarnContext(ctx, "serving stale catalog snapshot",
				slog.Time("fetched_at", snap.fetchedAt),
				slog.String("error", err.Error()),
			)
			return snap, nil
		}
		return snapshot{}, apperrors.Unavailable("the catalog is temporarily unavailable, please retry")
	}
	return refreshed, nil
}

func (s *StorefrontService) refreshSnapshot(ctx context.Context) (snapshot, error) {
	products, err := s.backend.GetProducts(ctx)
	if err != nil {
		s.mu.Lock()
		s.snap.err = err
		s.mu.Unlock()

		s.logger.ErrorContext(ctx, "catalog snapshot fetch failed",
			slog.String("error", err.Error()),
		)
		return snapshot{}, fmt.Errorf("fetch catalog snapshot: %w", err)
	}

	snap := snapshot{products: products, fetchedAt: time.Now().UTC()}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "catalog snapshot refreshed",
		slog.Int("products", len(products)),
	)
	return snap, nil
}
