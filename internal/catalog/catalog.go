package catalog

import (
	"sort"

	"github.com/thelegendaryarticuno/myfashion/internal/domain"
)

// PageSize is the number of products revealed per "load more" step.
const PageSize = 6

// CategoryAll is the sentinel category that matches every product.
const CategoryAll = "all"

// SortOption selects the ordering applied to the filtered product list.
type SortOption string

// Supported sort options. Featured keeps the backend's fetch order.
const (
	SortFeatured     SortOption = "featured"
	SortPriceLowHigh SortOption = "price-asc"
	SortPriceHighLow SortOption = "price-desc"
	SortNewest       SortOption = "newest"
)

// FilterType identifies one of the refinement facets shown next to the
// product grid.
type FilterType string

// Refinement facets. Only price selections narrow the result set; color,
// size and occasion selections are recorded and reported back but do not
// participate in matching. That mirrors the storefront contract as shipped,
// where those facets were display-only.
const (
	FilterPrice    FilterType = "price"
	FilterColor    FilterType = "color"
	FilterSize     FilterType = "size"
	FilterOccasion FilterType = "occasion"
)

// PriceRange is one of the fixed price buckets. Max < 0 means unbounded.
type PriceRange struct {
	Label string
	Min   float64
	Max   float64
}

// PriceRanges are the four buckets offered by the storefront, in display
// order. Boundaries are inclusive on both ends.
var PriceRanges = []PriceRange{
	{Label: "Under ₹999", Min: 0, Max: 999},
	{Label: "₹1000 - ₹1999", Min: 1000, Max: 1999},
	{Label: "₹2000 - ₹2999", Min: 2000, Max: 2999},
	{Label: "Above ₹3000", Min: 3000, Max: -1},
}

// Contains reports whether price falls inside the range.
func (r PriceRange) Contains(price float64) bool {
	if price < r.Min {
		return false
	}
	return r.Max < 0 || price <= r.Max
}

func rangeByLabel(label string) (PriceRange, bool) {
	for _, r := range PriceRanges {
		if r.Label == label {
			return r, true
		}
	}
	return PriceRange{}, false
}

// FilterState holds the selected option labels per facet.
type FilterState map[FilterType]map[string]struct{}

// Has reports whether the given option is currently selected.
func (f FilterState) Has(t FilterType, label string) bool {
	_, ok := f[t][label]
	return ok
}

// Selected returns the selected labels for a facet in stable order.
func (f FilterState) Selected(t FilterType) []string {
	labels := make([]string, 0, len(f[t]))
	for label := range f[t] {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func (f FilterState) toggle(t FilterType, label string) {
	if _, ok := f[t][label]; ok {
		delete(f[t], label)
		if len(f[t]) == 0 {
			delete(f, t)
		}
		return
	}
	if f[t] == nil {
		f[t] = make(map[string]struct{})
	}
	f[t][label] = struct{}{}
}

func (f FilterState) remove(t FilterType, label string) {
	delete(f[t], label)
	if len(f[t]) == 0 {
		delete(f, t)
	}
}

// View is the deterministic catalog view state over a fixed product
// snapshot: a category, a filter selection, a sort order and a visibility
// window. It never refetches; every read is recomputed from the snapshot
// held at construction time.
//
// View is not safe for concurrent use. Callers build one per request from
// the shared snapshot.
type View struct {
	products []domain.Product
	category string
	filters  FilterState
	sortOpt  SortOption
	window   int
}

// New builds a view over the given snapshot with category "all", no
// filters, featured order and the first page visible.
func New(products []domain.Product) *View {
	return &View{
		products: products,
		category: CategoryAll,
		filters:  make(FilterState),
		sortOpt:  SortFeatured,
		window:   PageSize,
	}
}

// SelectCategory switches the active category, clears every filter
// selection and resets the window to the first page. Selecting the current
// category again still resets filters and the window.
func (v *View) SelectCategory(category string) {
	if category == "" {
		category = CategoryAll
	}
	v.category = category
	v.filters = make(FilterState)
	v.window = PageSize
}

// ToggleFilter flips the selection state of one facet option and resets the
// window to the first page. Toggling the same option twice restores the
// previous selection.
func (v *View) ToggleFilter(t FilterType, label string) {
	v.filters.toggle(t, label)
	v.window = PageSize
}

// RemoveFilter deselects one facet option, as used by the "applied filter"
// chips. Removing an option that is not selected is a no-op on the
// selection but still resets the window, matching ToggleFilter's reset.
func (v *View) RemoveFilter(t FilterType, label string) {
	v.filters.remove(t, label)
	v.window = PageSize
}

// Sort changes the ordering without touching the filter selection or the
// window. Unknown options fall back to featured.
func (v *View) Sort(opt SortOption) {
	switch opt {
	case SortFeatured, SortPriceLowHigh, SortPriceHighLow, SortNewest:
		v.sortOpt = opt
	default:
		v.sortOpt = SortFeatured
	}
}

// LoadMore grows the window by one page. The window only ever grows; it
// shrinks back to one page through SelectCategory, ToggleFilter or
// RemoveFilter.
func (v *View) LoadMore() {
	v.window += PageSize
}

// Category returns the active category.
func (v *View) Category() string { return v.category }

// SortOption returns the active sort order.
func (v *View) SortOption() SortOption { return v.sortOpt }

// Filters returns the current selection state.
func (v *View) Filters() FilterState { return v.filters }

// Matching returns the full filtered and sorted list, ignoring the window.
func (v *View) Matching() []domain.Product {
	matched := make([]domain.Product, 0, len(v.products))
	for _, p := range v.products {
		if v.matches(&p) {
			matched = append(matched, p)
		}
	}
	v.order(matched)
	return matched
}

// Visible returns the windowed slice of the filtered and sorted list.
func (v *View) Visible() []domain.Product {
	matched := v.Matching()
	if v.window >= len(matched) {
		return matched
	}
	return matched[:v.window]
}

// Total returns the number of products matching the current category and
// filters, before windowing.
func (v *View) Total() int {
	n := 0
	for _, p := range v.products {
		if v.matches(&p) {
			n++
		}
	}
	return n
}

// HasMore reports whether another LoadMore would reveal more products.
func (v *View) HasMore() bool {
	return v.window < v.Total()
}

func (v *View) matches(p *domain.Product) bool {
	if v.category != CategoryAll && p.Category != v.category {
		return false
	}

	// Price is the only facet that narrows results. A product passes when
	// it falls inside any selected bucket. Labels that do not name a known
	// bucket are skipped.
	ranges := make([]PriceRange, 0, len(v.filters[FilterPrice]))
	for label := range v.filters[FilterPrice] {
		if r, ok := rangeByLabel(label); ok {
			ranges = append(ranges, r)
		}
	}
	if len(ranges) == 0 {
		return true
	}
	for _, r := range ranges {
		if r.Contains(p.Price) {
			return true
		}
	}
	return false
}

// order sorts in place. SliceStable keeps the fetch order among equal keys,
// so ties always resolve the same way across recomputations.
func (v *View) order(products []domain.Product) {
	switch v.sortOpt {
	case SortPriceLowHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHighLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}
