// Package catalog filters, sorts and pages the product list in memory.
//
// The store always returns the whole products collection; every storefront
// view is computed from that slice and never mutates it.
package catalog

import (
	"sort"
	"strings"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
)

// PageSize is the listing page size used when the caller does not pick one.
const PageSize = 12

const all = "all"

type SortKey string

const (
	SortDefault   SortKey = "default"
	SortName      SortKey = "name"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
)

type Filter struct {
	Brand        string
	Search       string
	Category     models.Category
	MinRating    float64
	FeaturedOnly bool
}

type Params struct {
	Filter
	Sort     SortKey
	Page     int
	PageSize int
}

type Result struct {
	Items     []models.Product `json:"items"`
	Page      int              `json:"page"`
	PageSize  int              `json:"pageSize"`
	PageCount int              `json:"pageCount"`
	Total     int              `json:"total"`
}

// Match reports whether p satisfies every predicate of f.
func (f Filter) Match(p models.Product) bool {
	if f.Brand != "" && !strings.EqualFold(f.Brand, all) && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.Category != "" && f.Category != all && p.Category != f.Category {
		return false
	}
	if f.FeaturedOnly && !p.Featured {
		return false
	}
	if f.MinRating > 0 && (p.Rating == nil || *p.Rating < f.MinRating) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Brand), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
	}
	return true
}

// Apply returns the products matching f in source order.
func Apply(products []models.Product, f Filter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a stably sorted copy. Products missing the sort field go last.
func Sort(products []models.Product, key SortKey) []models.Product {
	out := append([]models.Product(nil), products...)

	var less func(a, b models.Product) bool
	switch key {
	case SortName:
		less = func(a, b models.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortPriceAsc:
		less = func(a, b models.Product) bool {
			return nilLast(a.Price, b.Price, func(x, y float64) bool { return x < y })
		}
	case SortPriceDesc:
		less = func(a, b models.Product) bool {
			return nilLast(a.Price, b.Price, func(x, y float64) bool { return x > y })
		}
	case SortRating:
		less = func(a, b models.Product) bool {
			return nilLast(a.Rating, b.Rating, func(x, y float64) bool { return x > y })
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func nilLast(a, b *float64, less func(x, y float64) bool) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return less(*a, *b)
	}
}

// PageCount is ceil(n/size), zero for an empty list.
func PageCount(n, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns the 1-based page of items. Out-of-range pages are empty.
func Paginate(items []models.Product, page, size int) []models.Product {
	if size <= 0 {
		size = PageSize
	}
	if page < 1 {
		return []models.Product{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []models.Product{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Brands returns the distinct brand names, case-insensitively deduplicated and sorted.
func Brands(products []models.Product) []string {
	seen := make(map[string]bool)
	brands := []string{}
	for _, p := range products {
		key := strings.ToLower(strings.TrimSpace(p.Brand))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		brands = append(brands, strings.TrimSpace(p.Brand))
	}
	sort.Slice(brands, func(i, j int) bool {
		return strings.ToLower(brands[i]) < strings.ToLower(brands[j])
	})
	return brands
}

// Query filters, sorts and pages products in one pass.
func Query(products []models.Product, params Params) Result {
	size := params.PageSize
	if size <= 0 {
		size = PageSize
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	filtered := Sort(Apply(products, params.Filter), params.Sort)
	return Result{
		Items:     Paginate(filtered, page, size),
		Page:      page,
		PageSize:  size,
		PageCount: PageCount(len(filtered), size),
		Total:     len(filtered),
	}
}
