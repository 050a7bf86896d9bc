package catalog

import (
	"sort"
	"strings"

	"github.com/01moynul/grocery-storefront/internal/models"
)

const (
	DefaultPerPage = 12
	MaxPerPage     = 100
)

// Sort orders accepted by Filter.Sort.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
)

// Filter narrows the product grid. Zero values mean "no constraint".
type Filter struct {
	Query      string
	CategoryID int64
	BrandID    int64
	MinPrice   float64
	MaxPrice   float64
	Sort       string
}

// Page is one page of filtered products.
type Page struct {
	Items      []models.Product `json:"items"`
	Page       int              `json:"page"`
	PerPage    int              `json:"perPage"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
}

// Apply returns the products matching f, sorted by f.Sort (newest first by
// default). The input slice is not modified.
func Apply(products []models.Product, f Filter) []models.Product {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.DisplayName()), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if f.CategoryID != 0 && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
			continue
		}
		if f.BrandID != 0 && (p.BrandID == nil || *p.BrandID != f.BrandID) {
			continue
		}

		if f.MinPrice > 0 || f.MaxPrice > 0 {
			price, ok := p.EffectivePrice()
			if !ok {
				continue
			}
			if f.MinPrice > 0 && price < f.MinPrice {
				continue
			}
			if f.MaxPrice > 0 && price > f.MaxPrice {
				continue
			}
		}
		out = append(out, p)
	}

	sortProducts(out, f.Sort)
	return out
}

func sortProducts(products []models.Product, order string) {
	price := func(p models.Product) float64 {
		v, _ := p.EffectivePrice()
		return v
	}

	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return price(products[i]) < price(products[j]) })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return price(products[i]) > price(products[j]) })
	case SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].DisplayName()) < strings.ToLower(products[j].DisplayName())
		})
	default:
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}
}

// Paginate slices products into the requested page. page < 1 is treated
// as 1; perPage <= 0 falls back to DefaultPerPage and is capped at
// MaxPerPage. A page past the end is returned empty with correct totals.
func Paginate(products []models.Product, page, perPage int) Page {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	total := len(products)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	items := make([]models.Product, end-start)
	copy(items, products[start:end])

	return Page{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

func sortTrending(t []models.Trending) {
	sort.SliceStable(t, func(i, j int) bool { return t[i].Position < t[j].Position })
}
