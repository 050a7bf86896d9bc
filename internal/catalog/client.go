// Package catalog reads products and taxonomy from the backend and provides
// the client-side filter and pagination used by the product grid.
package catalog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/01moynul/grocery-storefront/internal/backend"
	"github.com/01moynul/grocery-storefront/internal/models"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
)

var ErrProductNotFound = errors.New("catalog: product not found")

// Client is the read-only view of the backend catalog.
type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := c.api.GetJSON(ctx, fmt.Sprintf("/products/%d", id), nil, &p); err != nil {
		if backend.IsStatus(err, http.StatusNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrapf(err, "fetch product %d", id)
	}
	if p.ID == 0 {
		return nil, ErrProductNotFound
	}
	fillSlug(&p)
	return &p, nil
}

// Products fetches the full product list.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.api.GetJSON(ctx, "/products", nil, &products); err != nil {
		return nil, errors.Wrap(err, "fetch products")
	}
	for i := range products {
		fillSlug(&products[i])
	}
	return products, nil
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.api.GetJSON(ctx, "/categories", nil, &categories); err != nil {
		return nil, errors.Wrap(err, "fetch categories")
	}
	for i := range categories {
		if categories[i].Slug == "" {
			categories[i].Slug = slug.Make(categories[i].Name)
		}
	}
	return categories, nil
}

func (c *Client) Brands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := c.api.GetJSON(ctx, "/brands", nil, &brands); err != nil {
		return nil, errors.Wrap(err, "fetch brands")
	}
	for i := range brands {
		if brands[i].Slug == "" {
			brands[i].Slug = slug.Make(brands[i].Name)
		}
	}
	return brands, nil
}

// Trending returns the home page rail ordered by position.
func (c *Client) Trending(ctx context.Context) ([]models.Trending, error) {
	var trending []models.Trending
	if err := c.api.GetJSON(ctx, "/trending", nil, &trending); err != nil {
		return nil, errors.Wrap(err, "fetch trending")
	}
	sortTrending(trending)
	return trending, nil
}

// SiteSettings returns logo, site name and WhatsApp contact.
func (c *Client) SiteSettings(ctx context.Context) (*models.SiteSettings, error) {
	var s models.SiteSettings
	if err := c.api.GetJSON(ctx, "/site-settings", nil, &s); err != nil {
		return nil, errors.Wrap(err, "fetch site settings")
	}
	return &s, nil
}

// Backend may omit slugs on older rows; derive one from the name.
func fillSlug(p *models.Product) {
	if p.Slug == "" && p.Name != nil {
		p.Slug = slug.Make(*p.Name)
	}
}
