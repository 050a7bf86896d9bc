package models

// --- Catalog taxonomy ---

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url,omitempty"`
	ParentID *int64 `json:"parent_id,omitempty"` // Pointer allows null for root categories
}

type Brand struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url,omitempty"`
}

// Trending is a product the backend has flagged for the home page rail.
type Trending struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Product   Product `json:"product"`
	Position  int     `json:"position"`
}
