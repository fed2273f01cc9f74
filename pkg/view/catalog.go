package view

// CategoryRow is one row of the admin categories table; Subcategories is
// the expanded sub-view, present only when the row is expanded.
type CategoryRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Active   bool   `json:"active"`
	Position int    `json:"position"`

	Subcategories []SubcategoryRow `json:"subcategories,omitempty"`
}

type SubcategoryRow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Active bool   `json:"active"`
}

type ProductRow struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Category     string  `json:"category"`
	Status       string  `json:"status"`
	VariantCount int     `json:"variant_count"`
	MinPrice     float64 `json:"min_price"`
	MinPriceLbl  string  `json:"min_price_label"`
}
