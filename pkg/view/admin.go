package view

// AdminOrderRow is one row of the admin orders table. Flat, displayable
// fields so the tabular columns can sort and filter over them directly.
type AdminOrderRow struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	Customer   string  `json:"customer"`
	ItemCount  int     `json:"item_count"`
	Total      float64 `json:"total"`
	TotalLabel string  `json:"total_label"`
	CreatedAt  string  `json:"created_at"`

	// filled for expanded rows only
	Detail *OrderDetail `json:"detail,omitempty"`
}

type AdminTablePage[T any] struct {
	Rows     []T      `json:"rows"`
	Query    string   `json:"query,omitempty"`
	SortBy   string   `json:"sort_by,omitempty"`
	SortDir  string   `json:"sort_dir,omitempty"`
	Expanded []string `json:"expanded,omitempty"`
	Empty    string   `json:"empty_message,omitempty"`
}

type FileReviewRow struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	ItemID      string `json:"item_id"`
	ProductName string `json:"product_name"`
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	Status      string `json:"status"`
	UploadedAt  string `json:"uploaded_at"`
}
