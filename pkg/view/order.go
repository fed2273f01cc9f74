package view

type OrderListItem struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
	CreatedAt string `json:"created_at"`
}

type OrderItem struct {
	ID          string       `json:"id"`
	ProductName string       `json:"product_name"`
	SKU         string       `json:"sku"`
	Options     string       `json:"options,omitempty"`
	Quantity    int          `json:"quantity"`
	UnitPrice   string       `json:"unit_price"`
	TotalPrice  string       `json:"total_price"`
	DesignFiles []DesignFile `json:"design_files,omitempty"`
}

type DesignFile struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	ReviewStatus string `json:"review_status"`
	ReviewNote   string `json:"review_note,omitempty"`
}

type OrderEvent struct {
	Action string `json:"action"`
	From   string `json:"from"`
	To     string `json:"to"`
	Note   string `json:"note,omitempty"`
	At     string `json:"at"`
}

type OrderDetail struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	Subtotal       string `json:"subtotal"`
	GST            string `json:"gst"`
	DeliveryCharge string `json:"delivery_charge"`
	Total          string `json:"total"`

	Items     []OrderItem  `json:"items"`
	Events    []OrderEvent `json:"events,omitempty"`
	CreatedAt string       `json:"created_at"`
}

type Invoice struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	OrderID  string `json:"order_id"`
	IssuedAt string `json:"issued_at"`

	Subtotal       string `json:"subtotal"`
	GST            string `json:"gst"`
	DeliveryCharge string `json:"delivery_charge"`
	Total          string `json:"total"`
}
