package view

import "github.com/shopspring/decimal"

type CartItem struct {
	VariantID   string          `json:"variant_id"`
	ProductName string          `json:"product_name"`
	ProductSlug string          `json:"product_slug"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	UnitLabel   string          `json:"unit_label"`
	TotalLabel  string          `json:"total_label"`
}

type CartPage struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	GST            decimal.Decimal `json:"gst"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	Total          decimal.Decimal `json:"total"`

	SubtotalLabel string `json:"subtotal_label"`
	GSTLabel      string `json:"gst_label"`
	DeliveryLabel string `json:"delivery_label"`
	TotalLabel    string `json:"total_label"`
}
