package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"chhapai.in/app/internal/http/middleware"
	"chhapai.in/app/internal/modules/orders"
	"chhapai.in/app/internal/shared/apperr"
	"chhapai.in/app/pkg/view"
)

const timeLayout = "2006-01-02 15:04"

// OrdersHandler is the customer's view of their orders and invoices.
type OrdersHandler struct {
	DB     *gorm.DB
	Orders *orders.Repo
	Admin  *orders.AdminService
}

func NewOrdersHandler(db *gorm.DB, repo *orders.Repo, admin *orders.AdminService) *OrdersHandler {
	return &OrdersHandler{DB: db, Orders: repo, Admin: admin}
}

// List handles GET /orders?page=&status=.
func (h *OrdersHandler) List(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	res, err := h.Orders.ListByUser(c.Request.Context(), orders.ListByUserParams{
		UserID:   u.ID,
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "size", 20),
		Status:   c.Query("status"),
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	items := make([]view.OrderListItem, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, view.OrderListItem{
			ID:        it.Order.ID,
			Status:    it.Order.Status,
			Total:     view.Money(it.Order.Total),
			ItemCount: it.Count,
			CreatedAt: it.Order.CreatedAt.Format(timeLayout),
		})
	}
	c.JSON(http.StatusOK, gin.H{"orders": items, "total": res.Total})
}

// Get handles GET /orders/:id. Only the order's owner can read it.
func (h *OrdersHandler) Get(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	o, items, err := h.Orders.GetWithItems(ctx, c.Param("id"))
	if err != nil {
		middleware.Fail(c, domainErr(err))
		return
	}
	if o.UserID == nil || *o.UserID != u.ID {
		middleware.Fail(c, apperr.NotFoundErr("Not found."))
		return
	}

	files, err := h.Orders.FilesForOrder(ctx, o.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	events, err := h.Orders.Events(ctx, o.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": orderDetailView(o, items, files, events)})
}

// Invoice handles GET /orders/:id/invoice.
func (h *OrdersHandler) Invoice(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	o, err := h.Orders.Get(ctx, c.Param("id"))
	if err != nil {
		middleware.Fail(c, domainErr(err))
		return
	}
	if o.UserID == nil || *o.UserID != u.ID {
		middleware.Fail(c, apperr.NotFoundErr("Not found."))
		return
	}

	inv, err := h.Admin.GetInvoice(ctx, o.ID)
	if err != nil {
		middleware.Fail(c, domainErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoiceView(inv)})
}

func orderDetailView(o orders.Order, items []orders.OrderItem, files []orders.DesignFile, events []orders.OrderEvent) view.OrderDetail {
	byItem := map[string][]view.DesignFile{}
	for _, f := range files {
		byItem[f.OrderItemID] = append(byItem[f.OrderItemID], designFileView(f))
	}

	d := view.OrderDetail{
		ID:             o.ID,
		Status:         o.Status,
		Subtotal:       view.Money(o.Subtotal),
		GST:            view.Money(o.GST),
		DeliveryCharge: view.Money(o.DeliveryCharge),
		Total:          view.Money(o.Total),
		CreatedAt:      o.CreatedAt.Format(timeLayout),
	}
	for _, it := range items {
		d.Items = append(d.Items, view.OrderItem{
			ID:          it.ID,
			ProductName: it.ProductName,
			SKU:         it.SKU,
			Options:     string(it.Options),
			Quantity:    it.Quantity,
			UnitPrice:   view.Money(it.UnitPrice),
			TotalPrice:  view.Money(it.TotalPrice),
			DesignFiles: byItem[it.ID],
		})
	}
	for _, ev := range events {
		d.Events = append(d.Events, view.OrderEvent{
			Action: ev.Action,
			From:   ev.FromStatus,
			To:     ev.ToStatus,
			Note:   noteOf(ev.Note),
			At:     ev.CreatedAt.Format(timeLayout),
		})
	}
	return d
}

func designFileView(f orders.DesignFile) view.DesignFile {
	out := view.DesignFile{
		ID:           f.ID,
		Filename:     f.Filename,
		URL:          f.URL,
		ReviewStatus: f.ReviewStatus,
	}
	if f.ReviewNote != nil {
		out.ReviewNote = *f.ReviewNote
	}
	return out
}

func invoiceView(inv orders.Invoice) view.Invoice {
	return view.Invoice{
		ID:             inv.ID,
		Number:         inv.Number,
		OrderID:        inv.OrderID,
		IssuedAt:       inv.IssuedAt.Format(timeLayout),
		Subtotal:       view.Money(inv.Subtotal),
		GST:            view.Money(inv.GST),
		DeliveryCharge: view.Money(inv.DeliveryCharge),
		Total:          view.Money(inv.Total),
	}
}

func noteOf(n *string) string {
	if n == nil {
		return ""
	}
	return *n
}
