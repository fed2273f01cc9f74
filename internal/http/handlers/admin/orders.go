package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"chhapai.in/app/internal/http/middleware"
	"chhapai.in/app/internal/http/validation"
	"chhapai.in/app/internal/modules/orders"
	"chhapai.in/app/internal/shared/apperr"
	"chhapai.in/app/pkg/tabular"
	"chhapai.in/app/pkg/view"
)

const timeLayout = "2006-01-02 15:04"

// OrdersHandler is the admin dashboard's order surface: the tabular
// order list with expandable detail rows, status transitions, the design
// file review queue, and invoices.
type OrdersHandler struct {
	DB    *gorm.DB
	Repo  *orders.Repo
	Admin *orders.AdminService
}

func NewOrdersHandler(db *gorm.DB, repo *orders.Repo, svc *orders.AdminService) *OrdersHandler {
	return &OrdersHandler{DB: db, Repo: repo, Admin: svc}
}

func orderColumns() []tabular.Column[view.AdminOrderRow] {
	return []tabular.Column[view.AdminOrderRow]{
		{ID: "id", Header: "Order", Accessor: func(r view.AdminOrderRow) any { return r.ID }},
		{ID: "customer", Header: "Customer", Accessor: func(r view.AdminOrderRow) any { return r.Customer }},
		{ID: "status", Header: "Status", Accessor: func(r view.AdminOrderRow) any { return r.Status }},
		{ID: "items", Header: "Items", Accessor: func(r view.AdminOrderRow) any { return r.ItemCount }},
		{
			ID: "total", Header: "Total",
			Accessor: func(r view.AdminOrderRow) any { return r.Total },
			Cell:     func(r view.AdminOrderRow) string { return r.TotalLabel },
		},
		{ID: "created_at", Header: "Placed", Accessor: func(r view.AdminOrderRow) any { return r.CreatedAt }},
	}
}

// List handles GET /admin/orders?q=&status=&filter=&sort=&dir=&expanded=&page=.
// q narrows the DB query; filter is the in-page tabular text match.
// Expanded rows carry the full order detail inline.
func (h *OrdersHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	res, err := h.Repo.AdminList(ctx, orders.AdminListParams{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "size", 50),
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	rows := make([]view.AdminOrderRow, 0, len(res.Items))
	for _, it := range res.Items {
		total, _ := it.Order.Total.Float64()
		rows = append(rows, view.AdminOrderRow{
			ID:         it.Order.ID,
			Status:     it.Order.Status,
			Customer:   customerOf(it.Order),
			ItemCount:  it.Count,
			Total:      total,
			TotalLabel: view.Money(it.Order.Total),
			CreatedAt:  it.Order.CreatedAt.Format(timeLayout),
		})
	}

	tbl := tabular.New(orderColumns(), func(r view.AdminOrderRow) string { return r.ID })
	tbl.SetGlobalFilter(c.Query("filter"))
	if col := c.Query("sort"); col != "" {
		dir := tabular.DirectionAsc
		if c.Query("dir") == "desc" {
			dir = tabular.DirectionDesc
		}
		tbl.SetSort(col, dir)
	}
	for _, id := range strings.Split(c.Query("expanded"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			tbl.Expand(id)
		}
	}

	visible := tbl.VisibleRows(rows)
	for i := range visible {
		if !tbl.Expanded(visible[i].ID) {
			continue
		}
		detail, err := h.buildDetail(c, visible[i].ID)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		visible[i].Detail = &detail
	}

	page := view.AdminTablePage[view.AdminOrderRow]{
		Rows:     visible,
		Query:    tbl.GlobalFilter(),
		Expanded: tbl.ExpandedIDs(),
	}
	if s, ok := tbl.Sort(); ok {
		page.SortBy = s.ColumnID
		page.SortDir = string(s.Direction)
	}
	if len(visible) == 0 {
		page.Empty = "No orders match."
	}
	c.JSON(http.StatusOK, gin.H{"table": page, "total": res.Total})
}

// Get handles GET /admin/orders/:id.
func (h *OrdersHandler) Get(c *gin.Context) {
	detail, err := h.buildDetail(c, c.Param("id"))
	if err != nil {
		middleware.Fail(c, adminOrderErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": detail})
}

func (h *OrdersHandler) buildDetail(c *gin.Context, orderID string) (view.OrderDetail, error) {
	ctx := c.Request.Context()

	o, items, events, err := h.Repo.AdminGetDetail(ctx, orderID)
	if err != nil {
		return view.OrderDetail{}, err
	}
	files, err := h.Repo.FilesForOrder(ctx, orderID)
	if err != nil {
		return view.OrderDetail{}, err
	}

	byItem := map[string][]view.DesignFile{}
	for _, f := range files {
		df := view.DesignFile{
			ID: f.ID, Filename: f.Filename, URL: f.URL, ReviewStatus: f.ReviewStatus,
		}
		if f.ReviewNote != nil {
			df.ReviewNote = *f.ReviewNote
		}
		byItem[f.OrderItemID] = append(byItem[f.OrderItemID], df)
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
		note := ""
		if ev.Note != nil {
			note = *ev.Note
		}
		d.Events = append(d.Events, view.OrderEvent{
			Action: ev.Action,
			From:   ev.FromStatus,
			To:     ev.ToStatus,
			Note:   note,
			At:     ev.CreatedAt.Format(timeLayout),
		})
	}
	return d, nil
}

type transitionReq struct {
	Action string `json:"action" binding:"required,oneof=submit_files approve reject print ship deliver cancel"`
	Note   string `json:"note" binding:"omitempty,max=512"`
}

// Transition handles POST /admin/orders/:id/transition.
func (h *OrdersHandler) Transition(c *gin.Context) {
	var req transitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	u, _ := middleware.CurrentUser(c)

	err := h.Admin.Transition(c.Request.Context(), orders.TransitionInput{
		OrderID:     c.Param("id"),
		ActorUserID: u.ID,
		Action:      req.Action,
		Note:        req.Note,
	})
	if err != nil {
		middleware.Fail(c, adminOrderErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// FileQueue handles GET /admin/files?status=&page= - the design file
// review queue, oldest first.
func (h *OrdersHandler) FileQueue(c *gin.Context) {
	status := c.DefaultQuery("status", orders.FilePending)

	rows, err := h.Repo.AdminListFiles(c.Request.Context(), orders.FileListParams{
		Status: status,
		Page:   intQuery(c, "page", 1),
		Size:   intQuery(c, "size", 50),
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	out := make([]view.FileReviewRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, view.FileReviewRow{
			ID:          r.File.ID,
			OrderID:     r.File.OrderID,
			ItemID:      r.File.OrderItemID,
			ProductName: r.ProductName,
			Filename:    r.File.Filename,
			URL:         r.File.URL,
			Status:      r.File.ReviewStatus,
			UploadedAt:  r.File.CreatedAt.Format(timeLayout),
		})
	}
	c.JSON(http.StatusOK, gin.H{"files": out})
}

type reviewReq struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note" binding:"omitempty,max=512"`
}

// ReviewFile handles POST /admin/files/:id/review.
func (h *OrdersHandler) ReviewFile(c *gin.Context) {
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}
	u, _ := middleware.CurrentUser(c)

	err := h.Admin.ReviewFile(c.Request.Context(), orders.ReviewFileInput{
		FileID:     c.Param("id"),
		ReviewerID: u.ID,
		Approve:    req.Approve,
		Note:       req.Note,
	})
	if err != nil {
		middleware.Fail(c, adminOrderErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Invoices handles GET /admin/invoices?page=.
func (h *OrdersHandler) Invoices(c *gin.Context) {
	items, total, err := h.Admin.ListInvoices(c.Request.Context(), intQuery(c, "page", 1), intQuery(c, "size", 50))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": items, "total": total})
}

// Invoice handles GET /admin/invoices/:id - accepts the invoice id, the
// order id, or the invoice number.
func (h *OrdersHandler) Invoice(c *gin.Context) {
	inv, err := h.Admin.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, adminOrderErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": inv})
}

func customerOf(o orders.Order) string {
	if o.GuestEmail != nil {
		return *o.GuestEmail
	}
	if o.UserID != nil {
		return *o.UserID
	}
	return "-"
}

func adminOrderErr(err error) error {
	switch err {
	case orders.ErrNotFound:
		return apperr.NotFoundErr("Not found.")
	case orders.ErrInvalidTransition, orders.ErrNotActionable:
		return apperr.ConflictErr("That action is not allowed in the order's current state.")
	case orders.ErrFilesNotApproved:
		return apperr.ConflictErr("All design files must be approved first.")
	}
	return err
}

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
