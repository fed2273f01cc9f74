package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"chhapai.in/app/internal/http/middleware"
	"chhapai.in/app/internal/modules/orders"
	"chhapai.in/app/internal/shared/apperr"
	"chhapai.in/app/internal/storage"
)

// maxDesignFileBytes caps one uploaded artwork at 50 MB.
const maxDesignFileBytes = 50 << 20

// UploadsHandler receives customer design files and attaches them to an
// order item. The first upload moves the order into file review.
type UploadsHandler struct {
	DB      *gorm.DB
	Store   storage.Storage
	Orders  *orders.Service
	OrdRepo *orders.Repo
}

func NewUploadsHandler(db *gorm.DB, st storage.Storage, svc *orders.Service, repo *orders.Repo) *UploadsHandler {
	return &UploadsHandler{DB: db, Store: st, Orders: svc, OrdRepo: repo}
}

// Upload handles POST /orders/:id/items/:item_id/files (multipart).
func (h *UploadsHandler) Upload(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	ctx := c.Request.Context()
	orderID := c.Param("id")

	o, err := h.OrdRepo.Get(ctx, orderID)
	if err != nil {
		middleware.Fail(c, domainErr(err))
		return
	}
	if o.UserID == nil || *o.UserID != u.ID {
		middleware.Fail(c, apperr.NotFoundErr("Not found."))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Attach the artwork as a 'file' form field.", nil))
		return
	}
	if fh.Size > maxDesignFileBytes {
		middleware.Fail(c, apperr.InvalidErr("File is too large (50 MB max).", nil))
		return
	}
	if storage.SafeExt(fh.Filename) == "" {
		middleware.Fail(c, apperr.InvalidErr("Unsupported file type. Upload PDF or image artwork.", nil))
		return
	}

	src, err := fh.Open()
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	defer src.Close()

	put, err := h.Store.Put(ctx, src, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	f, err := h.Orders.AttachFile(ctx, orderID, c.Param("item_id"), orders.DesignFile{
		StorageKey:  put.Key,
		URL:         put.URL,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		SizeBytes:   fh.Size,
	})
	if err != nil {
		// don't leave the blob orphaned
		_ = h.Store.Delete(ctx, put.Key)
		middleware.Fail(c, domainErr(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"file": designFileView(f)})
}
