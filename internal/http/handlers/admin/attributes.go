package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"chhapai.in/app/internal/http/middleware"
	"chhapai.in/app/internal/http/validation"
	"chhapai.in/app/internal/modules/catalog"
	"chhapai.in/app/internal/shared/apperr"
)

// AttributesHandler manages the print attribute tables: sizes, paper
// types, print types and cut types. Each gets the same CRUD plus an
// activate/deactivate toggle; deletion is blocked while variants still
// reference the attribute.
type AttributesHandler struct {
	Sizes      *catalog.Repo[catalog.Size]
	PaperTypes *catalog.Repo[catalog.PaperType]
	PrintTypes *catalog.Repo[catalog.PrintType]
	CutTypes   *catalog.Repo[catalog.CutType]
}

func NewAttributesHandler(db *gorm.DB) *AttributesHandler {
	return &AttributesHandler{
		Sizes:      catalog.NewRepo[catalog.Size](db),
		PaperTypes: catalog.NewRepo[catalog.PaperType](db),
		PrintTypes: catalog.NewRepo[catalog.PrintType](db),
		CutTypes:   catalog.NewRepo[catalog.CutType](db),
	}
}

// Register mounts the four attribute resources under g.
func (h *AttributesHandler) Register(g *gin.RouterGroup) {
	mountAttr(g.Group("/sizes"), h.Sizes, h.bindSize, updateSizeFields)
	mountAttr(g.Group("/paper-types"), h.PaperTypes, h.bindPaperType, updatePaperTypeFields)
	mountAttr(g.Group("/print-types"), h.PrintTypes, h.bindPrintType, updatePrintTypeFields)
	mountAttr(g.Group("/cut-types"), h.CutTypes, h.bindCutType, updateCutTypeFields)
}

// mountAttr wires the shared route set for one attribute type.
// bind builds a new record from the request body; updates turns a PATCH
// body into the column map.
func mountAttr[T any](
	g *gin.RouterGroup,
	repo *catalog.Repo[T],
	bind func(c *gin.Context) (T, bool),
	updates func(c *gin.Context) (map[string]any, bool),
) {
	g.GET("", func(c *gin.Context) {
		items, err := repo.List(c.Request.Context(), catalog.ListParams{
			OnlyActive: c.Query("active") == "true",
		})
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	})

	g.POST("", func(c *gin.Context) {
		item, ok := bind(c)
		if !ok {
			return
		}
		if err := repo.Create(c.Request.Context(), &item); err != nil {
			middleware.Fail(c, attrErr(err))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"item": item})
	})

	g.GET("/:id", func(c *gin.Context) {
		item, err := repo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			middleware.Fail(c, attrErr(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": item})
	})

	g.PATCH("/:id", func(c *gin.Context) {
		upd, ok := updates(c)
		if !ok {
			return
		}
		if len(upd) == 0 {
			middleware.Fail(c, apperr.InvalidErr("Nothing to update.", nil))
			return
		}
		if err := repo.Update(c.Request.Context(), c.Param("id"), upd); err != nil {
			middleware.Fail(c, attrErr(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	g.DELETE("/:id", func(c *gin.Context) {
		if err := repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			middleware.Fail(c, attrErr(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	g.POST("/:id/activate", setActive(repo, true))
	g.POST("/:id/deactivate", setActive(repo, false))
}

func setActive[T any](repo *catalog.Repo[T], active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.SetActive(c.Request.Context(), c.Param("id"), active); err != nil {
			middleware.Fail(c, attrErr(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func attrErr(err error) error {
	switch err {
	case catalog.ErrNotFound:
		return apperr.NotFoundErr("Not found.")
	case catalog.ErrDuplicate:
		return apperr.ConflictErr("An entry with that name already exists.")
	case catalog.ErrInUse:
		return apperr.ConflictErr("Cannot delete: still referenced by product variants.")
	}
	return err
}

type sizeReq struct {
	Name     string `json:"name" binding:"required,max=120"`
	WidthMM  int    `json:"width_mm" binding:"required,gt=0"`
	HeightMM int    `json:"height_mm" binding:"required,gt=0"`
}

func (h *AttributesHandler) bindSize(c *gin.Context) (catalog.Size, bool) {
	var req sizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return catalog.Size{}, false
	}
	now := time.Now()
	return catalog.Size{
		ID: uuid.NewString(), Name: req.Name,
		WidthMM: req.WidthMM, HeightMM: req.HeightMM,
		Active: true, CreatedAt: now, UpdatedAt: now,
	}, true
}

type sizePatch struct {
	Name     *string `json:"name" binding:"omitempty,max=120"`
	WidthMM  *int    `json:"width_mm" binding:"omitempty,gt=0"`
	HeightMM *int    `json:"height_mm" binding:"omitempty,gt=0"`
}

func updateSizeFields(c *gin.Context) (map[string]any, bool) {
	var req sizePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return nil, false
	}
	upd := map[string]any{}
	if req.Name != nil {
		upd["name"] = *req.Name
	}
	if req.WidthMM != nil {
		upd["width_mm"] = *req.WidthMM
	}
	if req.HeightMM != nil {
		upd["height_mm"] = *req.HeightMM
	}
	return upd, true
}

type paperTypeReq struct {
	Name   string `json:"name" binding:"required,max=120"`
	GSM    int    `json:"gsm" binding:"required,gt=0"`
	Finish string `json:"finish" binding:"omitempty,max=64"`
}

func (h *AttributesHandler) bindPaperType(c *gin.Context) (catalog.PaperType, bool) {
	var req paperTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return catalog.PaperType{}, false
	}
	now := time.Now()
	return catalog.PaperType{
		ID: uuid.NewString(), Name: req.Name, GSM: req.GSM, Finish: req.Finish,
		Active: true, CreatedAt: now, UpdatedAt: now,
	}, true
}

type paperTypePatch struct {
	Name   *string `json:"name" binding:"omitempty,max=120"`
	GSM    *int    `json:"gsm" binding:"omitempty,gt=0"`
	Finish *string `json:"finish" binding:"omitempty,max=64"`
}

func updatePaperTypeFields(c *gin.Context) (map[string]any, bool) {
	var req paperTypePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return nil, false
	}
	upd := map[string]any{}
	if req.Name != nil {
		upd["name"] = *req.Name
	}
	if req.GSM != nil {
		upd["gsm"] = *req.GSM
	}
	if req.Finish != nil {
		upd["finish"] = *req.Finish
	}
	return upd, true
}

type printTypeReq struct {
	Name      string `json:"name" binding:"required,max=120"`
	Sides     string `json:"sides" binding:"required,oneof=single double"`
	ColorMode string `json:"color_mode" binding:"required,oneof=color bw"`
}

func (h *AttributesHandler) bindPrintType(c *gin.Context) (catalog.PrintType, bool) {
	var req printTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return catalog.PrintType{}, false
	}
	now := time.Now()
	return catalog.PrintType{
		ID: uuid.NewString(), Name: req.Name, Sides: req.Sides, ColorMode: req.ColorMode,
		Active: true, CreatedAt: now, UpdatedAt: now,
	}, true
}

type printTypePatch struct {
	Name      *string `json:"name" binding:"omitempty,max=120"`
	Sides     *string `json:"sides" binding:"omitempty,oneof=single double"`
	ColorMode *string `json:"color_mode" binding:"omitempty,oneof=color bw"`
}

func updatePrintTypeFields(c *gin.Context) (map[string]any, bool) {
	var req printTypePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return nil, false
	}
	upd := map[string]any{}
	if req.Name != nil {
		upd["name"] = *req.Name
	}
	if req.Sides != nil {
		upd["sides"] = *req.Sides
	}
	if req.ColorMode != nil {
		upd["color_mode"] = *req.ColorMode
	}
	return upd, true
}

type cutTypeReq struct {
	Name string `json:"name" binding:"required,max=120"`
}

func (h *AttributesHandler) bindCutType(c *gin.Context) (catalog.CutType, bool) {
	var req cutTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return catalog.CutType{}, false
	}
	now := time.Now()
	return catalog.CutType{
		ID: uuid.NewString(), Name: req.Name,
		Active: true, CreatedAt: now, UpdatedAt: now,
	}, true
}

type cutTypePatch struct {
	Name *string `json:"name" binding:"omitempty,max=120"`
}

func updateCutTypeFields(c *gin.Context) (map[string]any, bool) {
	var req cutTypePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return nil, false
	}
	upd := map[string]any{}
	if req.Name != nil {
		upd["name"] = *req.Name
	}
	return upd, true
}
