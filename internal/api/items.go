package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodtrace/backend/internal/store"
	"github.com/pageza/foodtrace/backend/internal/types"
	"github.com/pageza/foodtrace/backend/internal/validation"
)

// ItemHandler serves /api/items.
type ItemHandler struct {
	items store.ItemStore
}

func NewItemHandler(items store.ItemStore) *ItemHandler {
	return &ItemHandler{items: items}
}

func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.GET("", h.ListItems)
		items.GET("/:id", h.GetItem)
		items.POST("", h.CreateItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}

func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.items.GetAll(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := ParseID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}

	item, err := h.items.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	req, ok := bindItem(c)
	if !ok {
		return
	}

	item, err := h.items.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem replaces the mutable fields of an item. id and createdDate in
// the body are ignored.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := ParseID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	req, ok := bindItem(c)
	if !ok {
		return
	}

	changes := req.ToModel()
	changes.ID = id
	item, err := h.items.Update(c.Request.Context(), changes)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, err := ParseID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindItem(c *gin.Context) (*types.ItemRequest, bool) {
	var req types.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, ErrMalformedBody)
		return nil, false
	}
	if err := validation.Item(&req); err != nil {
		RespondError(c, err)
		return nil, false
	}
	return &req, true
}
