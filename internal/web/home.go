package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodtrace/backend/internal/api"
	"github.com/pageza/foodtrace/backend/internal/store"
	"github.com/pageza/foodtrace/backend/internal/types"
	"github.com/pageza/foodtrace/backend/internal/validation"
)

// HomeController serves the item pages under /Home.
type HomeController struct {
	items store.ItemStore
}

func NewHomeController(items store.ItemStore) *HomeController {
	return &HomeController{items: items}
}

func (hc *HomeController) Index(c *gin.Context) {
	items, err := hc.items.GetAll(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	view(c, http.StatusOK, gin.H{"items": items})
}

func (hc *HomeController) Details(c *gin.Context) {
	hc.showItem(c)
}

func (hc *HomeController) CreateForm(c *gin.Context) {
	view(c, http.StatusOK, nil)
}

func (hc *HomeController) Create(c *gin.Context) {
	req, ok := bindItemForm(c)
	if !ok {
		return
	}

	item, err := hc.items.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	redirect(c, detailsPath(item.ID))
}

func (hc *HomeController) EditForm(c *gin.Context) {
	hc.showItem(c)
}

func (hc *HomeController) Edit(c *gin.Context) {
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.RespondError(c, err)
		return
	}
	req, ok := bindItemForm(c)
	if !ok {
		return
	}

	changes := req.ToModel()
	changes.ID = id
	if _, err := hc.items.Update(c.Request.Context(), changes); err != nil {
		api.RespondError(c, err)
		return
	}
	redirect(c, detailsPath(id))
}

func (hc *HomeController) DeleteConfirm(c *gin.Context) {
	hc.showItem(c)
}

func (hc *HomeController) Delete(c *gin.Context) {
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.RespondError(c, err)
		return
	}

	if err := hc.items.Delete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}
	redirect(c, IndexPath)
}

func (hc *HomeController) showItem(c *gin.Context) {
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.RespondError(c, err)
		return
	}

	item, err := hc.items.GetByID(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	view(c, http.StatusOK, gin.H{"item": item})
}

func bindItemForm(c *gin.Context) (*types.ItemRequest, bool) {
	var req types.ItemRequest
	if !bindForm(c, &req) {
		return nil, false
	}
	if err := validation.Item(&req); err != nil {
		api.RespondError(c, err)
		return nil, false
	}
	return &req, true
}

func detailsPath(id uint) string {
	return fmt.Sprintf("/Home/Details/%d", id)
}
