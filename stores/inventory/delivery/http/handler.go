package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/base/validator"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/domain/inventory"
	"github.com/vibemarket/goapi/middleware"
)

type handler struct {
	inventoryUC inventory.UseCase
}

type cardsResponse struct {
	Cards []inventory.Item `json:"cards"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New registers the inventory route. Responses are cached per full URL,
// which keys the cache per address.
func New(e *echo.Echo, inventoryUC inventory.UseCase, cacheDuration time.Duration) {
	h := &handler{inventoryUC: inventoryUC}

	g := e.Group("/api/inventory")
	g.GET("", h.getOwnedCards, middleware.CacheHttp(cacheDuration))
}

func (h *handler) getOwnedCards(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	address := c.QueryParam("address")
	if !validator.IsValidAddress(address) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidAddress.Error()})
	}
	cards, err := h.inventoryUC.OwnedCards(context, domain.Address(address))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, cardsResponse{Cards: cards})
}
