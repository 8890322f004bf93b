package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/domain/listing"
)

const defaultPageSize = 50

type handler struct {
	listingUC listing.UseCase
}

// ErrorResponse is the wire shape for failures on this surface; the clients
// key off the single error field.
type ErrorResponse struct {
	Error string `json:"error"`
}

type allResponse struct {
	Listings []listing.Enriched `json:"listings"`
	Total    int                `json:"total"`
}

type postRequest struct {
	Action        string         `json:"action" validate:"required,oneof=add remove"`
	Items         []listing.Item `json:"items" validate:"required"`
	WalletAddress domain.Address `json:"walletAddress"`
}

type postResponse struct {
	Success     bool `json:"success"`
	ActiveCount int  `json:"activeCount"`
}

func New(e *echo.Echo, listingUC listing.UseCase) {
	h := &handler{listingUC: listingUC}

	g := e.Group("/api/listings")
	g.GET("", h.get)
	g.POST("", h.post)
}

func (h *handler) get(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	switch c.QueryParam("endpoint") {
	case "latest":
		return h.getLatest(c, context)
	case "all":
		return h.getAll(c, context)
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid endpoint"})
	}
}

func (h *handler) getLatest(c echo.Context, context ctx.Ctx) error {
	latest, err := h.listingUC.Latest(context)
	if err == domain.ErrNoActiveListings {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, latest)
}

func (h *handler) getAll(c echo.Context, context ctx.Ctx) error {
	limit := defaultPageSize
	offset := 0
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = v
	}
	if raw := c.QueryParam("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		offset = v
	}
	listings, total, err := h.listingUC.All(context, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, allResponse{Listings: listings, Total: total})
}

func (h *handler) post(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	req := &postRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrBadParamInput.Error()})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	activeCount, err := h.listingUC.Apply(context, listing.Action(req.Action), req.Items, req.WalletAddress)
	if err == domain.ErrInvalidAction {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, postResponse{Success: true, ActiveCount: activeCount})
}
