package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/domain"
	syncdomain "github.com/vibemarket/goapi/domain/sync"
)

type handler struct {
	syncUC syncdomain.UseCase
}

type verifyRequest struct {
	Action string            `json:"action" validate:"required,oneof=list delist buy"`
	TxHash string            `json:"txHash"`
	Items  []syncdomain.Item `json:"items" validate:"required,min=1"`
}

type verifyResponse struct {
	Accepted bool   `json:"accepted"`
	Id       string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(e *echo.Echo, syncUC syncdomain.UseCase) {
	h := &handler{syncUC: syncUC}

	g := e.Group("/api/sync")
	g.POST("/verify", h.verify)
}

// verify accepts a wallet-submitted mutation, applies the optimistic store
// update and schedules the delayed on-chain verification. It does not wait
// for either outcome.
func (h *handler) verify(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	req := &verifyRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: domain.ErrBadParamInput.Error()})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	id, err := h.syncUC.Submit(context, &syncdomain.Mutation{
		Action: syncdomain.Action(req.Action),
		TxHash: domain.TxHash(req.TxHash),
		Items:  req.Items,
	})
	if err == domain.ErrInvalidAction || err == domain.ErrInvalidTokenId || err == domain.ErrBadParamInput {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusAccepted, verifyResponse{Accepted: true, Id: id})
}
