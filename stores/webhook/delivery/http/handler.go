package http

import (
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/labstack/echo/v4"

	"github.com/vibemarket/goapi/base/abi"
	"github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/base/log"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/domain/listing"
	"github.com/vibemarket/goapi/service/chain/contract"
)

var (
	listingCreatedSig  = abi.MarketplaceABI.Events["ListingCreated"].ID
	listingDelistedSig = abi.MarketplaceABI.Events["ListingDelisted"].ID
)

type handler struct {
	listingUC   listing.UseCase
	marketplace contract.MarketplaceContract
}

// rawLog is one entry of the push provider's block payload.
type rawLog struct {
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
	Account struct {
		Address string `json:"address"`
	} `json:"account"`
	Transaction struct {
		Hash string `json:"hash"`
	} `json:"transaction"`
}

type eventPayload struct {
	Event struct {
		Data struct {
			Block struct {
				Logs []rawLog `json:"logs"`
			} `json:"block"`
		} `json:"data"`
	} `json:"event"`
}

type eventResponse struct {
	Success     bool `json:"success"`
	ActiveCount int  `json:"activeCount"`
	Changes     int  `json:"changes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(e *echo.Echo, listingUC listing.UseCase, marketplace contract.MarketplaceContract) {
	h := &handler{listingUC: listingUC, marketplace: marketplace}

	e.POST("/api/webhook-events", h.ingest)
}

// ingest applies marketplace events pushed by the provider. Each log is
// decoded independently so one malformed entry cannot abort the batch; the
// full map is persisted once at the end.
func (h *handler) ingest(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	payload := &eventPayload{}
	if err := c.Bind(payload); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: domain.ErrBadParamInput.Error()})
	}

	var adds []listing.Listing
	var removeKeys []string
	for _, raw := range payload.Event.Data.Block.Logs {
		l, err := toEthLog(raw)
		if err != nil {
			context.WithFields(log.Fields{
				"txHash": raw.Transaction.Hash,
				"err":    err,
			}).Warn("skipping malformed log")
			continue
		}
		switch l.Topics[0] {
		case listingCreatedSig:
			created, err := abi.ToListingCreatedLog(l)
			if err != nil {
				context.WithField("err", err).Warn("failed to parse ListingCreated log")
				continue
			}
			adds = append(adds, h.toListing(context, created))
		case listingDelistedSig:
			delisted, err := abi.ToListingDelistedLog(l)
			if err != nil {
				context.WithField("err", err).Warn("failed to parse ListingDelisted log")
				continue
			}
			removeKeys = append(removeKeys, listing.MakeKey(
				domain.TokenId(delisted.TokenId.String()),
				domain.Address(delisted.Collection.Hex()),
				domain.Address(delisted.Seller.Hex()),
			))
		default:
			context.WithField("signature", l.Topics[0]).Info("unrecognized signature, skipping")
		}
	}

	changes, activeCount, err := h.listingUC.ApplyRaw(context, adds, removeKeys)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, eventResponse{Success: true, ActiveCount: activeCount, Changes: changes})
}

func (h *handler) toListing(context ctx.Ctx, created *abi.ListingCreatedLog) listing.Listing {
	currency := domain.EmptyAddress
	if !created.IsEth {
		// the event does not carry the settlement token, resolve it from the
		// contract; the zero address stands in when the read fails
		details, err := h.marketplace.GetListingDetails(
			context,
			domain.Address(created.Collection.Hex()),
			domain.TokenId(created.TokenId.String()),
			domain.Address(created.Seller.Hex()),
		)
		if err != nil {
			context.WithField("err", err).Warn("currency resolution failed, defaulting to zero address")
		} else {
			currency = details.Currency
		}
	}
	l := listing.Listing{
		TokenId:    domain.TokenId(created.TokenId.String()),
		Collection: domain.Address(created.Collection.Hex()),
		Seller:     domain.Address(created.Seller.Hex()),
		Price:      created.Price.String(),
		IsEth:      created.IsEth,
		Currency:   currency,
		Timestamp:  time.Now().UnixMilli(),
	}
	l.Normalize()
	return l
}

func toEthLog(raw rawLog) (*types.Log, error) {
	if len(raw.Topics) == 0 {
		return nil, domain.ErrBadParamInput
	}
	topics := make([]common.Hash, 0, len(raw.Topics))
	for _, t := range raw.Topics {
		topics = append(topics, common.HexToHash(t))
	}
	return &types.Log{
		Address: common.HexToAddress(raw.Account.Address),
		Topics:  topics,
		Data:    common.FromHex(raw.Data),
	}, nil
}
