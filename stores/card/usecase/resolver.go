package usecase

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	bCtx "github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/base/log"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/domain/card"
	"github.com/vibemarket/goapi/service/indexer"
)

var trailingNumberRe = regexp.MustCompile(` #\d+$`)

type impl struct {
	indexerClient indexer.Client
}

func New(indexerClient indexer.Client) card.Resolver {
	return &impl{indexerClient: indexerClient}
}

// Resolve never fails: every error path degrades to a placeholder whose Error
// field carries the reason, so a render of the result is always possible.
func (im *impl) Resolve(ctx bCtx.Ctx, tokenId domain.TokenId, collection domain.Address) *card.Metadata {
	if !tokenId.IsPositive() {
		return placeholder("Invalid tokenId")
	}
	resp, err := im.indexerClient.GetCardMetadata(ctx, collection, tokenId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"tokenId":    tokenId,
			"collection": collection,
			"err":        err,
		}).Warn("GetCardMetadata failed")
		return placeholder(err.Error())
	}
	return &card.Metadata{
		Image:        resp.ImageUrl,
		Name:         stripTrailingNumber(resp.Name),
		Rarity:       titleCase(resp.Rarity),
		Wear:         resp.Wear,
		Foil:         resp.FoilType,
		TokenAddress: resp.BoosterToken.Address.ToLower(),
		TokenSymbol:  resp.BoosterToken.Symbol,
		PricePerPack: parseUsdPrice(resp.PricePerPack),
	}
}

func placeholder(reason string) *card.Metadata {
	return &card.Metadata{
		Name:         "Unknown Card",
		Rarity:       "Unknown",
		TokenAddress: domain.EmptyAddress,
		Error:        reason,
	}
}

// stripTrailingNumber drops a trailing " #123" serial from a display name.
func stripTrailingNumber(name string) string {
	return trailingNumberRe.ReplaceAllString(name, "")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// parseUsdPrice parses a display price like "$1,234.56" into a float. A
// missing or malformed price is 0, never an error.
func parseUsdPrice(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
