package card

import (
	"github.com/shopspring/decimal"

	"github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/domain"
)

// Metadata is the normalized shape of an indexer card lookup. Lookups never
// fail hard: when the indexer is unreachable or the input is malformed, a
// placeholder is returned with Error set to the failure reason so rendering
// downstream always has a complete object to work with.
type Metadata struct {
	Image        string         `json:"image"`
	Name         string         `json:"name"`
	Rarity       string         `json:"rarity"`
	Wear         string         `json:"wear"`
	Foil         string         `json:"foil"`
	TokenAddress domain.Address `json:"tokenAddress"`
	TokenSymbol  string         `json:"tokenSymbol"`
	PricePerPack float64        `json:"pricePerPack"`
	Error        string         `json:"error,omitempty"`
}

// Resolver resolves card metadata for a token within a collection.
type Resolver interface {
	Resolve(c ctx.Ctx, tokenId domain.TokenId, collection domain.Address) *Metadata
}

// DisplayAmount renders a base-unit integer amount as a human readable
// decimal string shifted by the token's decimals. Malformed input renders
// as "0" rather than an error since display strings are cosmetic.
func DisplayAmount(amount string, decimals int32) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "0"
	}
	return d.Shift(-decimals).String()
}
