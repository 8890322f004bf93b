package inventory

import (
	"github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/domain"
)

// Item is an owned card as reported by the indexer. Items are ephemeral and
// refetched per request; only the HTTP response is cached.
type Item struct {
	TokenId      domain.TokenId `json:"tokenId"`
	Collection   domain.Address `json:"collection"`
	Name         string         `json:"name"`
	Image        string         `json:"image"`
	Rarity       string         `json:"rarity"`
	Wear         string         `json:"wear"`
	Foil         string         `json:"foil"`
	TokenAddress domain.Address `json:"tokenAddress"`
	TokenSymbol  string         `json:"tokenSymbol"`
	Status       string         `json:"status"`
}

type UseCase interface {
	// OwnedCards pages through the indexer for both status categories,
	// merges and dedupes by (tokenId, collection).
	OwnedCards(c ctx.Ctx, owner domain.Address) ([]Item, error)
}
