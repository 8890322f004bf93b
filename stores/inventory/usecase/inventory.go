package usecase

import (
	bCtx "github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/base/log"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/domain/inventory"
	"github.com/vibemarket/goapi/service/indexer"
)

// maxPages caps the indexer pagination walk per status so a misbehaving
// upstream cannot spin the handler forever.
const maxPages = 40

type impl struct {
	indexerClient indexer.Client
}

func New(indexerClient indexer.Client) inventory.UseCase {
	return &impl{indexerClient: indexerClient}
}

func (im *impl) OwnedCards(c bCtx.Ctx, owner domain.Address) ([]inventory.Item, error) {
	type void struct{}
	seen := map[string]void{}
	res := []inventory.Item{}

	for _, status := range []indexer.CardStatus{indexer.CardStatusMinted, indexer.CardStatusListed} {
		for page := 0; page < maxPages; page++ {
			resp, err := im.indexerClient.GetOwnedCards(c, owner, status, page)
			if err != nil {
				c.WithFields(log.Fields{
					"owner":  owner,
					"status": status,
					"page":   page,
					"err":    err,
				}).Error("GetOwnedCards failed")
				return nil, err
			}
			for _, raw := range resp.Cards {
				key := raw.TokenId.String() + "-" + raw.Collection.ToLowerStr()
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = void{}
				res = append(res, toItem(raw))
			}
			if !resp.HasNext {
				break
			}
		}
	}
	return res, nil
}

func toItem(raw indexer.OwnedCardResp) inventory.Item {
	return inventory.Item{
		TokenId:      raw.TokenId,
		Collection:   raw.Collection.ToLower(),
		Name:         raw.Name,
		Image:        raw.ImageUrl,
		Rarity:       raw.Rarity,
		Wear:         raw.Wear,
		Foil:         raw.FoilType,
		TokenAddress: raw.BoosterToken.Address.ToLower(),
		TokenSymbol:  raw.BoosterToken.Symbol,
		Status:       string(raw.Status),
	}
}
