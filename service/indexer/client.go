package indexer

import (
	"errors"
	"net/http"
	"time"

	bCtx "github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/domain"
)

var (
	ErrRateLimited = errors.New("http.status == 429")
	ErrNoApiKey    = errors.New("no indexer api key configured")
)

// CardStatus is the indexer's listing state of an owned card. Inventory reads
// merge both categories.
type CardStatus string

const (
	CardStatusMinted CardStatus = "minted"
	CardStatusListed CardStatus = "listed"
)

type BoosterTokenResp struct {
	Address domain.Address `json:"address"`
	Symbol  string         `json:"symbol"`
}

// CardMetadataResp is the raw indexer metadata payload, before normalization.
type CardMetadataResp struct {
	ImageUrl     string           `json:"imageUrl"`
	Name         string           `json:"name"`
	Rarity       string           `json:"rarity"`
	Wear         string           `json:"wear"`
	FoilType     string           `json:"foilType"`
	BoosterToken BoosterTokenResp `json:"boosterToken"`
	// PricePerPack is a display string like "$0.07" or "$1,234.56".
	PricePerPack string `json:"pricePerPack"`
}

type OwnedCardResp struct {
	TokenId      domain.TokenId   `json:"tokenId"`
	Collection   domain.Address   `json:"contractAddress"`
	Name         string           `json:"name"`
	ImageUrl     string           `json:"imageUrl"`
	Rarity       string           `json:"rarity"`
	Wear         string           `json:"wear"`
	FoilType     string           `json:"foilType"`
	BoosterToken BoosterTokenResp `json:"boosterToken"`
	Status       CardStatus       `json:"status"`
}

type OwnedCardsResp struct {
	Cards   []OwnedCardResp `json:"cards"`
	Page    int             `json:"page"`
	HasNext bool            `json:"hasNext"`
}

type ClientCfg struct {
	HttpClient http.Client
	BaseUrl    string
	Timeout    time.Duration
	ApiKeys    []string
	// RetryLimit bounds backoff retries on 429 per key. Zero means the
	// default.
	RetryLimit int
}

type Client interface {
	// GetCardMetadata resolves one card with the first configured api key
	// only; no failover on this path.
	GetCardMetadata(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (*CardMetadataResp, error)

	// GetOwnedCards fetches one page of owner's cards in the given status,
	// retrying 429s with exponential backoff and failing over across the
	// configured api keys.
	GetOwnedCards(ctx bCtx.Ctx, owner domain.Address, status CardStatus, page int) (*OwnedCardsResp, error)
}
