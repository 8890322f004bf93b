package listing

import (
	"fmt"

	"github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/domain/card"
)

// Listing is an active sell order as cached off-chain. Price is always a
// base-10 string of a wei amount; it must never round-trip through a float.
// The bson tags are all lower-case on purpose: stored field names are
// lower-cased and this tag layer is the single normalization point back to
// the canonical camelCase shape.
type Listing struct {
	Key        string         `json:"key" bson:"key"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenid"`
	Collection domain.Address `json:"collection" bson:"collection"`
	Seller     domain.Address `json:"seller" bson:"seller"`
	Price      string         `json:"price" bson:"price"`
	IsEth      bool           `json:"isEth" bson:"iseth"`
	Currency   domain.Address `json:"currency" bson:"currency"`
	Timestamp  int64          `json:"timestamp" bson:"timestamp"`
}

// MakeKey builds the canonical composite key. The seller is part of the key
// because the marketplace contract scopes listings per seller.
func MakeKey(tokenId domain.TokenId, collection, seller domain.Address) string {
	return fmt.Sprintf("%s-%s-%s", tokenId, collection.ToLowerStr(), seller.ToLowerStr())
}

// Normalize recomputes the key from the identifying fields and lower-cases
// the address fields. Keys arriving from clients are never trusted.
func (l *Listing) Normalize() {
	l.Collection = l.Collection.ToLower()
	l.Seller = l.Seller.ToLower()
	l.Currency = l.Currency.ToLower()
	if l.IsEth {
		l.Currency = domain.EmptyAddress
	}
	l.Key = MakeKey(l.TokenId, l.Collection, l.Seller)
}

// Enriched is a listing joined with resolved card metadata for read endpoints.
type Enriched struct {
	Listing
	Metadata *card.Metadata `json:"metadata"`
	// DisplayPrice is Price shifted to whole settlement-token units.
	DisplayPrice string `json:"displayPrice"`
}

type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// Item is one entry of a POST mutation batch.
type Item struct {
	Key     string  `json:"key"`
	Listing Listing `json:"listing"`
}

// Repo abstracts the listings backend. Load is tolerant: a missing backing
// file or a failed query yields an empty map, not an error, so read paths
// never break on storage trouble.
type Repo interface {
	Load(c ctx.Ctx) (map[string]Listing, error)
	SaveAll(c ctx.Ctx, listings map[string]Listing) error
	Upsert(c ctx.Ctx, l Listing) error
	Remove(c ctx.Ctx, key string) error
}

type UseCase interface {
	// Latest returns the listing with the maximum timestamp, enriched.
	// Returns domain.ErrNoActiveListings when the store is empty.
	Latest(c ctx.Ctx) (*Enriched, error)

	// All returns listings sorted by timestamp descending, sliced by
	// [offset, offset+limit), each enriched, plus the pre-pagination total.
	// Listings whose claimed seller no longer owns the token are excluded and
	// queued for removal.
	All(c ctx.Ctx, limit, offset int) ([]Enriched, int, error)

	// Apply runs a batch of add/remove mutations and persists the full map.
	// Adds whose seller does not match wallet are skipped silently. Returns
	// the number of active listings after the batch.
	Apply(c ctx.Ctx, action Action, items []Item, wallet domain.Address) (int, error)

	// ApplyRaw applies trusted mutations (webhook and sync paths, no wallet
	// check) and persists the full map once. It returns how many entries
	// actually changed and the resulting active count.
	ApplyRaw(c ctx.Ctx, adds []Listing, removeKeys []string) (changes, activeCount int, err error)

	// Add and Remove are single-entry ApplyRaw conveniences. Remove reports
	// whether the key was present.
	Add(c ctx.Ctx, l Listing) error
	Remove(c ctx.Ctx, key string) (bool, error)

	// BySeller returns the stored listings claimed by seller.
	BySeller(c ctx.Ctx, seller domain.Address) ([]Listing, error)
}
