package usecase

import (
	"sort"
	"sync"
	"time"

	"github.com/viney-shih/goroutines"

	bCtx "github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/base/log"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/domain/card"
	"github.com/vibemarket/goapi/domain/keys"
	"github.com/vibemarket/goapi/domain/listing"
	"github.com/vibemarket/goapi/service/cache"
	"github.com/vibemarket/goapi/service/chain/contract"
)

var latestCacheKey = keys.RedisKey(keys.PfxListings, "latest")

// Settlement currencies on base (eth and the booster tokens) all carry 18
// decimals.
const priceDecimals = 18

type ListingUseCaseCfg struct {
	Repo     listing.Repo
	Resolver card.Resolver
	Erc721   contract.Erc721Contract
	ChainId  domain.ChainId
	// Cache holds the enriched latest listing between mutations. Optional.
	Cache cache.Service
}

type impl struct {
	repo     listing.Repo
	resolver card.Resolver
	erc721   contract.Erc721Contract
	chainId  domain.ChainId
	cache    cache.Service

	// mu serializes load-mutate-save cycles. The map itself lives in the
	// backend, not in package state, so concurrent instances defer to the
	// store as source of truth.
	mu sync.Mutex

	sweepPool *goroutines.Pool
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	return &impl{
		repo:      cfg.Repo,
		resolver:  cfg.Resolver,
		erc721:    cfg.Erc721,
		chainId:   cfg.ChainId,
		cache:     cfg.Cache,
		sweepPool: goroutines.NewPool(16, goroutines.WithTaskQueueLength(256)),
	}
}

func (im *impl) Latest(c bCtx.Ctx) (*listing.Enriched, error) {
	if im.cache == nil {
		return im.latest(c)
	}
	res := &listing.Enriched{}
	err := im.cache.GetByFunc(c, latestCacheKey, res, func() (interface{}, error) {
		return im.latest(c)
	})
	switch err {
	case nil:
		return res, nil
	case domain.ErrNoActiveListings:
		// empty store is not cached
		return nil, err
	default:
		c.WithField("err", err).Warn("latest cache failed, reading through")
		return im.latest(c)
	}
}

func (im *impl) latest(c bCtx.Ctx) (*listing.Enriched, error) {
	listings, err := im.repo.Load(c)
	if err != nil {
		return nil, err
	}
	var best *listing.Listing
	for _, l := range listings {
		l := l
		// ties break toward the larger key so the pick is stable
		if best == nil || l.Timestamp > best.Timestamp ||
			(l.Timestamp == best.Timestamp && l.Key > best.Key) {
			best = &l
		}
	}
	if best == nil {
		return nil, domain.ErrNoActiveListings
	}
	return &listing.Enriched{
		Listing:      *best,
		Metadata:     im.resolver.Resolve(c, best.TokenId, best.Collection),
		DisplayPrice: card.DisplayAmount(best.Price, priceDecimals),
	}, nil
}

func (im *impl) All(c bCtx.Ctx, limit, offset int) ([]listing.Enriched, int, error) {
	listings, err := im.repo.Load(c)
	if err != nil {
		return nil, 0, err
	}
	sorted := make([]listing.Listing, 0, len(listings))
	for _, l := range listings {
		sorted = append(sorted, l)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Timestamp != sorted[j].Timestamp {
			return sorted[i].Timestamp > sorted[j].Timestamp
		}
		return sorted[i].Key > sorted[j].Key
	})
	total := len(sorted)

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset >= total {
		return []listing.Enriched{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := sorted[offset:end]

	type slot struct {
		idx  int
		item *listing.Enriched
	}

	b := goroutines.NewBatch(10, goroutines.WithBatchSize(len(page)))
	defer b.Close()
	for i := range page {
		idx := i
		b.Queue(func() (interface{}, error) {
			l := page[idx]
			if !im.sellerStillOwns(c, l) {
				im.queueStaleRemoval(c, l.Key)
				return slot{idx, nil}, nil
			}
			return slot{idx, &listing.Enriched{
				Listing:      l,
				Metadata:     im.resolver.Resolve(c, l.TokenId, l.Collection),
				DisplayPrice: card.DisplayAmount(l.Price, priceDecimals),
			}}, nil
		})
	}
	b.QueueComplete()

	ordered := make([]*listing.Enriched, len(page))
	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Error("enrich batch error result")
			continue
		}
		s := ret.Value().(slot)
		ordered[s.idx] = s.item
	}
	res := make([]listing.Enriched, 0, len(page))
	for _, e := range ordered {
		if e != nil {
			res = append(res, *e)
		}
	}
	return res, total, nil
}

// sellerStillOwns cross-checks the claimed seller against the current
// on-chain owner. Read failures keep the listing; only a definite mismatch
// invalidates it.
func (im *impl) sellerStillOwns(c bCtx.Ctx, l listing.Listing) bool {
	id, err := l.TokenId.ToBig()
	if err != nil {
		return true
	}
	owner, err := im.erc721.OwnerOf(c, int32(im.chainId), string(l.Collection), id)
	if err != nil {
		c.WithFields(log.Fields{
			"key": l.Key,
			"err": err,
		}).Warn("ownerOf failed, keeping listing")
		return true
	}
	return l.Seller.Equals(domain.Address(owner))
}

// queueStaleRemoval removes an invalidated listing off the request path. The
// task result is logged instead of dropped so removal failures stay visible.
func (im *impl) queueStaleRemoval(c bCtx.Ctx, key string) {
	err := im.sweepPool.ScheduleWithTimeout(3*time.Second, func() {
		removed, err := im.Remove(c, key)
		if err != nil {
			c.WithFields(log.Fields{
				"key": key,
				"err": err,
			}).Error("stale listing removal failed")
			return
		}
		c.WithFields(log.Fields{
			"key":     key,
			"removed": removed,
		}).Info("stale listing swept")
	})
	if err != nil {
		c.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Error("failed to schedule stale removal")
	}
}

func (im *impl) Apply(c bCtx.Ctx, action listing.Action, items []listing.Item, wallet domain.Address) (int, error) {
	if action != listing.ActionAdd && action != listing.ActionRemove {
		return 0, domain.ErrInvalidAction
	}
	im.mu.Lock()
	defer im.mu.Unlock()

	listings, err := im.repo.Load(c)
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		switch action {
		case listing.ActionAdd:
			l := item.Listing
			l.Normalize()
			// only the declared wallet may list on its own behalf;
			// mismatches are skipped, not rejected
			if !l.Seller.Equals(wallet) {
				c.WithFields(log.Fields{
					"key":    l.Key,
					"seller": l.Seller,
					"wallet": wallet,
				}).Warn("seller mismatch, skipping item")
				continue
			}
			listings[l.Key] = l
		case listing.ActionRemove:
			delete(listings, itemKey(item))
		}
	}
	if err := im.repo.SaveAll(c, listings); err != nil {
		return 0, err
	}
	im.invalidateLatest(c)
	return len(listings), nil
}

func (im *impl) ApplyRaw(c bCtx.Ctx, adds []listing.Listing, removeKeys []string) (int, int, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	listings, err := im.repo.Load(c)
	if err != nil {
		return 0, 0, err
	}
	changes := 0
	normalized := make([]listing.Listing, 0, len(adds))
	for _, l := range adds {
		l.Normalize()
		listings[l.Key] = l
		normalized = append(normalized, l)
		changes++
	}
	removed := make([]string, 0, len(removeKeys))
	for _, key := range removeKeys {
		if _, ok := listings[key]; !ok {
			continue
		}
		delete(listings, key)
		removed = append(removed, key)
		changes++
	}
	if changes == 0 {
		return 0, len(listings), nil
	}
	// single-key mutations go through the per-key repo methods; only batches
	// rewrite the whole snapshot
	switch {
	case len(normalized) == 1 && len(removed) == 0:
		err = im.repo.Upsert(c, normalized[0])
	case len(normalized) == 0 && len(removed) == 1:
		err = im.repo.Remove(c, removed[0])
	default:
		err = im.repo.SaveAll(c, listings)
	}
	if err != nil {
		return 0, 0, err
	}
	im.invalidateLatest(c)
	return changes, len(listings), nil
}

func (im *impl) Add(c bCtx.Ctx, l listing.Listing) error {
	_, _, err := im.ApplyRaw(c, []listing.Listing{l}, nil)
	return err
}

func (im *impl) Remove(c bCtx.Ctx, key string) (bool, error) {
	changes, _, err := im.ApplyRaw(c, nil, []string{key})
	return changes > 0, err
}

func (im *impl) BySeller(c bCtx.Ctx, seller domain.Address) ([]listing.Listing, error) {
	listings, err := im.repo.Load(c)
	if err != nil {
		return nil, err
	}
	res := []listing.Listing{}
	for _, l := range listings {
		if l.Seller.Equals(seller) {
			res = append(res, l)
		}
	}
	return res, nil
}

// itemKey recomputes the canonical key whenever the identifying fields are
// present; a client-provided key is only a fallback.
func itemKey(item listing.Item) string {
	l := item.Listing
	if l.TokenId != "" && !l.Collection.IsEmpty() && !l.Seller.IsEmpty() {
		return listing.MakeKey(l.TokenId, l.Collection, l.Seller)
	}
	return item.Key
}

func (im *impl) invalidateLatest(c bCtx.Ctx) {
	if im.cache == nil {
		return
	}
	if err := im.cache.Del(c, latestCacheKey); err != nil && err != cache.ErrNotFound {
		c.WithField("err", err).Warn("latest cache invalidation failed")
	}
}
