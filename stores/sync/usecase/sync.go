package usecase

import (
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"

	"github.com/vibemarket/goapi/base/backoff"
	bCtx "github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/base/goroutine"
	"github.com/vibemarket/goapi/base/log"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/domain/listing"
	syncdomain "github.com/vibemarket/goapi/domain/sync"
	"github.com/vibemarket/goapi/service/chain"
	"github.com/vibemarket/goapi/service/chain/contract"
)

const (
	defaultVerifyDelay  = 8 * time.Second
	defaultRefreshDelay = 10 * time.Second

	receiptBackoffStart = 1 * time.Second
	receiptBackoffLimit = 4 * time.Second
	receiptMaxAttempts  = 5
)

type SyncUseCaseCfg struct {
	ListingUC   listing.UseCase
	Marketplace contract.MarketplaceContract
	Chain       chain.Client
	ChainId     domain.ChainId
	// OwnedRefetch refetches the seller's inventory during reconciliation.
	// Optional; reconciliation still heals listings without it.
	OwnedRefetch func(c bCtx.Ctx, owner domain.Address) (int, error)

	// VerifyDelay is the wait between submission and the read-back, 8s in
	// production; tests shrink it.
	VerifyDelay time.Duration
	// RefreshDelay is the wait before the background reconciliation.
	RefreshDelay time.Duration
}

type impl struct {
	listingUC    listing.UseCase
	marketplace  contract.MarketplaceContract
	chainService chain.Client
	chainId      domain.ChainId
	ownedRefetch func(c bCtx.Ctx, owner domain.Address) (int, error)
	verifyDelay  time.Duration
	refreshDelay time.Duration
}

func New(cfg *SyncUseCaseCfg) syncdomain.UseCase {
	verifyDelay := cfg.VerifyDelay
	if verifyDelay == 0 {
		verifyDelay = defaultVerifyDelay
	}
	refreshDelay := cfg.RefreshDelay
	if refreshDelay == 0 {
		refreshDelay = defaultRefreshDelay
	}
	return &impl{
		listingUC:    cfg.ListingUC,
		marketplace:  cfg.Marketplace,
		chainService: cfg.Chain,
		chainId:      cfg.ChainId,
		ownedRefetch: cfg.OwnedRefetch,
		verifyDelay:  verifyDelay,
		refreshDelay: refreshDelay,
	}
}

// Submit applies the optimistic mutation, then hands the mutation to a
// supervised goroutine that runs the verification after the fixed delay and
// the reconciliation after the refresh delay. The caller gets the mutation id
// back immediately.
func (im *impl) Submit(c bCtx.Ctx, m *syncdomain.Mutation) (string, error) {
	if _, err := syncdomain.ToAction(string(m.Action)); err != nil {
		return "", err
	}
	if len(m.Items) == 0 {
		return "", domain.ErrBadParamInput
	}
	for _, item := range m.Items {
		if !item.TokenId.IsValid() {
			return "", domain.ErrInvalidTokenId
		}
	}
	m.Id = uuid.NewString()
	m.SubmittedAt = time.Now()

	if err := im.applyOptimistic(c, m); err != nil {
		return "", err
	}

	goroutine.RecoverableGo(func() {
		im.runDeferred(c, m)
	})
	return m.Id, nil
}

func (im *impl) applyOptimistic(c bCtx.Ctx, m *syncdomain.Mutation) error {
	var adds []listing.Listing
	var removes []string
	now := m.SubmittedAt.UnixMilli()
	for _, item := range m.Items {
		switch m.Action {
		case syncdomain.ActionList:
			adds = append(adds, itemToListing(item, now))
		case syncdomain.ActionDelist, syncdomain.ActionBuy:
			removes = append(removes, itemKey(item))
		}
	}
	_, _, err := im.listingUC.ApplyRaw(c, adds, removes)
	return err
}

func (im *impl) runDeferred(c bCtx.Ctx, m *syncdomain.Mutation) {
	verifyAt := m.SubmittedAt.Add(im.verifyDelay)
	refreshAt := m.SubmittedAt.Add(im.refreshDelay)

	time.Sleep(time.Until(verifyAt))
	results := im.Verify(c, m)
	for _, r := range results {
		c.WithFields(log.Fields{
			"mutation": m.Id,
			"key":      r.Key,
			"state":    r.State,
			"reason":   r.Reason,
		}).Info("verification result")
	}

	time.Sleep(time.Until(refreshAt))
	sellers := map[domain.Address]struct{}{}
	for _, item := range m.Items {
		sellers[item.Seller.ToLower()] = struct{}{}
	}
	for seller := range sellers {
		if err := im.Reconcile(c, seller); err != nil {
			c.WithFields(log.Fields{
				"mutation": m.Id,
				"seller":   seller,
				"err":      err,
			}).Error("reconcile failed")
		}
	}
}

// Verify reconciles every item of the mutation against the chain. The
// receipt is consulted first: a reverted transaction rolls back all items
// without read-backs. A receipt that cannot be fetched in time is treated as
// transient and the read-back decides.
func (im *impl) Verify(c bCtx.Ctx, m *syncdomain.Mutation) []syncdomain.ItemResult {
	if m.TxHash != "" {
		if status, ok := im.receiptStatus(c, m.TxHash); ok && status == types.ReceiptStatusFailed {
			return im.rollbackAll(c, m, "transaction reverted")
		}
	}

	results := make([]syncdomain.ItemResult, 0, len(m.Items))
	for _, item := range m.Items {
		results = append(results, im.verifyItem(c, m.Action, item))
	}
	return results
}

// receiptStatus polls for the receipt with bounded exponential backoff. ok is
// false when the receipt never became visible, which callers must not treat
// as failure.
func (im *impl) receiptStatus(c bCtx.Ctx, txHash domain.TxHash) (uint64, bool) {
	bo := backoff.NewExponential(receiptBackoffStart, receiptBackoffLimit)
	hash := common.HexToHash(string(txHash))
	for attempt := 0; attempt < receiptMaxAttempts; attempt++ {
		receipt, err := im.chainService.TransactionReceipt(c, int32(im.chainId), hash)
		if err == nil {
			return receipt.Status, true
		}
		if err != ethereum.NotFound {
			c.WithFields(log.Fields{
				"txHash": txHash,
				"err":    err,
			}).Warn("receipt fetch failed, treating as transient")
			return 0, false
		}
		if err := bo.Backoff(c); err != nil {
			return 0, false
		}
	}
	return 0, false
}

func (im *impl) rollbackAll(c bCtx.Ctx, m *syncdomain.Mutation, reason string) []syncdomain.ItemResult {
	results := make([]syncdomain.ItemResult, 0, len(m.Items))
	for _, item := range m.Items {
		key := itemKey(item)
		switch m.Action {
		case syncdomain.ActionList:
			if _, err := im.listingUC.Remove(c, key); err != nil {
				results = append(results, syncdomain.ItemResult{Key: key, State: syncdomain.StateOptimistic, Reason: err.Error()})
				continue
			}
		case syncdomain.ActionDelist, syncdomain.ActionBuy:
			if err := im.listingUC.Add(c, itemToListing(item, time.Now().UnixMilli())); err != nil {
				results = append(results, syncdomain.ItemResult{Key: key, State: syncdomain.StateOptimistic, Reason: err.Error()})
				continue
			}
		}
		results = append(results, syncdomain.ItemResult{Key: key, State: syncdomain.StateRolledBack, Reason: reason})
	}
	return results
}

// verifyItem runs the read-back for one item. The marketplace contract
// reverts for a listing that does not exist, so a read error means "no active
// listing" and the polarity of the outcome depends on the action.
func (im *impl) verifyItem(c bCtx.Ctx, action syncdomain.Action, item syncdomain.Item) syncdomain.ItemResult {
	key := itemKey(item)
	details, err := im.marketplace.GetListingDetails(c, item.Collection, item.TokenId, item.Seller)
	onChain := err == nil && details.Price != nil && details.Price.Sign() > 0

	switch action {
	case syncdomain.ActionList:
		if onChain {
			// self-heal price and currency from the authoritative read
			l := itemToListing(item, time.Now().UnixMilli())
			l.Price = details.Price.String()
			l.IsEth = details.IsEth
			l.Currency = details.Currency
			if err := im.listingUC.Add(c, l); err != nil {
				return syncdomain.ItemResult{Key: key, State: syncdomain.StateOptimistic, Reason: err.Error()}
			}
			return syncdomain.ItemResult{Key: key, State: syncdomain.StateConfirmed}
		}
		if _, err := im.listingUC.Remove(c, key); err != nil {
			return syncdomain.ItemResult{Key: key, State: syncdomain.StateOptimistic, Reason: err.Error()}
		}
		return syncdomain.ItemResult{Key: key, State: syncdomain.StateRolledBack, Reason: "listing not found on chain"}

	case syncdomain.ActionDelist, syncdomain.ActionBuy:
		if !onChain {
			return syncdomain.ItemResult{Key: key, State: syncdomain.StateConfirmed}
		}
		l := itemToListing(item, time.Now().UnixMilli())
		l.Price = details.Price.String()
		l.IsEth = details.IsEth
		l.Currency = details.Currency
		if err := im.listingUC.Add(c, l); err != nil {
			return syncdomain.ItemResult{Key: key, State: syncdomain.StateOptimistic, Reason: err.Error()}
		}
		return syncdomain.ItemResult{Key: key, State: syncdomain.StateRolledBack, Reason: "listing still active on chain"}
	}
	return syncdomain.ItemResult{Key: key, State: syncdomain.StateOptimistic, Reason: "unknown action"}
}

// Reconcile heals drift for one seller: stored listings the chain no longer
// has are dropped, and the seller's inventory is refetched so the next read
// starts warm.
func (im *impl) Reconcile(c bCtx.Ctx, seller domain.Address) error {
	listings, err := im.listingUC.BySeller(c, seller)
	if err != nil {
		return err
	}
	for _, l := range listings {
		details, err := im.marketplace.GetListingDetails(c, l.Collection, l.TokenId, l.Seller)
		if err == nil && details.Price != nil && details.Price.Sign() > 0 {
			continue
		}
		removed, err := im.listingUC.Remove(c, l.Key)
		if err != nil {
			c.WithFields(log.Fields{
				"key": l.Key,
				"err": err,
			}).Error("drift removal failed")
			continue
		}
		if removed {
			c.WithField("key", l.Key).Info("dropped drifted listing")
		}
	}
	if im.ownedRefetch != nil {
		count, err := im.ownedRefetch(c, seller)
		if err != nil {
			c.WithFields(log.Fields{
				"seller": seller,
				"err":    err,
			}).Warn("inventory refetch failed")
		} else {
			c.WithFields(log.Fields{
				"seller": seller,
				"cards":  count,
			}).Info("inventory refetched")
		}
	}
	return nil
}

func itemToListing(item syncdomain.Item, timestamp int64) listing.Listing {
	l := listing.Listing{
		TokenId:    item.TokenId,
		Collection: item.Collection,
		Seller:     item.Seller,
		Price:      item.Price,
		IsEth:      item.IsEth,
		Currency:   item.Currency,
		Timestamp:  timestamp,
	}
	l.Normalize()
	return l
}

func itemKey(item syncdomain.Item) string {
	return listing.MakeKey(item.TokenId, item.Collection, item.Seller)
}
