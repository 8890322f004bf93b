package sync

import (
	"time"

	"github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/domain"
)

type Action string

const (
	ActionList   Action = "list"
	ActionDelist Action = "delist"
	ActionBuy    Action = "buy"
)

func ToAction(s string) (Action, error) {
	switch Action(s) {
	case ActionList, ActionDelist, ActionBuy:
		return Action(s), nil
	default:
		return "", domain.ErrInvalidAction
	}
}

// State of a pending mutation item. Every item starts Optimistic and ends in
// exactly one of Confirmed or RolledBack after the verification window.
type State string

const (
	StateOptimistic State = "optimistic"
	StateConfirmed  State = "confirmed"
	StateRolledBack State = "rolledBack"
)

// Item identifies one listing touched by a wallet-submitted transaction.
type Item struct {
	TokenId    domain.TokenId `json:"tokenId"`
	Collection domain.Address `json:"collection"`
	Seller     domain.Address `json:"seller"`
	Price      string         `json:"price"`
	IsEth      bool           `json:"isEth"`
	Currency   domain.Address `json:"currency"`
}

// Mutation is a wallet-submitted marketplace transaction pending
// verification. Items of a batch transaction verify independently.
type Mutation struct {
	Id          string
	Action      Action
	TxHash      domain.TxHash
	Items       []Item
	SubmittedAt time.Time
}

// ItemResult is the verification outcome for a single item.
type ItemResult struct {
	Key    string `json:"key"`
	State  State  `json:"state"`
	Reason string `json:"reason,omitempty"`
}

type UseCase interface {
	// Submit applies the optimistic store mutation and schedules the delayed
	// on-chain verification plus the later background reconciliation. It
	// returns the mutation id without waiting for either.
	Submit(c ctx.Ctx, m *Mutation) (string, error)

	// Verify runs the read-back for every item of the mutation, rolling back
	// items the chain disagrees with.
	Verify(c ctx.Ctx, m *Mutation) []ItemResult

	// Reconcile refetches the seller's listings and heals drift the
	// verification window missed.
	Reconcile(c ctx.Ctx, seller domain.Address) error
}
