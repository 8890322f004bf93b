package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/vibemarket/goapi/base/abi"
	bCtx "github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/base/log"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/service/chain"
)

// ListingDetails mirrors the marketplace contract's listing view. The
// contract reverts for a listing that does not exist, so callers use an error
// from GetListingDetails as "no active listing", not as transport failure.
type ListingDetails struct {
	Price    *big.Int
	Currency domain.Address
	IsEth    bool
}

type MarketplaceContract interface {
	GetListingDetails(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId, seller domain.Address) (*ListingDetails, error)
}

type Marketplace struct {
	chainService chain.Client
	abi          ethabi.ABI
	chainId      domain.ChainId
	address      domain.Address
}

func NewMarketplace(chainService chain.Client, chainId domain.ChainId, address domain.Address) *Marketplace {
	return &Marketplace{
		chainService: chainService,
		abi:          baseabi.MarketplaceABI,
		chainId:      chainId,
		address:      address,
	}
}

func (m *Marketplace) GetListingDetails(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId, seller domain.Address) (*ListingDetails, error) {
	id, err := tokenId.ToBig()
	if err != nil {
		ctx.WithFields(log.Fields{
			"tokenId": tokenId,
			"err":     err,
		}).Error("invalid tokenId")
		return nil, err
	}
	method := "getListingDetails"
	unpacked, err := m.chainService.Call(
		ctx,
		int32(m.chainId),
		common.HexToAddress(string(m.address)),
		nil,
		m.abi,
		method,
		common.HexToAddress(string(collection)),
		id,
		common.HexToAddress(string(seller)),
	)
	if err != nil {
		return nil, err
	}
	return &ListingDetails{
		Price:    unpacked[0].(*big.Int),
		Currency: domain.Address(unpacked[1].(common.Address).Hex()).ToLower(),
		IsEth:    unpacked[2].(bool),
	}, nil
}
