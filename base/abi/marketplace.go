package abi

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"
)

var MarketplaceABI abi.ABI

var marketplaceABI = `[
{"type":"function","name":"getListingDetails","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"collection"},{"type":"uint256","name":"tokenId"},{"type":"address","name":"seller"}],"outputs":[{"type":"uint256","name":"price"},{"type":"address","name":"currency"},{"type":"bool","name":"isEth"}]},
{"type":"function","name":"createListing","stateMutability":"nonpayable","inputs":[{"type":"address","name":"collection"},{"type":"uint256","name":"tokenId"},{"type":"uint256","name":"price"},{"type":"bool","name":"isEth"}],"outputs":[]},
{"type":"function","name":"createListingBatch","stateMutability":"nonpayable","inputs":[{"type":"address","name":"collection"},{"type":"uint256[]","name":"tokenIds"},{"type":"uint256[]","name":"prices"},{"type":"bool","name":"isEth"}],"outputs":[]},
{"type":"function","name":"delist","stateMutability":"nonpayable","inputs":[{"type":"address","name":"collection"},{"type":"uint256","name":"tokenId"}],"outputs":[]},
{"type":"function","name":"delistBatch","stateMutability":"nonpayable","inputs":[{"type":"address","name":"collection"},{"type":"uint256[]","name":"tokenIds"}],"outputs":[]},
{"type":"function","name":"buyListing","stateMutability":"payable","inputs":[{"type":"address","name":"collection"},{"type":"uint256","name":"tokenId"},{"type":"address","name":"seller"}],"outputs":[]},
{"type":"function","name":"batchBuy","stateMutability":"payable","inputs":[{"type":"address","name":"collection"},{"type":"uint256[]","name":"tokenIds"},{"type":"address[]","name":"sellers"}],"outputs":[]},
{"type":"event","anonymous":false,"name":"ListingCreated","inputs":[{"type":"address","name":"collection","indexed":true},{"type":"uint256","name":"tokenId","indexed":true},{"type":"address","name":"seller","indexed":true},{"type":"uint256","name":"price"},{"type":"bool","name":"isEth"}]},
{"type":"event","anonymous":false,"name":"ListingDelisted","inputs":[{"type":"address","name":"collection","indexed":true},{"type":"uint256","name":"tokenId","indexed":true},{"type":"address","name":"seller","indexed":true}]}
]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(marketplaceABI))
	if err != nil {
		panic("Failed to parse marketplace abi")
	}
	MarketplaceABI = _abi
}

const wordSize = 32

type ListingCreatedLog struct {
	Collection common.Address // indexed
	TokenId    *big.Int       // indexed
	Seller     common.Address // indexed
	Price      *big.Int
	IsEth      bool
}

type ListingDelistedLog struct {
	Collection common.Address // indexed
	TokenId    *big.Int       // indexed
	Seller     common.Address // indexed
}

// padWords right-pads data with zeros to n 32-byte words. Push providers
// occasionally truncate trailing zero words of the log data.
func padWords(data []byte, n int) []byte {
	want := n * wordSize
	if len(data) >= want {
		return data
	}
	padded := make([]byte, want)
	copy(padded, data)
	return padded
}

// ToListingCreatedLog decodes a ListingCreated log. The non-indexed fields
// are sliced manually instead of abi-unpacked so truncated data still decodes.
func ToListingCreatedLog(log *types.Log) (*ListingCreatedLog, error) {
	if len(log.Topics) < 4 {
		return nil, xerrors.Errorf("ListingCreated log with %d topics", len(log.Topics))
	}
	data := padWords(log.Data, 2)
	return &ListingCreatedLog{
		Collection: common.BytesToAddress(log.Topics[1].Bytes()),
		TokenId:    new(big.Int).SetBytes(log.Topics[2].Bytes()),
		Seller:     common.BytesToAddress(log.Topics[3].Bytes()),
		Price:      new(big.Int).SetBytes(data[:wordSize]),
		IsEth:      new(big.Int).SetBytes(data[wordSize:2*wordSize]).Sign() != 0,
	}, nil
}

func ToListingDelistedLog(log *types.Log) (*ListingDelistedLog, error) {
	if len(log.Topics) < 4 {
		return nil, xerrors.Errorf("ListingDelisted log with %d topics", len(log.Topics))
	}
	return &ListingDelistedLog{
		Collection: common.BytesToAddress(log.Topics[1].Bytes()),
		TokenId:    new(big.Int).SetBytes(log.Topics[2].Bytes()),
		Seller:     common.BytesToAddress(log.Topics[3].Bytes()),
	}, nil
}
