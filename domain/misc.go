package domain

import (
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

type ChainId int32

// BaseChainId is the only network the marketplace trades on.
const BaseChainId = ChainId(8453)

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// ToBig parses the decimal token id. Ids are decimal strings end to end to
// avoid precision loss on large values.
func (i TokenId) ToBig() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok {
		return nil, xerrors.Errorf("invalid id %s", i)
	}
	return id, nil
}

// IsValid reports whether the id parses to a non-negative integer.
func (i TokenId) IsValid() bool {
	id, err := i.ToBig()
	return err == nil && id.Sign() >= 0
}

// IsPositive reports whether the id parses to an integer greater than zero.
// Card ids are minted from 1; zero only occurs on store and sync paths.
func (i TokenId) IsPositive() bool {
	id, err := i.ToBig()
	return err == nil && id.Sign() > 0
}

type BlockNumber uint64

type TxHash string

type BlockHash string
