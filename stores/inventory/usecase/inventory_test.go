package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	bCtx "github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/service/indexer"
	"github.com/vibemarket/goapi/service/indexer/mocks"
)

const (
	owner      = domain.Address("0xbbbb000000000000000000000000000000000002")
	collection = domain.Address("0xaaaa000000000000000000000000000000000001")
)

func ownedCard(tokenId string, status indexer.CardStatus) indexer.OwnedCardResp {
	return indexer.OwnedCardResp{
		TokenId:    domain.TokenId(tokenId),
		Collection: collection,
		Name:       "Card " + tokenId,
		ImageUrl:   "https://img.example/" + tokenId + ".png",
		Rarity:     "Common",
		Status:     status,
	}
}

func TestOwnedCardsMergesStatuses(t *testing.T) {
	ctx := bCtx.Background()
	client := &mocks.Client{}
	client.On("GetOwnedCards", mock.Anything, owner, indexer.CardStatusMinted, 0).Return(&indexer.OwnedCardsResp{
		Cards: []indexer.OwnedCardResp{ownedCard("1", indexer.CardStatusMinted)},
	}, nil)
	client.On("GetOwnedCards", mock.Anything, owner, indexer.CardStatusListed, 0).Return(&indexer.OwnedCardsResp{
		Cards: []indexer.OwnedCardResp{ownedCard("2", indexer.CardStatusListed)},
	}, nil)

	cards, err := New(client).OwnedCards(ctx, owner)

	assert.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, domain.TokenId("1"), cards[0].TokenId)
	assert.Equal(t, "minted", cards[0].Status)
	assert.Equal(t, domain.TokenId("2"), cards[1].TokenId)
	assert.Equal(t, "listed", cards[1].Status)
}

func TestOwnedCardsWalksPages(t *testing.T) {
	ctx := bCtx.Background()
	client := &mocks.Client{}
	client.On("GetOwnedCards", mock.Anything, owner, indexer.CardStatusMinted, 0).Return(&indexer.OwnedCardsResp{
		Cards:   []indexer.OwnedCardResp{ownedCard("1", indexer.CardStatusMinted)},
		HasNext: true,
	}, nil)
	client.On("GetOwnedCards", mock.Anything, owner, indexer.CardStatusMinted, 1).Return(&indexer.OwnedCardsResp{
		Cards: []indexer.OwnedCardResp{ownedCard("2", indexer.CardStatusMinted)},
		Page:  1,
	}, nil)
	client.On("GetOwnedCards", mock.Anything, owner, indexer.CardStatusListed, 0).Return(&indexer.OwnedCardsResp{}, nil)

	cards, err := New(client).OwnedCards(ctx, owner)

	assert.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestOwnedCardsDedupes(t *testing.T) {
	ctx := bCtx.Background()
	client := &mocks.Client{}
	client.On("GetOwnedCards", mock.Anything, owner, indexer.CardStatusMinted, 0).Return(&indexer.OwnedCardsResp{
		Cards: []indexer.OwnedCardResp{ownedCard("1", indexer.CardStatusMinted)},
	}, nil)
	// the indexer may report the same card in both categories
	client.On("GetOwnedCards", mock.Anything, owner, indexer.CardStatusListed, 0).Return(&indexer.OwnedCardsResp{
		Cards: []indexer.OwnedCardResp{ownedCard("1", indexer.CardStatusListed)},
	}, nil)

	cards, err := New(client).OwnedCards(ctx, owner)

	assert.NoError(t, err)
	assert.Len(t, cards, 1)
	assert.Equal(t, "minted", cards[0].Status)
}

func TestOwnedCardsPropagatesIndexerFailure(t *testing.T) {
	ctx := bCtx.Background()
	client := &mocks.Client{}
	client.On("GetOwnedCards", mock.Anything, owner, indexer.CardStatusMinted, 0).
		Return(nil, &indexer.StatusError{StatusCode: 503})

	cards, err := New(client).OwnedCards(ctx, owner)

	assert.Error(t, err)
	assert.Nil(t, cards)
}
