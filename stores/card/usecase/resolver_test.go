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
	testCollection = domain.Address("0xaaaa000000000000000000000000000000000001")
	testTokenId    = domain.TokenId("42")
)

func TestResolveSuccess(t *testing.T) {
	ctx := bCtx.Background()
	client := &mocks.Client{}
	client.On("GetCardMetadata", mock.Anything, testCollection, testTokenId).Return(&indexer.CardMetadataResp{
		ImageUrl: "https://img.example/42.png",
		Name:     "Golden Dragon #42",
		Rarity:   "LEGENDARY",
		Wear:     "Mint",
		FoilType: "Prism",
		BoosterToken: indexer.BoosterTokenResp{
			Address: domain.Address("0xCCCC000000000000000000000000000000000003"),
			Symbol:  "VIBE",
		},
		PricePerPack: "$1,234.56",
	}, nil)

	got := New(client).Resolve(ctx, testTokenId, testCollection)

	assert.Equal(t, "Golden Dragon", got.Name)
	assert.Equal(t, "Legendary", got.Rarity)
	assert.Equal(t, "Mint", got.Wear)
	assert.Equal(t, "Prism", got.Foil)
	assert.Equal(t, "https://img.example/42.png", got.Image)
	assert.Equal(t, domain.Address("0xcccc000000000000000000000000000000000003"), got.TokenAddress)
	assert.Equal(t, "VIBE", got.TokenSymbol)
	assert.Equal(t, 1234.56, got.PricePerPack)
	assert.Empty(t, got.Error)
}

func TestResolveInvalidTokenIdSkipsFetch(t *testing.T) {
	ctx := bCtx.Background()
	client := &mocks.Client{}

	got := New(client).Resolve(ctx, domain.TokenId("not-a-number"), testCollection)

	assert.Equal(t, "Unknown Card", got.Name)
	assert.Equal(t, "Unknown", got.Rarity)
	assert.Equal(t, "Invalid tokenId", got.Error)
	client.AssertNotCalled(t, "GetCardMetadata", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveZeroTokenIdSkipsFetch(t *testing.T) {
	ctx := bCtx.Background()
	client := &mocks.Client{}

	got := New(client).Resolve(ctx, domain.TokenId("0"), testCollection)

	assert.Equal(t, "Unknown Card", got.Name)
	assert.Equal(t, "Invalid tokenId", got.Error)
	client.AssertNotCalled(t, "GetCardMetadata", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveUpstreamFailure(t *testing.T) {
	ctx := bCtx.Background()
	client := &mocks.Client{}
	client.On("GetCardMetadata", mock.Anything, testCollection, testTokenId).
		Return(nil, &indexer.StatusError{StatusCode: 502})

	got := New(client).Resolve(ctx, testTokenId, testCollection)

	assert.Equal(t, "Unknown Card", got.Name)
	assert.Equal(t, domain.EmptyAddress, got.TokenAddress)
	assert.Equal(t, "HTTP 502", got.Error)
}

func Test_stripTrailingNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Golden Dragon #42", "Golden Dragon"},
		{"Golden Dragon", "Golden Dragon"},
		{"Card #1 #2", "Card #1"},
		{"#7", "#7"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripTrailingNumber(tt.in))
	}
}

func Test_titleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LEGENDARY", "Legendary"},
		{"common", "Common"},
		{"rARE", "Rare"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, titleCase(tt.in))
	}
}

func Test_parseUsdPrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$0.07", 0.07},
		{"$1,234.56", 1234.56},
		{"12", 12},
		{" $3.50 ", 3.5},
		{"", 0},
		{"free", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseUsdPrice(tt.in))
	}
}
