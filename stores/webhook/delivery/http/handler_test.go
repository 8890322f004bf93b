package http

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vibemarket/goapi/base/abi"
	bCtx "github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/domain"
	cardmocks "github.com/vibemarket/goapi/domain/card/mocks"
	"github.com/vibemarket/goapi/domain/listing"
	"github.com/vibemarket/goapi/middleware"
	"github.com/vibemarket/goapi/service/chain/contract"
	contractmocks "github.com/vibemarket/goapi/service/chain/contract/mocks"
	listingrepo "github.com/vibemarket/goapi/stores/listing/repository"
	listingusecase "github.com/vibemarket/goapi/stores/listing/usecase"
)

const (
	collection = "0xaaaa000000000000000000000000000000000001"
	seller     = "0xbbbb000000000000000000000000000000000002"
	erc20      = "0xcccc000000000000000000000000000000000003"
)

type webhookSuite struct {
	suite.Suite

	repo        listing.Repo
	marketplace *contractmocks.MarketplaceContract
	e           *echo.Echo
}

func TestWebhookSuite(t *testing.T) {
	suite.Run(t, new(webhookSuite))
}

func (s *webhookSuite) SetupTest() {
	s.repo = listingrepo.NewFileRepo(filepath.Join(s.T().TempDir(), "listings.json"))
	listingUC := listingusecase.New(&listingusecase.ListingUseCaseCfg{
		Repo:     s.repo,
		Resolver: &cardmocks.Resolver{},
		Erc721:   &contractmocks.Erc721Contract{},
		ChainId:  domain.ChainId(8453),
	})
	s.marketplace = &contractmocks.MarketplaceContract{}

	s.e = echo.New()
	s.e.Use(middleware.InitMiddleware().AddContext())
	New(s.e, listingUC, s.marketplace)
}

func (s *webhookSuite) post(logs ...string) (*httptest.ResponseRecorder, eventResponse) {
	body := fmt.Sprintf(`{"event": {"data": {"block": {"logs": [%s]}}}}`, strings.Join(logs, ","))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhook-events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	s.e.ServeHTTP(rec, req)

	res := eventResponse{}
	if rec.Code == http.StatusOK {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	}
	return rec, res
}

func topicAddress(addr string) string {
	return common.BytesToHash(common.HexToAddress(addr).Bytes()).Hex()
}

func topicUint(v int64) string {
	return common.BigToHash(big.NewInt(v)).Hex()
}

func createdLog(tokenId int64, priceWei *big.Int, isEth bool, dataWords int) string {
	data := make([]byte, 64)
	copy(data[:32], common.BigToHash(priceWei).Bytes())
	if isEth {
		data[63] = 1
	}
	return fmt.Sprintf(`{
		"topics": ["%s", "%s", "%s", "%s"],
		"data": "%s",
		"account": {"address": "%s"},
		"transaction": {"hash": "0xdead"}
	}`,
		abi.MarketplaceABI.Events["ListingCreated"].ID.Hex(),
		topicAddress(collection),
		topicUint(tokenId),
		topicAddress(seller),
		"0x"+common.Bytes2Hex(data[:dataWords*32]),
		collection,
	)
}

func delistedLog(tokenId int64) string {
	return fmt.Sprintf(`{
		"topics": ["%s", "%s", "%s", "%s"],
		"account": {"address": "%s"},
		"transaction": {"hash": "0xdead"}
	}`,
		abi.MarketplaceABI.Events["ListingDelisted"].ID.Hex(),
		topicAddress(collection),
		topicUint(tokenId),
		topicAddress(seller),
		collection,
	)
}

func storeKey(tokenId int64) string {
	return listing.MakeKey(
		domain.TokenId(fmt.Sprint(tokenId)),
		domain.Address(collection),
		domain.Address(seller),
	)
}

func (s *webhookSuite) stored() map[string]listing.Listing {
	stored, err := s.repo.Load(bCtx.Background())
	s.Require().NoError(err)
	return stored
}

func (s *webhookSuite) TestIngestListingCreated() {
	price := big.NewInt(1000000000000000000)
	rec, res := s.post(createdLog(42, price, true, 2))

	s.Equal(http.StatusOK, rec.Code)
	s.True(res.Success)
	s.Equal(1, res.Changes)
	s.Equal(1, res.ActiveCount)

	stored := s.stored()
	s.Require().Contains(stored, storeKey(42))
	l := stored[storeKey(42)]
	s.Equal("1000000000000000000", l.Price)
	s.True(l.IsEth)
	s.Equal(domain.EmptyAddress, l.Currency)
}

func (s *webhookSuite) TestIngestTruncatedDataStillDecodes() {
	// isEth=false makes the second data word all zeros and some providers
	// drop it; the currency is then resolved from the contract
	s.marketplace.On("GetListingDetails", mock.Anything, mock.Anything, domain.TokenId("42"), mock.Anything).
		Return(&contract.ListingDetails{
			Price:    big.NewInt(5),
			Currency: domain.Address(erc20),
			IsEth:    false,
		}, nil)

	rec, res := s.post(createdLog(42, big.NewInt(5), false, 1))

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, res.Changes)

	stored := s.stored()
	s.Require().Contains(stored, storeKey(42))
	s.Equal(domain.Address(erc20), stored[storeKey(42)].Currency)
	s.False(stored[storeKey(42)].IsEth)
}

func (s *webhookSuite) TestIngestListingDelisted() {
	_, _ = s.post(createdLog(42, big.NewInt(1), true, 2))

	rec, res := s.post(delistedLog(42))

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, res.Changes)
	s.Equal(0, res.ActiveCount)
	s.Empty(s.stored())
}

func (s *webhookSuite) TestIngestDelistUnknownKeyIsNoop() {
	rec, res := s.post(delistedLog(999))

	s.Equal(http.StatusOK, rec.Code)
	s.True(res.Success)
	s.Equal(0, res.Changes)
}

func (s *webhookSuite) TestIngestSkipsUnknownSignature() {
	unknown := fmt.Sprintf(`{
		"topics": ["0x%064x"],
		"account": {"address": "%s"},
		"transaction": {"hash": "0xdead"}
	}`, 1, collection)

	rec, res := s.post(unknown, createdLog(42, big.NewInt(1), true, 2))

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, res.Changes)
	s.Contains(s.stored(), storeKey(42))
}

func (s *webhookSuite) TestIngestSkipsMalformedLog() {
	noTopics := fmt.Sprintf(`{"topics": [], "account": {"address": "%s"}, "transaction": {"hash": "0xdead"}}`, collection)

	rec, res := s.post(noTopics, createdLog(42, big.NewInt(1), true, 2))

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, res.Changes)
}

func (s *webhookSuite) TestIngestEmptyPayload() {
	rec, res := s.post()

	s.Equal(http.StatusOK, rec.Code)
	s.True(res.Success)
	s.Equal(0, res.Changes)
}
