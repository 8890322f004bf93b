package usecase

import (
	"fmt"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/domain/card"
	cardmocks "github.com/vibemarket/goapi/domain/card/mocks"
	"github.com/vibemarket/goapi/domain/listing"
	listingmocks "github.com/vibemarket/goapi/domain/listing/mocks"
	contractmocks "github.com/vibemarket/goapi/service/chain/contract/mocks"
	"github.com/vibemarket/goapi/stores/listing/repository"
)

const testChainId = domain.ChainId(8453)

type listingSuite struct {
	suite.Suite

	repo     listing.Repo
	resolver *cardmocks.Resolver
	erc721   *contractmocks.Erc721Contract
	im       listing.UseCase
}

func TestListingSuite(t *testing.T) {
	suite.Run(t, new(listingSuite))
}

func (s *listingSuite) SetupTest() {
	s.repo = repository.NewFileRepo(filepath.Join(s.T().TempDir(), "listings.json"))
	s.resolver = &cardmocks.Resolver{}
	s.erc721 = &contractmocks.Erc721Contract{}
	s.im = New(&ListingUseCaseCfg{
		Repo:     s.repo,
		Resolver: s.resolver,
		Erc721:   s.erc721,
		ChainId:  testChainId,
	})
}

const (
	collection = "0xaaaa000000000000000000000000000000000001"
	seller     = "0xbbbb000000000000000000000000000000000002"
	stranger   = "0xcccc000000000000000000000000000000000003"
)

func makeListing(tokenId string, timestamp int64) listing.Listing {
	l := listing.Listing{
		TokenId:    domain.TokenId(tokenId),
		Collection: domain.Address(collection),
		Seller:     domain.Address(seller),
		Price:      "1000000000000000000",
		IsEth:      true,
		Timestamp:  timestamp,
	}
	l.Normalize()
	return l
}

func (s *listingSuite) stubOwnership(owner string) {
	s.erc721.On("OwnerOf", mock.Anything, int32(testChainId), collection, mock.Anything).Return(owner, nil)
}

func (s *listingSuite) stubMetadata() {
	s.resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(&card.Metadata{Name: "Card"})
}

func (s *listingSuite) TestLatestEmptyStore() {
	ctx := bCtx.Background()
	_, err := s.im.Latest(ctx)
	s.Equal(domain.ErrNoActiveListings, err)
}

func (s *listingSuite) TestLatestPicksNewest() {
	ctx := bCtx.Background()
	s.stubMetadata()
	s.NoError(s.im.Add(ctx, makeListing("1", 100)))
	s.NoError(s.im.Add(ctx, makeListing("2", 300)))
	s.NoError(s.im.Add(ctx, makeListing("3", 200)))

	latest, err := s.im.Latest(ctx)
	s.NoError(err)
	s.Equal(domain.TokenId("2"), latest.TokenId)
	s.NotNil(latest.Metadata)
}

func (s *listingSuite) TestApplyAddThenRemove() {
	ctx := bCtx.Background()
	l := makeListing("1", 100)

	count, err := s.im.Apply(ctx, listing.ActionAdd, []listing.Item{{Listing: l}}, domain.Address(seller))
	s.NoError(err)
	s.Equal(1, count)

	count, err = s.im.Apply(ctx, listing.ActionRemove, []listing.Item{{Listing: l}}, domain.Address(seller))
	s.NoError(err)
	s.Equal(0, count)

	stored, err := s.repo.Load(ctx)
	s.NoError(err)
	s.Empty(stored)
}

func (s *listingSuite) TestApplyInvalidAction() {
	ctx := bCtx.Background()
	_, err := s.im.Apply(ctx, listing.Action("upsert"), nil, domain.Address(seller))
	s.Equal(domain.ErrInvalidAction, err)
}

func (s *listingSuite) TestApplySkipsSellerMismatch() {
	ctx := bCtx.Background()
	mine := makeListing("1", 100)
	theirs := makeListing("2", 100)
	theirs.Seller = domain.Address(stranger)
	theirs.Normalize()

	count, err := s.im.Apply(ctx, listing.ActionAdd, []listing.Item{
		{Listing: mine},
		{Listing: theirs},
	}, domain.Address(seller))
	s.NoError(err)
	s.Equal(1, count)

	stored, err := s.repo.Load(ctx)
	s.NoError(err)
	s.Contains(stored, mine.Key)
	s.NotContains(stored, theirs.Key)
}

func (s *listingSuite) TestApplyRemoveIgnoresClientKey() {
	ctx := bCtx.Background()
	l := makeListing("1", 100)
	s.NoError(s.im.Add(ctx, l))

	// the identifying fields win over a bogus client-supplied key
	count, err := s.im.Apply(ctx, listing.ActionRemove, []listing.Item{
		{Key: "spoofed", Listing: l},
	}, domain.Address(seller))
	s.NoError(err)
	s.Equal(0, count)
}

func (s *listingSuite) TestApplyRawCountsChanges() {
	ctx := bCtx.Background()
	a := makeListing("1", 100)
	b := makeListing("2", 200)

	changes, active, err := s.im.ApplyRaw(ctx, []listing.Listing{a, b}, []string{"not-present"})
	s.NoError(err)
	s.Equal(2, changes)
	s.Equal(2, active)

	changes, active, err = s.im.ApplyRaw(ctx, nil, []string{a.Key})
	s.NoError(err)
	s.Equal(1, changes)
	s.Equal(1, active)
}

func (s *listingSuite) TestRemoveReportsPresence() {
	ctx := bCtx.Background()
	l := makeListing("1", 100)
	s.NoError(s.im.Add(ctx, l))

	removed, err := s.im.Remove(ctx, l.Key)
	s.NoError(err)
	s.True(removed)

	removed, err = s.im.Remove(ctx, l.Key)
	s.NoError(err)
	s.False(removed)
}

func (s *listingSuite) TestAllSortedAndPaged() {
	ctx := bCtx.Background()
	s.stubMetadata()
	s.stubOwnership(seller)
	for i := 0; i < 5; i++ {
		s.NoError(s.im.Add(ctx, makeListing(fmt.Sprint(i), int64(100+i))))
	}

	page, total, err := s.im.All(ctx, 2, 1)
	s.NoError(err)
	s.Equal(5, total)
	s.Require().Len(page, 2)
	// timestamp descending, offset 1 skips the newest
	s.Equal(domain.TokenId("3"), page[0].TokenId)
	s.Equal(domain.TokenId("2"), page[1].TokenId)
}

func (s *listingSuite) TestAllOffsetPastEnd() {
	ctx := bCtx.Background()
	s.NoError(s.im.Add(ctx, makeListing("1", 100)))

	page, total, err := s.im.All(ctx, 10, 10)
	s.NoError(err)
	s.Equal(1, total)
	s.Empty(page)
}

func (s *listingSuite) TestAllExcludesTransferredListings() {
	ctx := bCtx.Background()
	s.stubMetadata()
	held := makeListing("1", 100)
	moved := makeListing("2", 200)
	s.NoError(s.im.Add(ctx, held))
	s.NoError(s.im.Add(ctx, moved))

	s.erc721.On("OwnerOf", mock.Anything, int32(testChainId), collection, big.NewInt(1)).Return(seller, nil)
	s.erc721.On("OwnerOf", mock.Anything, int32(testChainId), collection, big.NewInt(2)).Return(stranger, nil)

	page, total, err := s.im.All(ctx, 10, 0)
	s.NoError(err)
	s.Equal(2, total)
	s.Require().Len(page, 1)
	s.Equal(held.Key, page[0].Key)

	// the transferred listing is swept off the request path
	s.Eventually(func() bool {
		stored, err := s.repo.Load(bCtx.Background())
		if err != nil {
			return false
		}
		_, ok := stored[moved.Key]
		return !ok
	}, 3*time.Second, 50*time.Millisecond)
}

func (s *listingSuite) TestAllKeepsListingOnOwnerReadFailure() {
	ctx := bCtx.Background()
	s.stubMetadata()
	l := makeListing("1", 100)
	s.NoError(s.im.Add(ctx, l))

	s.erc721.On("OwnerOf", mock.Anything, int32(testChainId), collection, mock.Anything).
		Return("", fmt.Errorf("rpc timeout"))

	page, total, err := s.im.All(ctx, 10, 0)
	s.NoError(err)
	s.Equal(1, total)
	s.Len(page, 1)
}

func (s *listingSuite) TestBySeller() {
	ctx := bCtx.Background()
	mine := makeListing("1", 100)
	theirs := makeListing("2", 100)
	theirs.Seller = domain.Address(stranger)
	theirs.Normalize()
	s.NoError(s.im.Add(ctx, mine))
	s.NoError(s.im.Add(ctx, theirs))

	listings, err := s.im.BySeller(ctx, domain.Address(seller))
	s.NoError(err)
	s.Require().Len(listings, 1)
	s.Equal(mine.Key, listings[0].Key)
}

func (s *listingSuite) newMockRepoUseCase(repo listing.Repo) listing.UseCase {
	return New(&ListingUseCaseCfg{
		Repo:     repo,
		Resolver: s.resolver,
		Erc721:   s.erc721,
		ChainId:  testChainId,
	})
}

func (s *listingSuite) TestSingleAddUsesUpsert() {
	ctx := bCtx.Background()
	repo := &listingmocks.Repo{}
	l := makeListing("1", 100)
	repo.On("Load", mock.Anything).Return(map[string]listing.Listing{}, nil)
	repo.On("Upsert", mock.Anything, l).Return(nil)

	s.NoError(s.newMockRepoUseCase(repo).Add(ctx, l))

	repo.AssertNotCalled(s.T(), "SaveAll", mock.Anything, mock.Anything)
	repo.AssertExpectations(s.T())
}

func (s *listingSuite) TestSingleRemoveUsesRemove() {
	ctx := bCtx.Background()
	repo := &listingmocks.Repo{}
	l := makeListing("1", 100)
	repo.On("Load", mock.Anything).Return(map[string]listing.Listing{l.Key: l}, nil)
	repo.On("Remove", mock.Anything, l.Key).Return(nil)

	removed, err := s.newMockRepoUseCase(repo).Remove(ctx, l.Key)

	s.NoError(err)
	s.True(removed)
	repo.AssertNotCalled(s.T(), "SaveAll", mock.Anything, mock.Anything)
	repo.AssertExpectations(s.T())
}

func (s *listingSuite) TestRemoveAbsentKeySkipsPersist() {
	ctx := bCtx.Background()
	repo := &listingmocks.Repo{}
	repo.On("Load", mock.Anything).Return(map[string]listing.Listing{}, nil)

	removed, err := s.newMockRepoUseCase(repo).Remove(ctx, "nope")

	s.NoError(err)
	s.False(removed)
	repo.AssertNotCalled(s.T(), "Remove", mock.Anything, mock.Anything)
	repo.AssertNotCalled(s.T(), "SaveAll", mock.Anything, mock.Anything)
}

func (s *listingSuite) TestBatchMutationRewritesSnapshot() {
	ctx := bCtx.Background()
	repo := &listingmocks.Repo{}
	repo.On("Load", mock.Anything).Return(map[string]listing.Listing{}, nil)
	repo.On("SaveAll", mock.Anything, mock.Anything).Return(nil)

	changes, active, err := s.newMockRepoUseCase(repo).ApplyRaw(ctx, []listing.Listing{
		makeListing("1", 100),
		makeListing("2", 200),
	}, nil)

	s.NoError(err)
	s.Equal(2, changes)
	s.Equal(2, active)
	repo.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
	repo.AssertExpectations(s.T())
}
