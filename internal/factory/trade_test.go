package factory

import (
	"testing"

	"github.com/openloot/marketplace/internal/entity"
	"github.com/stretchr/testify/assert"
)

var listing = entity.Listing{
	Id:            1,
	Seller:        "seller",
	Creator:       "creator",
	AssetId:       7,
	AssetKind:     entity.AvatarAsset,
	Price:         100,
	Currency:      "native",
	Mode:          entity.AuctionSale,
	HighestBid:    150,
	HighestBidder: "alice",
}

func TestCreateListingAction(t *testing.T) {
	action := CreateListingAction(listing)

	assert.Equal(t, entity.ListingAction, action.Action)
	assert.Equal(t, uint64(1), action.ListingId)
	assert.Equal(t, uint64(100), action.Amount)
	assert.Empty(t, action.Buyer)
}

func TestCreateBidAction(t *testing.T) {
	action := CreateBidAction(listing, "carol", 200)

	assert.Equal(t, entity.BidAction, action.Action)
	assert.Equal(t, "carol", action.Buyer)
	assert.Equal(t, uint64(200), action.Amount)
}

func TestCreateSaleAction(t *testing.T) {
	action := CreateSaleAction(listing, "buyer", 100, 10)

	assert.Equal(t, entity.SaleAction, action.Action)
	assert.Equal(t, "buyer", action.Buyer)
	assert.Equal(t, uint64(100), action.Amount)
	assert.Equal(t, uint64(10), action.Royalty)
}

func TestCreateFinalizeAction(t *testing.T) {
	action := CreateFinalizeAction(listing, 15)

	assert.Equal(t, entity.FinalizeAction, action.Action)
	assert.Equal(t, "alice", action.Buyer)
	assert.Equal(t, uint64(150), action.Amount)
	assert.Equal(t, uint64(15), action.Royalty)
}

func TestActionSlugsDifferPerStep(t *testing.T) {
	// one listing produces distinct audit documents per lifecycle step
	slugs := map[string]bool{
		CreateListingAction(listing).Slug():         true,
		CreateBidAction(listing, "carol", 200).Slug(): true,
		CreateSaleAction(listing, "buyer", 100, 10).Slug(): true,
		CreateFinalizeAction(listing, 15).Slug():    true,
	}

	assert.Len(t, slugs, 4)
}
