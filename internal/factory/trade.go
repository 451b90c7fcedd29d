package factory

import (
	"github.com/openloot/marketplace/internal/entity"
)

func CreateListingAction(listing entity.Listing) entity.TradeAction {
	return entity.TradeAction{
		ListingId: listing.Id,
		AssetId:   listing.AssetId,
		AssetKind: listing.AssetKind,
		Action:    entity.ListingAction,
		Seller:    listing.Seller,
		Creator:   listing.Creator,
		Amount:    listing.Price,
		Currency:  listing.Currency,
	}
}

func CreateBidAction(listing entity.Listing, bidder string, amount uint64) entity.TradeAction {
	return entity.TradeAction{
		ListingId: listing.Id,
		AssetId:   listing.AssetId,
		AssetKind: listing.AssetKind,
		Action:    entity.BidAction,
		Seller:    listing.Seller,
		Creator:   listing.Creator,
		Buyer:     bidder,
		Amount:    amount,
		Currency:  listing.Currency,
	}
}

func CreateSaleAction(listing entity.Listing, buyer string, amount, royalty uint64) entity.TradeAction {
	return entity.TradeAction{
		ListingId: listing.Id,
		AssetId:   listing.AssetId,
		AssetKind: listing.AssetKind,
		Action:    entity.SaleAction,
		Seller:    listing.Seller,
		Creator:   listing.Creator,
		Buyer:     buyer,
		Amount:    amount,
		Royalty:   royalty,
		Currency:  listing.Currency,
	}
}

func CreateFinalizeAction(listing entity.Listing, royalty uint64) entity.TradeAction {
	return entity.TradeAction{
		ListingId: listing.Id,
		AssetId:   listing.AssetId,
		AssetKind: listing.AssetKind,
		Action:    entity.FinalizeAction,
		Seller:    listing.Seller,
		Creator:   listing.Creator,
		Buyer:     listing.HighestBidder,
		Amount:    listing.HighestBid,
		Royalty:   royalty,
		Currency:  listing.Currency,
	}
}
