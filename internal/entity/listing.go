package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

type AssetKind string

const (
	AvatarAsset    AssetKind = "avatar"
	AccessoryAsset AssetKind = "accessory"
)

type SaleMode string

const (
	FixedPriceSale SaleMode = "fixed"
	AuctionSale    SaleMode = "auction"
)

type ListingStatus string

const (
	ListingActive  ListingStatus = "active"
	ListingSettled ListingStatus = "settled"
)

type Listing struct {
	Id        uint64        `json:"id"`
	Seller    string        `json:"seller"`
	Creator   string        `json:"creator"`
	AssetId   uint64        `json:"assetId"`
	AssetKind AssetKind     `json:"assetKind"`
	Price     uint64        `json:"price"`
	Currency  string        `json:"currency"`
	Mode      SaleMode      `json:"mode"`
	Status    ListingStatus `json:"status"`

	HighestBid    uint64 `json:"highestBid"`
	HighestBidder string `json:"highestBidder"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.Id)
}

func CreateListingSlug(id uint64) string {
	return slug.Make(fmt.Sprintf("listing-%d", id))
}
