package entity

import (
	"crypto/md5"
	"fmt"
)

type TradeAction struct {
	ListingId uint64     `json:"listingId"`
	AssetId   uint64     `json:"assetId"`
	AssetKind AssetKind  `json:"assetKind"`
	Action    ActionType `json:"action"`
	Seller    string     `json:"seller"`
	Creator   string     `json:"creator"`
	Buyer     string     `json:"buyer"`
	Amount    uint64     `json:"amount"`
	Royalty   uint64     `json:"royalty"`
	Currency  string     `json:"currency"`

	Percentage uint `json:"percentage"`
}

type ActionType string

const (
	ListingAction    ActionType = "listing"
	SaleAction       ActionType = "sale"
	BidAction        ActionType = "bid"
	FinalizeAction   ActionType = "finalize"
	RoyaltySetAction ActionType = "royalty"
)

func (t TradeAction) Slug() string {
	return CreateTradeActionSlug(t.ListingId, string(t.Action), t.Buyer, t.Amount)
}

func CreateTradeActionSlug(listingId uint64, action, actor string, amount uint64) string {
	data := []byte(fmt.Sprintf("trade-%d-%s-%s-%d", listingId, action, actor, amount))
	return fmt.Sprintf("%x", md5.Sum(data))
}
