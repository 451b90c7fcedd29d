package event

type Type string

const (
	ListingCreatedEvent Type = "ListingCreatedEvent"
	ItemSoldEvent       Type = "ItemSoldEvent"
	BidPlacedEvent      Type = "BidPlacedEvent"
	SaleFinalizedEvent  Type = "SaleFinalizedEvent"
	RoyaltySetEvent     Type = "RoyaltySetEvent"
)
