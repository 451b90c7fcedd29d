package market

import (
	"sync"

	"github.com/openloot/marketplace/internal/entity"
	"github.com/openloot/marketplace/internal/event"
	"github.com/openloot/marketplace/internal/factory"
	"github.com/openloot/marketplace/internal/funds"
	"github.com/openloot/marketplace/internal/registry"
	"github.com/openloot/marketplace/internal/store"
	"go.uber.org/zap"
)

// Engine orchestrates the listing lifecycle: it pulls the asset into escrow
// at listing time, holds the highest bid, refunds displaced bidders and
// settles royalty-aware payouts. Every entry point is all-or-nothing: a
// rejected transfer leaves no state mutation behind.
type Engine interface {
	ListItem(seller string, assetId uint64, kind entity.AssetKind, price uint64, currency string, mode entity.SaleMode) (uint64, error)
	BuyItem(buyer string, listingId uint64, amount uint64) error
	PlaceBid(bidder string, listingId uint64, amount uint64) error
	FinalizeSale(caller string, listingId uint64) error
	SetRoyalty(caller string, kind entity.AssetKind, assetId uint64, percentage uint) error
}

type engine struct {
	// One coarse guard across all operations: a call runs to completion,
	// nested transfers included, before the next begins.
	mu sync.Mutex

	listings    store.ListingStore
	royalties   store.RoyaltyTable
	ledger      funds.Ledger
	avatars     registry.Registry
	accessories registry.Registry

	admin  string
	escrow string
}

func NewEngine(
	listings store.ListingStore,
	royalties store.RoyaltyTable,
	ledger funds.Ledger,
	avatars registry.Registry,
	accessories registry.Registry,
	admin string,
	escrow string,
) Engine {
	return &engine{
		listings:    listings,
		royalties:   royalties,
		ledger:      ledger,
		avatars:     avatars,
		accessories: accessories,
		admin:       admin,
		escrow:      escrow,
	}
}

func (e *engine) ListItem(seller string, assetId uint64, kind entity.AssetKind, price uint64, currency string, mode entity.SaleMode) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if price == 0 {
		return 0, ErrPriceInvalid
	}
	if mode != entity.FixedPriceSale && mode != entity.AuctionSale {
		return 0, ErrModeInvalid
	}

	reg, err := e.registryFor(kind)
	if err != nil {
		return 0, err
	}

	if reg.BalanceOf(assetId, seller) < 1 {
		return 0, ErrNotOwner
	}

	if err := reg.Transfer(e.escrow, seller, e.escrow, assetId, 1); err != nil {
		return 0, TransferRejected(err)
	}

	listing := entity.Listing{
		Seller:    seller,
		Creator:   seller,
		AssetId:   assetId,
		AssetKind: kind,
		Price:     price,
		Currency:  currency,
		Mode:      mode,
		Status:    entity.ListingActive,
	}
	listing.Id = e.listings.Create(listing)

	zap.L().With(
		zap.Uint64("listingId", listing.Id),
		zap.String("seller", seller),
		zap.Uint64("assetId", assetId),
		zap.String("assetKind", string(kind)),
		zap.Uint64("price", price),
		zap.String("mode", string(mode)),
	).Info("Marketplace listing")

	event.EmitEvent(event.ListingCreatedEvent, factory.CreateListingAction(listing))

	return listing.Id, nil
}

func (e *engine) BuyItem(buyer string, listingId uint64, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	listing, err := e.listings.Get(listingId)
	if err != nil {
		return ErrListingNotFound
	}
	if listing.Status != entity.ListingActive {
		return ErrListingInactive
	}
	if listing.Mode != entity.FixedPriceSale {
		return ErrWrongMode
	}
	if amount < listing.Price {
		return ErrIncorrectPayment
	}

	if err := e.ledger.Transfer(buyer, e.escrow, amount); err != nil {
		return TransferRejected(err)
	}

	royalty, err := e.settle(listing, buyer, amount)
	if err != nil {
		// return the attached funds; nothing has been recorded
		e.refund(listing.Id, buyer, amount)
		return err
	}

	zap.L().With(
		zap.Uint64("listingId", listing.Id),
		zap.String("from", listing.Seller),
		zap.String("to", buyer),
		zap.Uint64("cost", amount),
		zap.Uint64("royalty", royalty),
	).Info("Marketplace trade")

	event.EmitEvent(event.ItemSoldEvent, factory.CreateSaleAction(listing, buyer, amount, royalty))

	return nil
}

func (e *engine) PlaceBid(bidder string, listingId uint64, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	listing, err := e.listings.Get(listingId)
	if err != nil {
		return ErrListingNotFound
	}
	if listing.Status != entity.ListingActive {
		return ErrListingInactive
	}
	if listing.Mode != entity.AuctionSale {
		return ErrWrongMode
	}
	if amount <= listing.HighestBid {
		return ErrBidTooLow
	}

	if err := e.ledger.Transfer(bidder, e.escrow, amount); err != nil {
		return TransferRejected(err)
	}

	if listing.HighestBidder != "" {
		if err := e.ledger.Transfer(e.escrow, listing.HighestBidder, listing.HighestBid); err != nil {
			// refund refused: the new bid is not accepted, previous
			// high bid stays locked and recorded
			e.refund(listing.Id, bidder, amount)
			return TransferRejected(err)
		}
	}

	_ = e.listings.Mutate(listingId, func(current *entity.Listing) error {
		current.HighestBid = amount
		current.HighestBidder = bidder
		return nil
	})

	zap.L().With(
		zap.Uint64("listingId", listing.Id),
		zap.String("bidder", bidder),
		zap.Uint64("bid", amount),
		zap.String("outbid", listing.HighestBidder),
	).Info("Marketplace bid")

	event.EmitEvent(event.BidPlacedEvent, factory.CreateBidAction(listing, bidder, amount))

	return nil
}

func (e *engine) FinalizeSale(caller string, listingId uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	listing, err := e.listings.Get(listingId)
	if err != nil {
		return ErrListingNotFound
	}
	if listing.Status != entity.ListingActive {
		return ErrListingInactive
	}
	if listing.Mode != entity.AuctionSale {
		return ErrWrongMode
	}
	if listing.HighestBidder == "" {
		return ErrNoBids
	}
	if caller != listing.Seller && caller != listing.HighestBidder {
		return ErrUnauthorized
	}

	// the winning bid is already held in escrow
	royalty, err := e.settle(listing, listing.HighestBidder, listing.HighestBid)
	if err != nil {
		return err
	}

	zap.L().With(
		zap.Uint64("listingId", listing.Id),
		zap.String("from", listing.Seller),
		zap.String("to", listing.HighestBidder),
		zap.Uint64("cost", listing.HighestBid),
		zap.Uint64("royalty", royalty),
	).Info("Marketplace auction finalized")

	event.EmitEvent(event.SaleFinalizedEvent, factory.CreateFinalizeAction(listing, royalty))

	return nil
}

func (e *engine) SetRoyalty(caller string, kind entity.AssetKind, assetId uint64, percentage uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.admin {
		return ErrUnauthorized
	}
	if percentage > 100 {
		return ErrPercentageInvalid
	}
	if _, err := e.registryFor(kind); err != nil {
		return err
	}

	if err := e.royalties.Set(kind, assetId, percentage); err != nil {
		return ErrPercentageInvalid
	}

	zap.L().With(
		zap.Uint64("assetId", assetId),
		zap.String("assetKind", string(kind)),
		zap.Uint("percentage", percentage),
	).Info("Marketplace royalty set")

	event.EmitEvent(event.RoyaltySetEvent, entity.RoyaltyEntry{
		AssetId:    assetId,
		AssetKind:  kind,
		Percentage: percentage,
		UpdatedBy:  caller,
	})

	return nil
}

// settle distributes the proceeds held in escrow between creator and seller,
// releases the asset to the recipient and marks the listing settled. The
// royalty rate is read here, at settlement time, not at listing time. On any
// rejected transfer every prior transfer of this settlement is unwound and
// the listing stays active.
func (e *engine) settle(listing entity.Listing, recipient string, amount uint64) (uint64, error) {
	percentage := e.royalties.Get(listing.AssetKind, listing.AssetId)
	// split the multiplication so amounts near the uint64 ceiling cannot
	// overflow; equal to floor(amount * percentage / 100)
	royalty := amount/100*uint64(percentage) + amount%100*uint64(percentage)/100
	remainder := amount - royalty

	if royalty > 0 {
		if err := e.ledger.Transfer(e.escrow, listing.Creator, royalty); err != nil {
			return 0, TransferRejected(err)
		}
	}

	if err := e.ledger.Transfer(e.escrow, listing.Seller, remainder); err != nil {
		if royalty > 0 {
			e.clawback(listing.Id, listing.Creator, royalty)
		}
		return 0, TransferRejected(err)
	}

	reg, err := e.registryFor(listing.AssetKind)
	if err != nil {
		return 0, err
	}

	if err := reg.Transfer(e.escrow, e.escrow, recipient, listing.AssetId, 1); err != nil {
		e.clawback(listing.Id, listing.Seller, remainder)
		if royalty > 0 {
			e.clawback(listing.Id, listing.Creator, royalty)
		}
		return 0, TransferRejected(err)
	}

	if err := e.listings.Mutate(listing.Id, func(current *entity.Listing) error {
		if current.Status != entity.ListingActive {
			return ErrListingInactive
		}
		current.Status = entity.ListingSettled
		return nil
	}); err != nil {
		return 0, err
	}

	return royalty, nil
}

// refund returns escrowed funds to an account after a failed operation. A
// rejected refund leaves the funds in escrow; that case is logged so an
// operator can release them manually.
func (e *engine) refund(listingId uint64, account string, amount uint64) {
	if err := e.ledger.Transfer(e.escrow, account, amount); err != nil {
		zap.L().With(
			zap.Error(err),
			zap.Uint64("listingId", listingId),
			zap.String("account", account),
			zap.Uint64("amount", amount),
		).Error("Marketplace escrow refund failed, funds held in escrow")
	}
}

// clawback pulls an already-issued payout back into escrow while unwinding a
// failed settlement. A rejected clawback means the payout stands; logged so
// the imbalance is visible.
func (e *engine) clawback(listingId uint64, account string, amount uint64) {
	if err := e.ledger.Transfer(account, e.escrow, amount); err != nil {
		zap.L().With(
			zap.Error(err),
			zap.Uint64("listingId", listingId),
			zap.String("account", account),
			zap.Uint64("amount", amount),
		).Error("Marketplace settlement clawback failed")
	}
}

func (e *engine) registryFor(kind entity.AssetKind) (registry.Registry, error) {
	switch kind {
	case entity.AvatarAsset:
		return e.avatars, nil
	case entity.AccessoryAsset:
		return e.accessories, nil
	default:
		return nil, ErrAssetKindInvalid
	}
}
