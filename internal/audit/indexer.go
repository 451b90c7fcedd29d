package audit

import (
	"github.com/openloot/marketplace/internal/dev"
	"github.com/openloot/marketplace/internal/elastic_search"
	"github.com/openloot/marketplace/internal/entity"
	"go.uber.org/zap"
)

// Indexer turns committed marketplace events into the durable audit trail.
type Indexer interface {
	HandleTrade(msg interface{})
	HandleRoyalty(msg interface{})
	RecordError(component, name string, err error, extra map[string]interface{})
}

type indexer struct {
	elastic elastic_search.Index
}

func NewIndexer(elastic elastic_search.Index) Indexer {
	return indexer{elastic}
}

func (i indexer) HandleTrade(msg interface{}) {
	action, ok := msg.(entity.TradeAction)
	if !ok {
		zap.L().Warn("Audit: Unexpected trade payload")
		return
	}

	zap.L().With(
		zap.Uint64("listingId", action.ListingId),
		zap.String("action", string(action.Action)),
		zap.Uint64("amount", action.Amount),
	).Debug("Audit: Index trade action")

	i.elastic.AddIndexRequest(elastic_search.TradeActionIndex.Get(), action, requestAction(action.Action))
	i.elastic.BatchPersist()
}

func (i indexer) HandleRoyalty(msg interface{}) {
	entry, ok := msg.(entity.RoyaltyEntry)
	if !ok {
		zap.L().Warn("Audit: Unexpected royalty payload")
		return
	}

	zap.L().With(
		zap.Uint64("assetId", entry.AssetId),
		zap.String("assetKind", string(entry.AssetKind)),
		zap.Uint("percentage", entry.Percentage),
	).Debug("Audit: Index royalty entry")

	i.elastic.AddIndexRequest(elastic_search.RoyaltyIndex.Get(), entry, elastic_search.RoyaltyUpdate)
	i.elastic.BatchPersist()
}

func (i indexer) RecordError(component, name string, err error, extra map[string]interface{}) {
	i.elastic.AddIndexRequest(elastic_search.ErrorIndex.Get(), dev.NewError(component, name, err, extra), elastic_search.DevError)
	i.elastic.BatchPersist()
}

func requestAction(action entity.ActionType) elastic_search.RequestAction {
	switch action {
	case entity.SaleAction:
		return elastic_search.TradeSale
	case entity.BidAction:
		return elastic_search.TradeBid
	case entity.FinalizeAction:
		return elastic_search.TradeFinalize
	default:
		return elastic_search.TradeListing
	}
}
