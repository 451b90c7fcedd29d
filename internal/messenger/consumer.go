package messenger

import (
	"encoding/json"

	"github.com/openloot/marketplace/internal/entity"
	"go.uber.org/zap"
)

// TradeConsumer decodes published trade events back into trade actions and
// hands them to a handler, for deployments that run the audit indexer
// outside the venue daemon.
type TradeConsumer struct {
	handler func(msg interface{})
}

func NewTradeConsumer(handler func(msg interface{})) TradeConsumer {
	return TradeConsumer{handler}
}

func (c TradeConsumer) HandleMessage(msg string) {
	var action entity.TradeAction
	if err := json.Unmarshal([]byte(msg), &action); err != nil {
		zap.L().With(zap.Error(err)).Error("[Queue] Failed to read trade message")
		return
	}

	// royalty entries share the exchange but carry no action
	if action.Action == "" {
		zap.L().Debug("[Queue] Skipping non-trade message")
		return
	}

	zap.L().With(
		zap.Uint64("listingId", action.ListingId),
		zap.String("action", string(action.Action)),
		zap.Uint64("amount", action.Amount),
	).Info("[Queue] Trade message received")

	c.handler(action)
}
