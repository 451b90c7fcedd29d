package messenger

import (
	"encoding/json"

	"go.uber.org/zap"
)

// TradePublisher fans committed marketplace events out to the trade exchange
// for external indexers.
type TradePublisher struct {
	messenger MessageService
}

func NewTradePublisher(messenger MessageService) TradePublisher {
	return TradePublisher{messenger}
}

func (p TradePublisher) HandleEvent(msg interface{}) {
	body, err := json.Marshal(msg)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("[Queue] Failed to marshal trade event")
		return
	}

	if err := p.messenger.SendMessage(TradeEvents, body, false); err != nil {
		zap.L().With(zap.Error(err)).Error("[Queue] Failed to publish trade event")
	}
}
