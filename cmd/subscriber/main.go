package main

import (
	"github.com/openloot/marketplace/internal/config"
	"github.com/openloot/marketplace/internal/config/di"
	"github.com/openloot/marketplace/internal/messenger"
	"go.uber.org/zap"
)

// Consumes the trade exchange and indexes every event, for deployments that
// run the audit indexer on a separate host from the venue daemon.
func main() {
	config.Init("subscriber")

	container, err := di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	container.GetElastic().InstallMappings()

	auditIndexer := container.GetAudit()
	elastic := container.GetElastic()

	consumer := messenger.NewTradeConsumer(func(msg interface{}) {
		auditIndexer.HandleTrade(msg)
		elastic.Persist()
	})

	zap.L().Info("Subscribing to trade events")

	if err := container.GetMessenger().ConsumeMessages(messenger.TradeEvents, consumer.HandleMessage); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to consume trade events")
	}
}
