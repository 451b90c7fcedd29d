package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/openloot/marketplace/internal/config"
	"github.com/openloot/marketplace/internal/config/di"
	"github.com/openloot/marketplace/internal/event"
	"github.com/openloot/marketplace/internal/messenger"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init("marketd")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	container.GetElastic().InstallMappings()

	registerListeners()

	go health()
	go persistLoop()

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Marketplace started")

	if err := http.ListenAndServe(":"+config.Get().ApiPort, container.GetApiServer().Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start marketplace API")
	}
}

func registerListeners() {
	auditIndexer := container.GetAudit()

	tradeEvents := []event.Type{
		event.ListingCreatedEvent,
		event.ItemSoldEvent,
		event.BidPlacedEvent,
		event.SaleFinalizedEvent,
	}

	for _, eventType := range tradeEvents {
		event.AddEventListener(eventType, auditIndexer.HandleTrade)
	}
	event.AddEventListener(event.RoyaltySetEvent, auditIndexer.HandleRoyalty)

	if config.Get().AmqpUri != "" {
		publisher := container.GetTradePublisher()
		for _, eventType := range tradeEvents {
			event.AddEventListener(eventType, publisher.HandleEvent)
		}
		event.AddEventListener(event.RoyaltySetEvent, publisher.HandleEvent)
	}

	if len(config.Get().WebhookUrls) != 0 {
		notifier := container.GetWebhook()
		for _, eventType := range tradeEvents {
			event.AddEventListener(eventType, notifier.HandleEvent)
		}
		event.AddEventListener(event.RoyaltySetEvent, notifier.HandleEvent)
	}
}

func persistLoop() {
	interval := time.Duration(config.Get().PersistInterval) * time.Second
	for {
		time.Sleep(interval)
		container.GetElastic().Persist()
	}
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, healthRouter()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health server")
	}
}

func healthRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", handleHealth).Methods("GET")

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{"status": "OK"}

	if config.Get().AmqpUri != "" {
		if size, err := container.GetMessenger().GetQueueSize(messenger.TradeEvents); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to get trade queue size")
			status["tradeQueue"] = "unavailable"
		} else {
			status["tradeQueue"] = *size
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(status)
}
