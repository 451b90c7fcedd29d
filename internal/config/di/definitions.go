package di

import (
	"github.com/hashicorp/go-retryablehttp"
	"github.com/openloot/marketplace/internal/api"
	"github.com/openloot/marketplace/internal/audit"
	"github.com/openloot/marketplace/internal/config"
	"github.com/openloot/marketplace/internal/elastic_search"
	"github.com/openloot/marketplace/internal/funds"
	"github.com/openloot/marketplace/internal/market"
	"github.com/openloot/marketplace/internal/messenger"
	"github.com/openloot/marketplace/internal/registry"
	"github.com/openloot/marketplace/internal/store"
	"github.com/openloot/marketplace/internal/webhook"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "listings",
		Build: func(ctn di.Container) (interface{}, error) {
			return store.NewListingStore(), nil
		},
	},
	{
		Name: "royalties",
		Build: func(ctn di.Container) (interface{}, error) {
			return store.NewRoyaltyTable(), nil
		},
	},
	{
		Name: "ledger",
		Build: func(ctn di.Container) (interface{}, error) {
			return funds.NewLedger(), nil
		},
	},
	{
		Name: "registry.avatar",
		Build: func(ctn di.Container) (interface{}, error) {
			return registry.NewAvatarRegistry(), nil
		},
	},
	{
		Name: "registry.accessory",
		Build: func(ctn di.Container) (interface{}, error) {
			return registry.NewAccessoryRegistry(), nil
		},
	},
	{
		Name: "engine",
		Build: func(ctn di.Container) (interface{}, error) {
			return market.NewEngine(
				ctn.Get("listings").(store.ListingStore),
				ctn.Get("royalties").(store.RoyaltyTable),
				ctn.Get("ledger").(funds.Ledger),
				ctn.Get("registry.avatar").(*registry.AvatarRegistry),
				ctn.Get("registry.accessory").(*registry.AccessoryRegistry),
				config.Get().AdminAddress,
				config.Get().EscrowAccount,
			), nil
		},
	},
	{
		Name: "audit",
		Build: func(ctn di.Container) (interface{}, error) {
			return audit.NewIndexer(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(config.Get().AmqpUri), nil
		},
	},
	{
		Name: "trade.publisher",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewTradePublisher(ctn.Get("messenger").(messenger.MessageService)), nil
		},
	},
	{
		Name: "webhook",
		Build: func(ctn di.Container) (interface{}, error) {
			return webhook.NewNotifier(config.Get().WebhookUrls, retryablehttp.NewClient()), nil
		},
	},
	{
		Name: "api",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("engine").(market.Engine),
				ctn.Get("listings").(store.ListingStore),
				ctn.Get("royalties").(store.RoyaltyTable),
				ctn.Get("ledger").(funds.Ledger),
				ctn.Get("registry.avatar").(*registry.AvatarRegistry),
				ctn.Get("registry.accessory").(*registry.AccessoryRegistry),
				ctn.Get("audit").(audit.Indexer),
			), nil
		},
	},
}
