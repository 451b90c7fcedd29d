package di

import (
	"github.com/openloot/marketplace/internal/api"
	"github.com/openloot/marketplace/internal/audit"
	"github.com/openloot/marketplace/internal/elastic_search"
	"github.com/openloot/marketplace/internal/funds"
	"github.com/openloot/marketplace/internal/market"
	"github.com/openloot/marketplace/internal/messenger"
	"github.com/openloot/marketplace/internal/registry"
	"github.com/openloot/marketplace/internal/store"
	"github.com/openloot/marketplace/internal/webhook"
	"github.com/sarulabs/di/v2"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetListings() store.ListingStore {
	return c.ctn.Get("listings").(store.ListingStore)
}

func (c *Container) GetRoyalties() store.RoyaltyTable {
	return c.ctn.Get("royalties").(store.RoyaltyTable)
}

func (c *Container) GetLedger() funds.Ledger {
	return c.ctn.Get("ledger").(funds.Ledger)
}

func (c *Container) GetAvatarRegistry() *registry.AvatarRegistry {
	return c.ctn.Get("registry.avatar").(*registry.AvatarRegistry)
}

func (c *Container) GetAccessoryRegistry() *registry.AccessoryRegistry {
	return c.ctn.Get("registry.accessory").(*registry.AccessoryRegistry)
}

func (c *Container) GetEngine() market.Engine {
	return c.ctn.Get("engine").(market.Engine)
}

func (c *Container) GetAudit() audit.Indexer {
	return c.ctn.Get("audit").(audit.Indexer)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetTradePublisher() messenger.TradePublisher {
	return c.ctn.Get("trade.publisher").(messenger.TradePublisher)
}

func (c *Container) GetWebhook() webhook.Notifier {
	return c.ctn.Get("webhook").(webhook.Notifier)
}

func (c *Container) GetApiServer() api.Server {
	return c.ctn.Get("api").(api.Server)
}
