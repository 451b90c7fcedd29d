package store

import (
	"errors"
	"sync"

	"github.com/openloot/marketplace/internal/entity"
)

var (
	ErrPercentageOutOfRange = errors.New("royalty percentage out of range")
)

// RoyaltyTable maps an asset to the creator-royalty percentage applied at
// settlement time. The two registries number assets independently, so
// entries are keyed per asset kind.
type RoyaltyTable interface {
	Set(kind entity.AssetKind, assetId uint64, percentage uint) error
	Get(kind entity.AssetKind, assetId uint64) uint
}

type royaltyKey struct {
	kind    entity.AssetKind
	assetId uint64
}

type royaltyTable struct {
	mu      sync.RWMutex
	entries map[royaltyKey]uint
}

func NewRoyaltyTable() RoyaltyTable {
	return &royaltyTable{entries: make(map[royaltyKey]uint)}
}

func (t *royaltyTable) Set(kind entity.AssetKind, assetId uint64, percentage uint) error {
	if percentage > 100 {
		return ErrPercentageOutOfRange
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[royaltyKey{kind, assetId}] = percentage

	return nil
}

func (t *royaltyTable) Get(kind entity.AssetKind, assetId uint64) uint {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.entries[royaltyKey{kind, assetId}]
}
