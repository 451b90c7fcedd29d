package registry

import (
	"sync"
)

// AccessoryRegistry holds stackable assets: an asset id may have many
// holders, each with an independent quantity.
type AccessoryRegistry struct {
	mu        sync.RWMutex
	balances  map[uint64]map[string]uint64
	approvals approvals
}

func NewAccessoryRegistry() *AccessoryRegistry {
	return &AccessoryRegistry{
		balances:  make(map[uint64]map[string]uint64),
		approvals: make(approvals),
	}
}

func (r *AccessoryRegistry) Mint(owner string, assetId uint64, quantity uint64) error {
	if quantity == 0 {
		return ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.balances[assetId] == nil {
		r.balances[assetId] = make(map[string]uint64)
	}
	r.balances[assetId][owner] += quantity

	return nil
}

func (r *AccessoryRegistry) BalanceOf(assetId uint64, holder string) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.balances[assetId][holder]
}

func (r *AccessoryRegistry) Transfer(caller, from, to string, assetId uint64, quantity uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if quantity == 0 {
		return ErrInvalidQuantity
	}

	holders := r.balances[assetId]
	if holders == nil {
		return ErrAssetNotFound
	}
	if holders[from] < quantity {
		return ErrInsufficientBalance
	}
	if !r.approvals.authorized(caller, from) {
		return ErrNotAuthorized
	}

	holders[from] -= quantity
	holders[to] += quantity

	return nil
}

func (r *AccessoryRegistry) Approve(holder, operator string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.approvals.approve(holder, operator)
}

func (r *AccessoryRegistry) Revoke(holder, operator string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.approvals.revoke(holder, operator)
}
