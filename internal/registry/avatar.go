package registry

import (
	"sync"
)

// AvatarRegistry holds unique assets: each asset id has exactly one owner.
type AvatarRegistry struct {
	mu        sync.RWMutex
	owners    map[uint64]string
	approvals approvals
}

func NewAvatarRegistry() *AvatarRegistry {
	return &AvatarRegistry{
		owners:    make(map[uint64]string),
		approvals: make(approvals),
	}
}

func (r *AvatarRegistry) Mint(owner string, assetId uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.owners[assetId]; exists {
		return ErrAssetExists
	}
	r.owners[assetId] = owner

	return nil
}

func (r *AvatarRegistry) OwnerOf(assetId uint64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, exists := r.owners[assetId]
	if !exists {
		return "", ErrAssetNotFound
	}

	return owner, nil
}

func (r *AvatarRegistry) BalanceOf(assetId uint64, holder string) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.owners[assetId] == holder {
		return 1
	}

	return 0
}

func (r *AvatarRegistry) Transfer(caller, from, to string, assetId uint64, quantity uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if quantity != 1 {
		return ErrInvalidQuantity
	}

	owner, exists := r.owners[assetId]
	if !exists {
		return ErrAssetNotFound
	}
	if owner != from {
		return ErrInsufficientBalance
	}
	if !r.approvals.authorized(caller, from) {
		return ErrNotAuthorized
	}

	r.owners[assetId] = to

	return nil
}

func (r *AvatarRegistry) Approve(holder, operator string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.approvals.approve(holder, operator)
}

func (r *AvatarRegistry) Revoke(holder, operator string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.approvals.revoke(holder, operator)
}
