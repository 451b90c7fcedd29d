package registry

import "errors"

var (
	ErrAssetNotFound       = errors.New("asset not found")
	ErrAssetExists         = errors.New("asset already exists")
	ErrNotAuthorized       = errors.New("caller not authorized to transfer")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidQuantity     = errors.New("invalid quantity")
)

// Registry is the custody capability the venue consumes for one asset kind.
// Transfers fail closed: on any error no units move.
type Registry interface {
	// BalanceOf reports how many units of assetId the holder owns
	// (0 or 1 for unique assets).
	BalanceOf(assetId uint64, holder string) uint64

	// Transfer moves quantity units of assetId between holders. The caller
	// must be the holder itself or an operator the holder approved.
	Transfer(caller, from, to string, assetId uint64, quantity uint64) error

	Approve(holder, operator string)
	Revoke(holder, operator string)
}

type approvals map[string]map[string]bool

func (a approvals) approve(holder, operator string) {
	if a[holder] == nil {
		a[holder] = make(map[string]bool)
	}
	a[holder][operator] = true
}

func (a approvals) revoke(holder, operator string) {
	if a[holder] != nil {
		delete(a[holder], operator)
	}
}

func (a approvals) authorized(caller, holder string) bool {
	if caller == holder {
		return true
	}

	return a[holder][caller]
}
