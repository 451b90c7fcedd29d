package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessoryMintAccumulates(t *testing.T) {
	r := NewAccessoryRegistry()

	require.NoError(t, r.Mint("alice", 7, 5))
	require.NoError(t, r.Mint("alice", 7, 3))

	assert.Equal(t, uint64(8), r.BalanceOf(7, "alice"))
}

func TestAccessoryMintZeroQuantity(t *testing.T) {
	r := NewAccessoryRegistry()

	err := r.Mint("alice", 7, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAccessoryTransferSplitsStack(t *testing.T) {
	r := NewAccessoryRegistry()
	require.NoError(t, r.Mint("alice", 7, 5))

	require.NoError(t, r.Transfer("alice", "alice", "bob", 7, 2))

	assert.Equal(t, uint64(3), r.BalanceOf(7, "alice"))
	assert.Equal(t, uint64(2), r.BalanceOf(7, "bob"))
}

func TestAccessoryTransferFailsClosed(t *testing.T) {
	r := NewAccessoryRegistry()
	require.NoError(t, r.Mint("alice", 7, 1))

	err := r.Transfer("alice", "alice", "bob", 7, 2)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// nothing moved
	assert.Equal(t, uint64(1), r.BalanceOf(7, "alice"))
	assert.Equal(t, uint64(0), r.BalanceOf(7, "bob"))
}

func TestAccessoryTransferUnknownAsset(t *testing.T) {
	r := NewAccessoryRegistry()

	err := r.Transfer("alice", "alice", "bob", 7, 1)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestAccessoryTransferRequiresApproval(t *testing.T) {
	r := NewAccessoryRegistry()
	require.NoError(t, r.Mint("alice", 7, 5))

	err := r.Transfer("operator", "alice", "bob", 7, 1)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	r.Approve("alice", "operator")
	require.NoError(t, r.Transfer("operator", "alice", "bob", 7, 1))
}
