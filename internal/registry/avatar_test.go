package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvatarMintAssignsOwner(t *testing.T) {
	r := NewAvatarRegistry()

	require.NoError(t, r.Mint("alice", 1))

	owner, err := r.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)
	assert.Equal(t, uint64(1), r.BalanceOf(1, "alice"))
	assert.Equal(t, uint64(0), r.BalanceOf(1, "bob"))
}

func TestAvatarMintDuplicateId(t *testing.T) {
	r := NewAvatarRegistry()
	require.NoError(t, r.Mint("alice", 1))

	err := r.Mint("bob", 1)
	assert.ErrorIs(t, err, ErrAssetExists)
}

func TestAvatarOwnerOfUnknownAsset(t *testing.T) {
	r := NewAvatarRegistry()

	_, err := r.OwnerOf(1)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestAvatarTransferByOwner(t *testing.T) {
	r := NewAvatarRegistry()
	require.NoError(t, r.Mint("alice", 1))

	require.NoError(t, r.Transfer("alice", "alice", "bob", 1, 1))

	assert.Equal(t, uint64(1), r.BalanceOf(1, "bob"))
	assert.Equal(t, uint64(0), r.BalanceOf(1, "alice"))
}

func TestAvatarTransferQuantityMustBeOne(t *testing.T) {
	r := NewAvatarRegistry()
	require.NoError(t, r.Mint("alice", 1))

	err := r.Transfer("alice", "alice", "bob", 1, 2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, uint64(1), r.BalanceOf(1, "alice"))
}

func TestAvatarTransferFromNonOwner(t *testing.T) {
	r := NewAvatarRegistry()
	require.NoError(t, r.Mint("alice", 1))

	err := r.Transfer("bob", "bob", "carol", 1, 1)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestAvatarTransferRequiresApproval(t *testing.T) {
	r := NewAvatarRegistry()
	require.NoError(t, r.Mint("alice", 1))

	err := r.Transfer("operator", "alice", "bob", 1, 1)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	r.Approve("alice", "operator")
	require.NoError(t, r.Transfer("operator", "alice", "bob", 1, 1))
	assert.Equal(t, uint64(1), r.BalanceOf(1, "bob"))
}

func TestAvatarRevokeApproval(t *testing.T) {
	r := NewAvatarRegistry()
	require.NoError(t, r.Mint("alice", 1))

	r.Approve("alice", "operator")
	r.Revoke("alice", "operator")

	err := r.Transfer("operator", "alice", "bob", 1, 1)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}
