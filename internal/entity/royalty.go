package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

type RoyaltyEntry struct {
	AssetId    uint64    `json:"assetId"`
	AssetKind  AssetKind `json:"assetKind"`
	Percentage uint      `json:"percentage"`
	UpdatedBy  string    `json:"updatedBy"`
}

func (r RoyaltyEntry) Slug() string {
	return CreateRoyaltySlug(r.AssetKind, r.AssetId)
}

func CreateRoyaltySlug(kind AssetKind, assetId uint64) string {
	return slug.Make(fmt.Sprintf("royalty-%s-%d", kind, assetId))
}
