package store

import (
	"errors"
	"sync"

	"github.com/openloot/marketplace/internal/entity"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

// ListingStore holds one record per listing id. Ids are assigned at create
// time, monotonically increasing and never reused. The store carries no
// business rules beyond key uniqueness; state transitions are validated by
// the mutate callback at the call site.
type ListingStore interface {
	Create(listing entity.Listing) uint64
	Get(id uint64) (entity.Listing, error)
	Mutate(id uint64, fn func(listing *entity.Listing) error) error
	All() []entity.Listing
}

type listingStore struct {
	mu       sync.RWMutex
	listings map[uint64]*entity.Listing
	nextId   uint64
}

func NewListingStore() ListingStore {
	return &listingStore{listings: make(map[uint64]*entity.Listing), nextId: 1}
}

func (s *listingStore) Create(listing entity.Listing) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing.Id = s.nextId
	s.nextId++

	s.listings[listing.Id] = &listing

	return listing.Id
}

func (s *listingStore) Get(id uint64) (entity.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, exists := s.listings[id]
	if !exists {
		return entity.Listing{}, ErrListingNotFound
	}

	return *listing, nil
}

func (s *listingStore) Mutate(id uint64, fn func(listing *entity.Listing) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, exists := s.listings[id]
	if !exists {
		return ErrListingNotFound
	}

	return fn(listing)
}

func (s *listingStore) All() []entity.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := make([]entity.Listing, 0, len(s.listings))
	for _, listing := range s.listings {
		listings = append(listings, *listing)
	}

	return listings
}
