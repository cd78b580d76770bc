package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"savoria/db"
	"savoria/models"
)

// CartStore tracks the intended order as quantity-annotated dish snapshots
// under the cartItems blob. Unlike the catalog it keeps no in-memory copy:
// every operation reads the persisted cart, rewrites the whole list and
// persists it back, which is exactly how the web client treated
// localStorage.
type CartStore struct {
	mu       sync.Mutex
	blobs    db.BlobStore
	notifier *Notifier
}

func NewCartStore(blobs db.BlobStore, notifier *Notifier) *CartStore {
	return &CartStore{blobs: blobs, notifier: notifier}
}

// Items returns the current cart. A missing or corrupt blob reads as an
// empty cart, never an error the caller has to handle.
func (s *CartStore) Items(ctx context.Context) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// AddToCart merges by dish ID: an existing entry gains quantity, otherwise
// the dish is appended as a new entry with quantity 1. Returns the updated
// cart so callers can derive badge counts from it.
func (s *CartStore) AddToCart(ctx context.Context, dish models.Dish) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range items {
		if items[i].ID == dish.ID {
			items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{Dish: dish, Quantity: 1})
	}

	if err := s.save(ctx, items); err != nil {
		return nil, err
	}
	op := OpCreated
	if merged {
		op = OpUpdated
	}
	s.notifier.Publish(ChangeEvent{Entity: EntityCart, Op: op, ID: dish.ID})
	return items, nil
}

// SetQuantity replaces the entry's quantity. Quantities below 1 never
// mutate anything; found reports whether the entry existed and was updated.
func (s *CartStore) SetQuantity(ctx context.Context, id string, quantity int) (bool, error) {
	if quantity < 1 {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	found := false
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	if err := s.save(ctx, items); err != nil {
		return false, err
	}
	s.notifier.Publish(ChangeEvent{Entity: EntityCart, Op: OpUpdated, ID: id})
	return true, nil
}

// RemoveFromCart filters the entry out. Removing an absent id is a no-op.
func (s *CartStore) RemoveFromCart(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	kept := items[:0]
	found := false
	for _, item := range items {
		if item.ID == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return false, nil
	}

	if err := s.save(ctx, kept); err != nil {
		return false, err
	}
	s.notifier.Publish(ChangeEvent{Entity: EntityCart, Op: OpDeleted, ID: id})
	return true, nil
}

// Clear drops the persisted cart key entirely, as order completion does.
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blobs.Delete(ctx, db.CartKey); err != nil {
		return &StorageError{Op: "delete", Key: db.CartKey, Err: err}
	}
	s.notifier.Publish(ChangeEvent{Entity: EntityCart, Op: OpCleared})
	return nil
}

func (s *CartStore) load(ctx context.Context) ([]models.CartItem, error) {
	raw, err := s.blobs.Get(ctx, db.CartKey)
	if err == db.ErrKeyNotFound {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get", Key: db.CartKey, Err: err}
	}

	var items []models.CartItem
	if jsonErr := json.Unmarshal(raw, &items); jsonErr != nil {
		log.Printf("Corrupt cart blob, starting empty: %v", jsonErr)
		return []models.CartItem{}, nil
	}
	return items, nil
}

func (s *CartStore) save(ctx context.Context, items []models.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return &StorageError{Op: "marshal", Key: db.CartKey, Err: err}
	}
	if err := s.blobs.Set(ctx, db.CartKey, raw); err != nil {
		return &StorageError{Op: "set", Key: db.CartKey, Err: err}
	}
	return nil
}
