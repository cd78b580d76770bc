package store

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"savoria/db"
	"savoria/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// DishInput carries the admin form fields for a new dish. Price arrives as
// free-form input; Ingredients is a comma-separated list.
type DishInput struct {
	Name          string       `json:"name" validate:"required"`
	Description   string       `json:"description" validate:"required"`
	Price         models.Price `json:"price"`
	Category      string       `json:"category" validate:"required"`
	IsVegetarian  bool         `json:"isVegetarian"`
	IsSpicy       bool         `json:"isSpicy"`
	IsPopular     bool         `json:"isPopular"`
	IsChefSpecial bool         `json:"isChefSpecial"`
	Rating        float64      `json:"rating"`
	PrepTime      string       `json:"prepTime"`
	Ingredients   string       `json:"ingredients"`
	Image         string       `json:"image"`
}

// DishPatch is a partial update; nil fields are left untouched.
type DishPatch struct {
	Name          *string       `json:"name"`
	Description   *string       `json:"description"`
	Price         *models.Price `json:"price"`
	Category      *string       `json:"category"`
	IsVegetarian  *bool         `json:"isVegetarian"`
	IsSpicy       *bool         `json:"isSpicy"`
	IsNew         *bool         `json:"isNew"`
	IsPopular     *bool         `json:"isPopular"`
	IsChefSpecial *bool         `json:"isChefSpecial"`
	Rating        *float64      `json:"rating"`
	PrepTime      *string       `json:"prepTime"`
	Ingredients   *string       `json:"ingredients"`
	Image         *string       `json:"image"`
}

// MenuStore is the single source of truth for the dish catalog. The full
// catalog lives in memory and is re-serialized wholesale to the menuItems
// blob on every mutation. Mutations are staged on a copy and swapped in
// only after the blob write succeeds, so a failed write leaves the served
// catalog exactly as it was.
type MenuStore struct {
	mu       sync.RWMutex
	blobs    db.BlobStore
	notifier *Notifier
	catalog  models.Catalog
}

// NewMenuStore loads the persisted catalog, falling back to the bundled
// seed when the blob is absent or unparseable. The returned store always
// holds a non-nil bucket for every known category.
func NewMenuStore(ctx context.Context, blobs db.BlobStore, notifier *Notifier) (*MenuStore, error) {
	s := &MenuStore{blobs: blobs, notifier: notifier}

	raw, err := blobs.Get(ctx, db.MenuKey)
	switch {
	case err == db.ErrKeyNotFound:
		s.catalog = models.DefaultCatalog()
		if err := s.persist(ctx, s.catalog); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, &StorageError{Op: "get", Key: db.MenuKey, Err: err}
	default:
		var catalog models.Catalog
		if jsonErr := json.Unmarshal(raw, &catalog); jsonErr != nil {
			log.Printf("Corrupt catalog blob, reseeding: %v", jsonErr)
			catalog = models.DefaultCatalog()
		}
		s.catalog = catalog
	}

	for _, category := range models.Categories {
		if s.catalog[category] == nil {
			s.catalog[category] = []models.Dish{}
		}
	}
	return s, nil
}

// AddDish validates the input, assigns an ID and creation timestamp, marks
// the dish as new and appends it to the bucket named by its category.
func (s *MenuStore) AddDish(ctx context.Context, in DishInput) (models.Dish, error) {
	if err := validate.Struct(in); err != nil {
		return models.Dish{}, &ValidationError{Field: "input", Reason: err.Error()}
	}
	category := strings.ToLower(strings.TrimSpace(in.Category))
	if !models.ValidCategory(category) {
		return models.Dish{}, &ValidationError{Field: "category", Reason: "must be one of " + strings.Join(models.Categories, ", ")}
	}
	if !in.Price.Numeric() {
		return models.Dish{}, &ValidationError{Field: "price", Reason: "must be numeric"}
	}

	rating := in.Rating
	if rating == 0 {
		rating = 4.5
	}

	dish := models.Dish{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Category:      category,
		IsVegetarian:  in.IsVegetarian,
		IsSpicy:       in.IsSpicy,
		IsNew:         true,
		IsPopular:     in.IsPopular,
		IsChefSpecial: in.IsChefSpecial,
		Rating:        rating,
		PrepTime:      in.PrepTime,
		Ingredients:   splitIngredients(in.Ingredients),
		Image:         in.Image,
		CreatedAt:     timestamp(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.catalog.Clone()
	next[category] = append(next[category], dish)
	if err := s.persist(ctx, next); err != nil {
		return models.Dish{}, err
	}
	s.catalog = next
	s.notifier.Publish(ChangeEvent{Entity: EntityCatalog, Op: OpCreated, ID: dish.ID})
	return dish, nil
}

// UpdateDish shallow-merges the patch over the stored dish and stamps
// UpdatedAt. When the patch changes the category the dish moves to the
// matching bucket, so a dish always lives in the bucket named by its
// current category. Returns found=false without error when the id is
// unknown.
func (s *MenuStore) UpdateDish(ctx context.Context, id string, patch DishPatch) (bool, error) {
	if patch.Price != nil && !patch.Price.Numeric() {
		return false, &ValidationError{Field: "price", Reason: "must be numeric"}
	}
	var newCategory string
	if patch.Category != nil {
		newCategory = strings.ToLower(strings.TrimSpace(*patch.Category))
		if !models.ValidCategory(newCategory) {
			return false, &ValidationError{Field: "category", Reason: "must be one of " + strings.Join(models.Categories, ", ")}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category, idx := s.locate(id)
	if idx < 0 {
		return false, nil
	}

	dish := s.catalog[category][idx]
	applyPatch(&dish, patch)
	if newCategory != "" {
		dish.Category = newCategory
	}
	dish.UpdatedAt = timestamp()

	next := s.catalog.Clone()
	if dish.Category != category {
		// Bucket follows category: remove from the old bucket, append to
		// the new one.
		next[category] = append(next[category][:idx], next[category][idx+1:]...)
		next[dish.Category] = append(next[dish.Category], dish)
	} else {
		next[category][idx] = dish
	}

	if err := s.persist(ctx, next); err != nil {
		return false, err
	}
	s.catalog = next
	s.notifier.Publish(ChangeEvent{Entity: EntityCatalog, Op: OpUpdated, ID: id})
	return true, nil
}

// DeleteDish removes the dish from whichever bucket holds it. Deleting an
// unknown id is a no-op reported through the found return.
func (s *MenuStore) DeleteDish(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, idx := s.locate(id)
	if idx < 0 {
		return false, nil
	}
	next := s.catalog.Clone()
	next[category] = append(next[category][:idx], next[category][idx+1:]...)

	if err := s.persist(ctx, next); err != nil {
		return false, err
	}
	s.catalog = next
	s.notifier.Publish(ChangeEvent{Entity: EntityCatalog, Op: OpDeleted, ID: id})
	return true, nil
}

// GetAllDishes flattens the catalog in fixed category order, preserving
// insertion order within each bucket.
func (s *MenuStore) GetAllDishes() []models.Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []models.Dish
	for _, category := range s.bucketOrder() {
		all = append(all, s.catalog[category]...)
	}
	return all
}

// GetDishByID returns the dish and whether it exists.
func (s *MenuStore) GetDishByID(id string) (models.Dish, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, idx := s.locate(id)
	if idx < 0 {
		return models.Dish{}, false
	}
	return s.catalog[category][idx], true
}

// Catalog returns a snapshot of the full category-to-dishes mapping.
func (s *MenuStore) Catalog() models.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Clone()
}

// locate returns the bucket and index holding id, or ("", -1).
// Callers must hold the lock.
func (s *MenuStore) locate(id string) (string, int) {
	for _, category := range s.bucketOrder() {
		for i, dish := range s.catalog[category] {
			if dish.ID == id {
				return category, i
			}
		}
	}
	return "", -1
}

// bucketOrder is the fixed category order followed by any stray bucket a
// hand-edited blob may contain, sorted for determinism.
func (s *MenuStore) bucketOrder() []string {
	order := make([]string, 0, len(s.catalog))
	order = append(order, models.Categories...)
	var extra []string
	for category := range s.catalog {
		if !models.ValidCategory(category) {
			extra = append(extra, category)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

// persist serializes the given catalog under the menuItems key. Callers
// must hold the lock.
func (s *MenuStore) persist(ctx context.Context, catalog models.Catalog) error {
	raw, err := json.Marshal(catalog)
	if err != nil {
		return &StorageError{Op: "marshal", Key: db.MenuKey, Err: err}
	}
	if err := s.blobs.Set(ctx, db.MenuKey, raw); err != nil {
		return &StorageError{Op: "set", Key: db.MenuKey, Err: err}
	}
	return nil
}

func applyPatch(dish *models.Dish, patch DishPatch) {
	if patch.Name != nil {
		dish.Name = *patch.Name
	}
	if patch.Description != nil {
		dish.Description = *patch.Description
	}
	if patch.Price != nil {
		dish.Price = *patch.Price
	}
	if patch.IsVegetarian != nil {
		dish.IsVegetarian = *patch.IsVegetarian
	}
	if patch.IsSpicy != nil {
		dish.IsSpicy = *patch.IsSpicy
	}
	if patch.IsNew != nil {
		dish.IsNew = *patch.IsNew
	}
	if patch.IsPopular != nil {
		dish.IsPopular = *patch.IsPopular
	}
	if patch.IsChefSpecial != nil {
		dish.IsChefSpecial = *patch.IsChefSpecial
	}
	if patch.Rating != nil {
		dish.Rating = *patch.Rating
	}
	if patch.PrepTime != nil {
		dish.PrepTime = *patch.PrepTime
	}
	if patch.Ingredients != nil {
		dish.Ingredients = splitIngredients(*patch.Ingredients)
	}
	if patch.Image != nil {
		dish.Image = *patch.Image
	}
}

func splitIngredients(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
