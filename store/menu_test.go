package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"savoria/db"
	"savoria/models"

	"github.com/stretchr/testify/require"
)

func newTestMenuStore(t *testing.T) (*MenuStore, db.BlobStore, *Notifier) {
	t.Helper()
	blobs := db.NewMemoryStore()
	notifier := NewNotifier()
	s, err := NewMenuStore(context.Background(), blobs, notifier)
	require.NoError(t, err)
	return s, blobs, notifier
}

func TestMenuStore_SeedsWhenEmpty(t *testing.T) {
	s, blobs, _ := newTestMenuStore(t)

	catalog := s.Catalog()
	require.Len(t, catalog, 4)
	require.Len(t, catalog["starters"], 2)
	require.Len(t, catalog["mains"], 2)
	require.Len(t, catalog["desserts"], 2)
	require.Len(t, catalog["drinks"], 3)

	// The seed is persisted immediately so the next load reads it back.
	raw, err := blobs.Get(context.Background(), db.MenuKey)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
}

func TestMenuStore_ReseedsOnCorruptBlob(t *testing.T) {
	blobs := db.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, blobs.Set(ctx, db.MenuKey, []byte("{not json")))

	s, err := NewMenuStore(ctx, blobs, NewNotifier())
	require.NoError(t, err)
	require.Len(t, s.GetAllDishes(), 9)
}

func TestMenuStore_EveryBucketNonNil(t *testing.T) {
	blobs := db.NewMemoryStore()
	ctx := context.Background()
	// A hand-edited blob missing two categories.
	require.NoError(t, blobs.Set(ctx, db.MenuKey, []byte(`{"starters":[],"mains":[]}`)))

	s, err := NewMenuStore(ctx, blobs, NewNotifier())
	require.NoError(t, err)
	catalog := s.Catalog()
	for _, category := range models.Categories {
		require.NotNil(t, catalog[category], "bucket %s", category)
	}
}

func TestMenuStore_AddDish(t *testing.T) {
	s, _, _ := newTestMenuStore(t)
	ctx := context.Background()
	before := len(s.GetAllDishes())

	// Free-form admin input: price as a string, ingredients comma-separated.
	var input DishInput
	payload := `{"name":"Soup","description":"Hot soup","price":"5","category":"starters","ingredients":"broth, salt"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &input))

	dish, err := s.AddDish(ctx, input)
	require.NoError(t, err)
	require.NotEmpty(t, dish.ID)
	require.NotEmpty(t, dish.CreatedAt)
	require.True(t, dish.IsNew)
	require.Equal(t, 5.0, dish.Price.Amount)
	require.Equal(t, []string{"broth", "salt"}, dish.Ingredients)
	require.Equal(t, 4.5, dish.Rating)

	require.Len(t, s.GetAllDishes(), before+1)

	got, ok := s.GetDishByID(dish.ID)
	require.True(t, ok)
	require.Equal(t, dish, got)

	// The new dish landed in its category bucket, at the end.
	starters := s.Catalog()["starters"]
	require.Equal(t, dish.ID, starters[len(starters)-1].ID)
}

func TestMenuStore_AddDishNormalizesCategory(t *testing.T) {
	s, _, _ := newTestMenuStore(t)

	dish, err := s.AddDish(context.Background(), DishInput{
		Name:        "Affogato",
		Description: "Espresso over gelato",
		Price:       models.PriceOf(7),
		Category:    "  Desserts ",
	})
	require.NoError(t, err)
	require.Equal(t, "desserts", dish.Category)
}

func TestMenuStore_AddDishValidation(t *testing.T) {
	s, _, _ := newTestMenuStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input DishInput
	}{
		{"missing name", DishInput{Description: "x", Price: models.PriceOf(1), Category: "mains"}},
		{"missing description", DishInput{Name: "x", Price: models.PriceOf(1), Category: "mains"}},
		{"unknown category", DishInput{Name: "x", Description: "y", Price: models.PriceOf(1), Category: "sides"}},
		{"non-numeric price", DishInput{Name: "x", Description: "y", Price: models.Price{Label: "market price"}, Category: "mains"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddDish(ctx, tt.input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}

	// Nothing was persisted.
	require.Len(t, s.GetAllDishes(), 9)
}

func TestMenuStore_AddDishRequiresPrice(t *testing.T) {
	s, _, _ := newTestMenuStore(t)
	ctx := context.Background()

	// Admin form submissions with the price left blank or missing entirely.
	payloads := []string{
		`{"name":"Soup","description":"Hot soup","price":"","category":"starters"}`,
		`{"name":"Soup","description":"Hot soup","category":"starters"}`,
	}
	for _, payload := range payloads {
		var input DishInput
		require.NoError(t, json.Unmarshal([]byte(payload), &input))

		_, err := s.AddDish(ctx, input)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "payload %s", payload)
		require.Equal(t, "price", verr.Field)
	}
	require.Len(t, s.GetAllDishes(), 9)
}

func TestMenuStore_UpdateDishRejectsBlankPrice(t *testing.T) {
	s, _, _ := newTestMenuStore(t)

	var patch DishPatch
	require.NoError(t, json.Unmarshal([]byte(`{"price":""}`), &patch))

	_, err := s.UpdateDish(context.Background(), "3", patch)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "price", verr.Field)

	dish, ok := s.GetDishByID("3")
	require.True(t, ok)
	require.Equal(t, 34.0, dish.Price.Amount)
}

func TestMenuStore_UpdateDish(t *testing.T) {
	s, _, _ := newTestMenuStore(t)
	ctx := context.Background()

	name := "Filet Mignon Deluxe"
	price := models.PriceOf(38)
	found, err := s.UpdateDish(ctx, "3", DishPatch{Name: &name, Price: &price})
	require.NoError(t, err)
	require.True(t, found)

	dish, ok := s.GetDishByID("3")
	require.True(t, ok)
	require.Equal(t, name, dish.Name)
	require.Equal(t, 38.0, dish.Price.Amount)
	require.NotEmpty(t, dish.UpdatedAt)
	// Untouched fields survive the merge.
	require.Equal(t, "8oz grass-fed beef with truffle mashed potatoes", dish.Description)
	require.True(t, dish.IsChefSpecial)
}

func TestMenuStore_UpdateDishNotFound(t *testing.T) {
	s, _, _ := newTestMenuStore(t)

	name := "Ghost"
	found, err := s.UpdateDish(context.Background(), "no-such-id", DishPatch{Name: &name})
	require.NoError(t, err)
	require.False(t, found)
}

func TestMenuStore_UpdateMovesBucketOnCategoryChange(t *testing.T) {
	s, _, _ := newTestMenuStore(t)
	ctx := context.Background()

	category := "drinks"
	found, err := s.UpdateDish(ctx, "1", DishPatch{Category: &category})
	require.NoError(t, err)
	require.True(t, found)

	// A dish always lives in the bucket matching its current category.
	catalog := s.Catalog()
	for bucket, dishes := range catalog {
		for _, dish := range dishes {
			require.Equal(t, bucket, dish.Category)
		}
	}
	require.Len(t, catalog["starters"], 1)
	require.Len(t, catalog["drinks"], 4)
	require.Equal(t, "1", catalog["drinks"][3].ID)
}

func TestMenuStore_DeleteDish(t *testing.T) {
	s, _, _ := newTestMenuStore(t)
	ctx := context.Background()
	before := len(s.GetAllDishes())

	found, err := s.DeleteDish(ctx, "5")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, s.GetAllDishes(), before-1)

	_, ok := s.GetDishByID("5")
	require.False(t, ok)

	// Deleting again is a no-op with the same end state.
	found, err = s.DeleteDish(ctx, "5")
	require.NoError(t, err)
	require.False(t, found)
	require.Len(t, s.GetAllDishes(), before-1)
}

// flakyBlobStore fails writes on demand so persistence errors can be
// exercised against an otherwise working store.
type flakyBlobStore struct {
	db.BlobStore
	failWrites bool
}

func (f *flakyBlobStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites {
		return errors.New("disk full")
	}
	return f.BlobStore.Set(ctx, key, value)
}

func TestMenuStore_MutationsRollBackOnWriteFailure(t *testing.T) {
	blobs := &flakyBlobStore{BlobStore: db.NewMemoryStore()}
	ctx := context.Background()
	s, err := NewMenuStore(ctx, blobs, NewNotifier())
	require.NoError(t, err)

	var events []ChangeEvent
	s.notifier.Subscribe(func(ev ChangeEvent) { events = append(events, ev) })

	blobs.failWrites = true

	// A failed add leaves no trace in the served catalog.
	_, err = s.AddDish(ctx, DishInput{Name: "Ghost", Description: "Never lands", Price: models.PriceOf(9), Category: "mains"})
	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	require.Len(t, s.GetAllDishes(), 9)
	for _, dish := range s.GetAllDishes() {
		require.NotEqual(t, "Ghost", dish.Name)
	}

	// Same for updates and deletes.
	name := "Renamed"
	_, err = s.UpdateDish(ctx, "3", DishPatch{Name: &name})
	require.ErrorAs(t, err, &serr)
	dish, ok := s.GetDishByID("3")
	require.True(t, ok)
	require.Equal(t, "Filet Mignon", dish.Name)

	_, err = s.DeleteDish(ctx, "5")
	require.ErrorAs(t, err, &serr)
	_, ok = s.GetDishByID("5")
	require.True(t, ok)

	// No change events for mutations that never persisted.
	require.Empty(t, events)

	// Once writes recover, a mutation persists only its own change.
	blobs.failWrites = false
	added, err := s.AddDish(ctx, DishInput{Name: "Soup", Description: "Hot soup", Price: models.PriceOf(5), Category: "starters"})
	require.NoError(t, err)
	require.Len(t, s.GetAllDishes(), 10)

	reloaded, err := NewMenuStore(ctx, blobs, NewNotifier())
	require.NoError(t, err)
	require.Len(t, reloaded.GetAllDishes(), 10)
	_, ok = reloaded.GetDishByID(added.ID)
	require.True(t, ok)
	for _, dish := range reloaded.GetAllDishes() {
		require.NotEqual(t, "Ghost", dish.Name)
	}
}

func TestMenuStore_GetAllDishesOrder(t *testing.T) {
	s, _, _ := newTestMenuStore(t)

	dishes := s.GetAllDishes()
	require.Len(t, dishes, 9)
	// Fixed bucket order, insertion order within buckets.
	wantIDs := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	gotIDs := make([]string, 0, len(dishes))
	for _, d := range dishes {
		gotIDs = append(gotIDs, d.ID)
	}
	require.Equal(t, wantIDs, gotIDs)
}

func TestMenuStore_RoundTrip(t *testing.T) {
	blobs := db.NewMemoryStore()
	ctx := context.Background()

	s1, err := NewMenuStore(ctx, blobs, NewNotifier())
	require.NoError(t, err)
	_, err = s1.AddDish(ctx, DishInput{
		Name:        "Soup",
		Description: "Hot soup",
		Price:       models.PriceOf(5),
		Category:    "starters",
		Ingredients: "broth, salt",
	})
	require.NoError(t, err)

	// A fresh store over the same blob reproduces the catalog, legacy
	// string price included.
	s2, err := NewMenuStore(ctx, blobs, NewNotifier())
	require.NoError(t, err)
	require.Equal(t, s1.Catalog(), s2.Catalog())

	wine, ok := s2.GetDishByID("8")
	require.True(t, ok)
	require.False(t, wine.Price.Numeric())
	require.Equal(t, "Bottle from $35", wine.Price.Label)
}

func TestMenuStore_PublishesChangeEvents(t *testing.T) {
	s, _, notifier := newTestMenuStore(t)
	ctx := context.Background()

	var events []ChangeEvent
	notifier.Subscribe(func(ev ChangeEvent) {
		events = append(events, ev)
	})

	dish, err := s.AddDish(ctx, DishInput{Name: "Soup", Description: "Hot", Price: models.PriceOf(5), Category: "starters"})
	require.NoError(t, err)
	name := "Soup of the Day"
	_, err = s.UpdateDish(ctx, dish.ID, DishPatch{Name: &name})
	require.NoError(t, err)
	_, err = s.DeleteDish(ctx, dish.ID)
	require.NoError(t, err)

	require.Equal(t, []ChangeEvent{
		{Entity: EntityCatalog, Op: OpCreated, ID: dish.ID},
		{Entity: EntityCatalog, Op: OpUpdated, ID: dish.ID},
		{Entity: EntityCatalog, Op: OpDeleted, ID: dish.ID},
	}, events)
}
