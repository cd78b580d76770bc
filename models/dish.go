package models

// Categories lists the catalog buckets in display order. Every catalog
// always carries all four keys, possibly with empty buckets.
var Categories = []string{"starters", "mains", "desserts", "drinks"}

// ValidCategory reports whether name (already lower-cased) is one of the
// fixed catalog categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

type Dish struct {
	ID            string   `json:"id"`
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Price         Price    `json:"price"`
	Category      string   `json:"category"`
	IsVegetarian  bool     `json:"isVegetarian,omitempty"`
	IsSpicy       bool     `json:"isSpicy,omitempty"`
	IsNew         bool     `json:"isNew,omitempty"`
	IsPopular     bool     `json:"isPopular,omitempty"`
	IsChefSpecial bool     `json:"isChefSpecial,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	PrepTime      string   `json:"prepTime,omitempty"`
	Ingredients   []string `json:"ingredients,omitempty"`
	Image         string   `json:"image,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
}

// Catalog maps a category name to the ordered list of dishes in that bucket.
type Catalog map[string][]Dish

// Clone returns a deep-enough copy for handing snapshots to consumers:
// buckets are copied, dish values are copied, ingredient slices are shared
// (callers never mutate them in place).
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for category, dishes := range c {
		bucket := make([]Dish, len(dishes))
		copy(bucket, dishes)
		out[category] = bucket
	}
	return out
}
