package models

// DefaultCatalog returns the bundled menu used when no persisted catalog
// exists. Dish 8 keeps its legacy display-only price string on purpose;
// readers must cope with it (see Price).
func DefaultCatalog() Catalog {
	return Catalog{
		"starters": {
			{
				ID:           "1",
				Name:         "Truffle Arancini",
				Description:  "Crispy risotto balls with black truffle and mozzarella",
				Price:        PriceOf(12.5),
				Category:     "starters",
				IsPopular:    true,
				IsVegetarian: true,
				Image:        "/images/truffle-arancini.jpg",
			},
			{
				ID:          "2",
				Name:        "Tuna Tartare",
				Description: "Fresh tuna with avocado, sesame and soy dressing",
				Price:       PriceOf(16.0),
				Category:    "starters",
				IsNew:       true,
				Image:       "/images/tuna-tartare.jpeg",
			},
		},
		"mains": {
			{
				ID:            "3",
				Name:          "Filet Mignon",
				Description:   "8oz grass-fed beef with truffle mashed potatoes",
				Price:         PriceOf(34.0),
				Category:      "mains",
				IsChefSpecial: true,
				Image:         "/images/filet-mignon.jpeg",
			},
			{
				ID:           "4",
				Name:         "Mushroom Risotto",
				Description:  "Creamy arborio rice with wild mushrooms and parmesan",
				Price:        PriceOf(22.0),
				Category:     "mains",
				IsVegetarian: true,
				Image:        "/images/mushroom-risotto.jpeg",
			},
		},
		"desserts": {
			{
				ID:          "5",
				Name:        "Chocolate Soufflé",
				Description: "Warm chocolate soufflé with vanilla bean ice cream",
				Price:       PriceOf(10.5),
				Category:    "desserts",
				Image:       "/images/chocolate-souffle.jpeg",
			},
			{
				ID:           "6",
				Name:         "Crème Brûlée",
				Description:  "Classic vanilla custard with caramelized sugar top",
				Price:        PriceOf(9.5),
				Category:     "desserts",
				IsVegetarian: true,
				Image:        "/images/creme-brulee.jpeg",
			},
		},
		"drinks": {
			{
				ID:          "7",
				Name:        "Signature Cocktails",
				Description: "Ask your server about today's special creations",
				Price:       PriceOf(14.0),
				Category:    "drinks",
				Image:       "/images/cocktails.jpeg",
			},
			{
				ID:          "8",
				Name:        "Wine Selection",
				Description: "Extensive list of international wines available",
				Price:       Price{Label: "Bottle from $35"},
				Category:    "drinks",
				Image:       "/images/wine.jpeg",
			},
			{
				ID:           "9",
				Name:         "Fresh Juices",
				Description:  "Freshly squeezed juices made to order",
				Price:        PriceOf(6.5),
				Category:     "drinks",
				IsVegetarian: true,
				Image:        "/images/juices.jpg",
			},
		},
	}
}
