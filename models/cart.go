package models

// CartItem is a snapshot of a dish at the time it was added to the cart,
// annotated with the desired quantity. At most one entry exists per dish ID.
type CartItem struct {
	Dish
	Quantity int `json:"quantity"`
}
