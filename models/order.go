package models

// DeliveryDetails is the checkout form. Address, city and zip are only
// required when the delivery option is "delivery" (pickup orders skip them);
// that conditional check lives in the handler.
type DeliveryDetails struct {
	FullName            string `json:"fullName" validate:"required"`
	Email               string `json:"email" validate:"required,email"`
	Phone               string `json:"phone" validate:"required"`
	Address             string `json:"address"`
	City                string `json:"city"`
	ZipCode             string `json:"zipCode"`
	DeliveryDate        string `json:"deliveryDate"`
	DeliveryTime        string `json:"deliveryTime"`
	SpecialInstructions string `json:"specialInstructions"`
}

type Order struct {
	ID             string          `json:"id"`
	Items          []CartItem      `json:"items"`
	Subtotal       float64         `json:"subtotal"`
	DeliveryFee    float64         `json:"deliveryFee"`
	Tax            float64         `json:"tax"`
	Discount       float64         `json:"discount"`
	Total          float64         `json:"total"`
	PromoCode      string          `json:"promoCode,omitempty"`
	DeliveryOption string          `json:"deliveryOption"`
	PaymentMethod  string          `json:"paymentMethod"`
	Details        DeliveryDetails `json:"details"`
	Status         string          `json:"status"`
	CreatedAt      string          `json:"createdAt"`
}
