package store

import (
	"strings"

	"savoria/models"
)

// Pricing holds the checkout constants: a flat delivery fee, a tax rate
// applied to the subtotal, and a single promo code worth a fixed share of
// the subtotal.
type Pricing struct {
	DeliveryFee float64
	TaxRate     float64
	PromoCode   string
	PromoRate   float64
}

func DefaultPricing() Pricing {
	return Pricing{
		DeliveryFee: 0.5,
		TaxRate:     0.08,
		PromoCode:   "SAVE20",
		PromoRate:   0.2,
	}
}

// OrderSummary is recomputed from cart state on every request, never
// persisted on its own.
type OrderSummary struct {
	Subtotal     float64 `json:"subtotal"`
	DeliveryFee  float64 `json:"deliveryFee"`
	Tax          float64 `json:"tax"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
	PromoApplied bool    `json:"promoApplied"`
}

// Subtotal sums price × quantity over the cart. Legacy display-only prices
// contribute zero.
func Subtotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price.Amount * float64(item.Quantity)
	}
	return total
}

// Summarize derives the checkout totals for the cart, applying the promo
// discount when the code matches (case-insensitively, as the original
// upper-cased user input before comparing).
func (p Pricing) Summarize(items []models.CartItem, promoCode string) OrderSummary {
	subtotal := Subtotal(items)

	var discount float64
	promoApplied := promoCode != "" && strings.EqualFold(promoCode, p.PromoCode)
	if promoApplied {
		discount = subtotal * p.PromoRate
	}
	tax := subtotal * p.TaxRate

	return OrderSummary{
		Subtotal:     subtotal,
		DeliveryFee:  p.DeliveryFee,
		Tax:          tax,
		Discount:     discount,
		Total:        subtotal + p.DeliveryFee + tax - discount,
		PromoApplied: promoApplied,
	}
}
