package store

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"strings"
	"sync"

	"savoria/db"
	"savoria/models"
)

const orderIDChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newOrderID mirrors the original "ORD" + 9 upper-case base36 characters.
func newOrderID() string {
	var b strings.Builder
	b.WriteString("ORD")
	for i := 0; i < 9; i++ {
		b.WriteByte(orderIDChars[rand.Intn(len(orderIDChars))])
	}
	return b.String()
}

// CheckoutRequest is the place-order payload: the delivery form plus the
// options chosen in the checkout flow.
type CheckoutRequest struct {
	Details        models.DeliveryDetails `json:"details"`
	DeliveryOption string                 `json:"deliveryOption"`
	PaymentMethod  string                 `json:"paymentMethod"`
	PromoCode      string                 `json:"promoCode"`
}

// OrderStore turns the current cart into confirmed orders kept under the
// orders blob. Placing an order clears the cart.
type OrderStore struct {
	mu       sync.Mutex
	blobs    db.BlobStore
	cart     *CartStore
	notifier *Notifier
	pricing  Pricing
}

func NewOrderStore(blobs db.BlobStore, cart *CartStore, notifier *Notifier, pricing Pricing) *OrderStore {
	return &OrderStore{blobs: blobs, cart: cart, notifier: notifier, pricing: pricing}
}

// PlaceOrder validates the checkout form, snapshots the cart with its
// totals into a new confirmed order, persists it and clears the cart.
// No payment provider is involved; the order is confirmed on the spot.
func (s *OrderStore) PlaceOrder(ctx context.Context, req CheckoutRequest) (models.Order, error) {
	if err := validate.Struct(req.Details); err != nil {
		return models.Order{}, &ValidationError{Field: "details", Reason: err.Error()}
	}
	option := req.DeliveryOption
	if option == "" {
		option = "delivery"
	}
	if option == "delivery" {
		switch {
		case strings.TrimSpace(req.Details.Address) == "":
			return models.Order{}, &ValidationError{Field: "address", Reason: "required for delivery"}
		case strings.TrimSpace(req.Details.City) == "":
			return models.Order{}, &ValidationError{Field: "city", Reason: "required for delivery"}
		case strings.TrimSpace(req.Details.ZipCode) == "":
			return models.Order{}, &ValidationError{Field: "zipCode", Reason: "required for delivery"}
		}
	}

	items, err := s.cart.Items(ctx)
	if err != nil {
		return models.Order{}, err
	}
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	summary := s.pricing.Summarize(items, req.PromoCode)
	order := models.Order{
		ID:             newOrderID(),
		Items:          items,
		Subtotal:       summary.Subtotal,
		DeliveryFee:    summary.DeliveryFee,
		Tax:            summary.Tax,
		Discount:       summary.Discount,
		Total:          summary.Total,
		DeliveryOption: option,
		PaymentMethod:  req.PaymentMethod,
		Details:        req.Details,
		Status:         "confirmed",
		CreatedAt:      timestamp(),
	}
	if summary.PromoApplied {
		order.PromoCode = strings.ToUpper(req.PromoCode)
	}

	s.mu.Lock()
	orders, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return models.Order{}, err
	}
	orders = append(orders, order)
	if err := s.save(ctx, orders); err != nil {
		s.mu.Unlock()
		return models.Order{}, err
	}
	s.mu.Unlock()

	if err := s.cart.Clear(ctx); err != nil {
		return models.Order{}, err
	}
	s.notifier.Publish(ChangeEvent{Entity: EntityOrders, Op: OpCreated, ID: order.ID})
	return order, nil
}

// Orders returns the order history, oldest first.
func (s *OrderStore) Orders(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *OrderStore) load(ctx context.Context) ([]models.Order, error) {
	raw, err := s.blobs.Get(ctx, db.OrdersKey)
	if err == db.ErrKeyNotFound {
		return []models.Order{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get", Key: db.OrdersKey, Err: err}
	}

	var orders []models.Order
	if jsonErr := json.Unmarshal(raw, &orders); jsonErr != nil {
		log.Printf("Corrupt orders blob, starting empty: %v", jsonErr)
		return []models.Order{}, nil
	}
	return orders, nil
}

func (s *OrderStore) save(ctx context.Context, orders []models.Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return &StorageError{Op: "marshal", Key: db.OrdersKey, Err: err}
	}
	if err := s.blobs.Set(ctx, db.OrdersKey, raw); err != nil {
		return &StorageError{Op: "set", Key: db.OrdersKey, Err: err}
	}
	return nil
}
