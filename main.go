package main

import (
	"context"
	"log"

	"savoria/config"
	"savoria/db"
	"savoria/routes"
	"savoria/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	// Initialize blob storage
	blobs, err := db.Open(cfg)
	if err != nil {
		log.Fatal("Failed to open storage:", err)
	}
	defer blobs.Close()

	// Stores share one notifier; the websocket hub relays its events
	notifier := store.NewNotifier()
	hub := routes.NewHub()
	notifier.Subscribe(hub.Notify)
	go hub.Run()

	menu, err := store.NewMenuStore(context.Background(), blobs, notifier)
	if err != nil {
		log.Fatal("Failed to load catalog:", err)
	}
	cart := store.NewCartStore(blobs, notifier)
	pricing := store.Pricing{
		DeliveryFee: cfg.DeliveryFee,
		TaxRate:     cfg.TaxRate,
		PromoCode:   cfg.PromoCode,
		PromoRate:   cfg.PromoRate,
	}
	orders := store.NewOrderStore(blobs, cart, notifier, pricing)
	users := store.NewUserStore(blobs, notifier)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Setup routes
	server := routes.NewServer(cfg, menu, cart, orders, users, hub)
	routes.SetupRoutes(app, server)

	// Start server
	log.Fatal(app.Listen(":" + cfg.Port))
}
