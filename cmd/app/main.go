package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/sirawit-s/shop-backend/internal/cart"
	"github.com/sirawit-s/shop-backend/internal/config"
	"github.com/sirawit-s/shop-backend/internal/database"
	"github.com/sirawit-s/shop-backend/internal/httpapi"
	"github.com/sirawit-s/shop-backend/internal/order"
	"github.com/sirawit-s/shop-backend/internal/product"
	"github.com/sirawit-s/shop-backend/internal/session"
	"github.com/sirawit-s/shop-backend/internal/user"
)

// main wires dependencies and starts the HTTP server.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	if cfg.SeedProducts {
		if err := database.Seed(db); err != nil {
			log.Fatalf("seed products: %v", err)
		}
	}

	app := httpapi.New(httpapi.Deps{
		Products: product.NewPostgresRepository(db),
		Users:    user.NewPostgresRepository(db),
		Orders:   order.NewPostgresRepository(db),
		Carts:    cart.NewMemoryStore(),
		Sessions: session.NewStore(),
	})

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
