package config

import "os"

type Config struct {
	Addr        string
	DatabaseURL string
	// SeedProducts inserts the sample catalog on first start when the
	// products table is empty.
	SeedProducts bool
}

func Load() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Addr:         addr,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SeedProducts: os.Getenv("SEED_PRODUCTS") != "0",
	}
}
