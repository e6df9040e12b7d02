package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"marketplace-analytics/internal/repository"
	"marketplace-analytics/internal/seed"
)

func main() {
	dir := flag.String("dir", "./data", "Output directory for users.json, products.json and orders.json")
	users := flag.Int("users", 500, "Number of customers")
	products := flag.Int("products", 120, "Number of catalogue products")
	orders := flag.Int("orders", 5000, "Number of orders")
	days := flag.Int("days", 400, "History span in days")
	seedValue := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	nowFlag := flag.String("now", "", "Reference time (RFC3339); pin it with -seed for reproducible output")
	flag.Parse()

	var now time.Time
	if *nowFlag != "" {
		t, err := time.Parse(time.RFC3339, *nowFlag)
		if err != nil {
			log.Fatalf("parse -now: %v", err)
		}
		now = t
	}

	ds, err := seed.Generate(rand.New(rand.NewSource(*seedValue)), seed.Options{
		Users:    *users,
		Products: *products,
		Orders:   *orders,
		Days:     *days,
		Now:      now,
	})
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("create %s: %v", *dir, err)
	}
	if err := repository.WriteCollection(filepath.Join(*dir, repository.UsersFile), ds.Users); err != nil {
		log.Fatal(err)
	}
	if err := repository.WriteCollection(filepath.Join(*dir, repository.ProductsFile), ds.Products); err != nil {
		log.Fatal(err)
	}
	if err := repository.WriteCollection(filepath.Join(*dir, repository.OrdersFile), ds.Orders); err != nil {
		log.Fatal(err)
	}

	log.Printf("seeded %s: users=%d products=%d orders=%d seed=%d", *dir, len(ds.Users), len(ds.Products), len(ds.Orders), *seedValue)
}
