package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	"stylista-be/internal/config"
	"stylista-be/internal/repository/unitofwork"
	"stylista-be/pkg/database"
)

// Loads the catalog CSV export into Postgres. Tables must already exist;
// rows whose id is already present are left untouched, so the seeder can
// be re-run after a partial load.
func main() {
	dir := flag.String("dir", "archive", "directory holding products.csv, users.csv, inventory_items.csv and order_items.csv")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: failed to connect to database: ", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	path := func(name string) string { return filepath.Join(*dir, name) }

	// Parents before children.
	reporter("products")(loadCSV(ctx, path("products.csv"), parseProduct, uow.ProductRepository().CreateBulk))
	reporter("users")(loadCSV(ctx, path("users.csv"), parseShopper, uow.ShopperRepository().CreateBulk))
	reporter("inventory_items")(loadCSV(ctx, path("inventory_items.csv"), parseInventoryItem, uow.InventoryRepository().CreateBulk))
	reporter("order_items")(loadCSV(ctx, path("order_items.csv"), parseOrderItem, uow.OrderItemRepository().CreateBulk))

	log.Println("Catalog seeding completed!")
}

func reporter(table string) func(loaded, skipped int, err error) {
	return func(loaded, skipped int, err error) {
		if err != nil {
			log.Fatalf("Error seeding %s after %d rows: %v", table, loaded, err)
		}
		log.Printf("Seeded %s: %d rows (%d skipped)", table, loaded, skipped)
	}
}
