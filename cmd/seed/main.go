package main

// Load reference data (catalog items, assumptions, incentive rules):
//   SEED_FILE=seed/reference.yaml go run ./cmd/seed

import (
	"context"
	"log"
	"os"

	"retrofit-backend/internal/assumptions"
	"retrofit-backend/internal/catalog"
	"retrofit-backend/internal/incentives"
	"retrofit-backend/internal/seed"
	"retrofit-backend/internal/shared/config"
	"retrofit-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	file, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		log.Printf("failed to load seed file %s: %v", cfg.SeedFile, err)
		os.Exit(1)
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	repos := seed.Repos{
		Catalog:     &catalog.PGRepo{DB: sqlDB},
		Assumptions: &assumptions.PGRepo{DB: sqlDB},
		Incentives:  &incentives.PGRepo{DB: sqlDB},
	}
	if err := seed.Apply(ctx, repos, file); err != nil {
		log.Printf("failed to apply seed data: %v", err)
		os.Exit(1)
	}

	log.Printf("seeded %d catalog items, %d assumptions, %d incentives",
		len(file.CatalogItems), len(file.Assumptions), len(file.Incentives))
}
