package main

import (
	"fmt"
	"os"

	"travel-agency/config"
	"travel-agency/database"
	"travel-agency/database/seeders"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate   - Create or update all tables, foreign keys and indexes")
		fmt.Println("  go run tools/migrate.go seed      - Migrate, then seed operator configs and a demo tour")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		fmt.Printf("❌ Database connection failed: %v\n", err)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if err := database.Migrate(db); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "seed":
		if err := database.Migrate(db); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		operators, err := seeders.SeedOperatorConfigs(db, cfg.Language.Supported)
		if err != nil {
			fmt.Printf("❌ Seeding operator configs failed: %v\n", err)
			os.Exit(1)
		}
		tours, err := seeders.SeedDemoTours(db)
		if err != nil {
			fmt.Printf("❌ Seeding tours failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Seeding completed: %d operator configs, %d tours\n", operators, tours)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, seed")
	}
}
