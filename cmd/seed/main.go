// Command seed bulk-inserts a sample menu into the configured database.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/kendall-kelly/cafe-tropis-api/config"
	"github.com/kendall-kelly/cafe-tropis-api/logger"
	"github.com/kendall-kelly/cafe-tropis-api/repository"
)

func main() {
	path := flag.String("file", "cmd/seed/menu.yaml", "YAML file with menu items and packages")
	force := flag.Bool("force", false, "seed even when the menu already has items")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	seedLog := logger.New("cafe-tropis-seed", cfg.LogLevel)

	file, err := loadSeedFile(*path)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}

	db, err := config.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	items := repository.NewMenuItemRepository(db)

	existing, err := items.List(ctx, repository.MenuFilter{})
	if err != nil {
		log.Fatalf("Failed to read menu: %v", err)
	}
	if len(existing) > 0 && !*force {
		seedLog.Info("seed_skipped", "", "Menu already has items, pass -force to seed anyway",
			slog.Int("existing_items", len(existing)))
		return
	}

	if err := seedMenu(ctx, items, repository.NewPackageRepository(db), file); err != nil {
		log.Fatalf("Failed to seed menu: %v", err)
	}
	seedLog.Info("seed_completed", "", "Menu seeded",
		slog.Int("items", len(file.Items)),
		slog.Int("packages", len(file.Packages)))
}
