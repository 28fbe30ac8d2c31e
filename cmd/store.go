package cmd

import (
	"fmt"
	"log"

	"github.com/Gameminde/Zinouchawebsie/config"
	"github.com/Gameminde/Zinouchawebsie/database"
	"github.com/Gameminde/Zinouchawebsie/store"
)

// openStore picks the backing store from the configured driver. The returned
// func releases it.
func openStore(cfg *config.Config, migrate bool) (store.Store, func(), error) {
	if cfg.Database.Driver == "memory" {
		log.Println("⚠️ Using the in-memory store, data is lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if migrate {
		if err := database.Migrate(db); err != nil {
			database.Close(db)
			return nil, nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return store.NewGormStore(db), func() { database.Close(db) }, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
