package cmd

import (
	"errors"
	"log"

	"github.com/Gameminde/Zinouchawebsie/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Database.Driver != "postgres" {
			return errors.New("migrate needs the postgres driver")
		}

		db, err := database.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Println("✅ Tables are up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
