package main

import (
	"fmt"
	"os"

	"fitprofile/database"
	"fitprofile/internal/config"
	"fitprofile/internal/healthstore"
	"fitprofile/internal/logger"
	"fitprofile/internal/repository"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	envFile string
	cfg     *config.Config
	db      *gorm.DB
)

var rootCmd = &cobra.Command{
	Use:           "profilectl",
	Short:         "Inspect and populate fitness profiles",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile, ".env", "../../.env")
		if err != nil {
			return err
		}
		if err := logger.Init(cfg.LogLevel); err != nil {
			return err
		}
		if cmd.Annotations["db"] == "false" {
			return nil
		}
		db, err = database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		return database.Migrate(db)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "path to an .env file")
}

func newStore() healthstore.HealthStore {
	return healthstore.NewStore(
		repository.NewSampleRepository(db),
		repository.NewAuthorizationRepository(db),
		repository.NewCharacteristicRepository(db),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
