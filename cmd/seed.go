package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/nee-commerce/backend/internal/config"
	"github.com/nee-commerce/backend/internal/repo/mongodb"
	"github.com/nee-commerce/backend/internal/setup"
)

var (
	seedCatalogPath string
	seedOrdersPath  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import the flat-file catalog and order ledger into Mongo",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustLoad()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		db, err := mongodb.NewConnection(ctx, cfg.Database.URI, cfg.Database.Database)
		if err != nil {
			return err
		}
		defer db.Close(ctx)

		if err := setup.SeedCatalog(ctx, mongodb.NewBusinessRepository(db), seedCatalogPath); err != nil {
			return err
		}
		return setup.SeedOrders(ctx, mongodb.NewOrderRepository(db), seedOrdersPath)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedCatalogPath, "catalog", "data/catalog.json", "path to catalog.json")
	seedCmd.Flags().StringVar(&seedOrdersPath, "orders", "data/orders.json", "path to orders.json")
	rootCmd.AddCommand(seedCmd)
}
