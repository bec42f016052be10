package cmd

import (
	"github.com/carousell/ct-go/pkg/logger/log"
	"github.com/spf13/cobra"

	"github.com/nee-commerce/backend/internal/app"
	"github.com/nee-commerce/backend/internal/server"
)

var rootCmd = &cobra.Command{
	Use:           "nee-commerce",
	Short:         "Nee Commerce API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(
			server.StartServer,
		).Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
