// Package cmd implements the ahtracker CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/wowecon/ahtracker/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "ahtracker",
		Short: "Auction house price tracker for WoW Classic Anniversary realms",
		Long: "ahtracker serves live auction house prices for the Classic\n" +
			"Anniversary realms, discovering realm mappings through the\n" +
			"Battle.net API and falling back to curated sample data when\n" +
			"the live API is unavailable.",
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	viper.SetEnvPrefix("AHTRACKER")
	viper.AutomaticEnv()

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(realmsCmd())
	rootCmd.AddCommand(itemsCmd())
	rootCmd.AddCommand(discoverCmd())
	rootCmd.AddCommand(versionCommand())
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
