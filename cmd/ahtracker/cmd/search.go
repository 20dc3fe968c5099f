package cmd

import (
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var (
		server  string
		faction string
	)

	cmd := &cobra.Command{
		Use:   "search <item>",
		Short: "Search auction house prices for an item",
		Long: "Sends a search request to the API server and displays per-realm\n" +
			"prices for the best-matching item.",
		Example: `  ahtracker search "Black Lotus"
  ahtracker search "Black Lotus" --realm dreamscythe
  ahtracker search lotus --realm all --faction horde`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.Search(cmd.Context(), args[0], server, faction)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			return printSearchResult(resp)
		},
	}
	cmd.Flags().StringVar(&server, "realm", "all", "realm key, or all")
	cmd.Flags().StringVar(&faction, "faction", "both", "faction (alliance, horde, both)")

	return cmd
}

func realmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "realms",
		Short: "List the configured realm roster and resolution state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListRealms(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if !resp.CredentialsConfigured {
				cmd.Println("Battle.net credentials not configured: sample data only.")
			}
			return printRealmsTable(resp.Realms)
		},
	}
}

func itemsCmd() *cobra.Command {
	var (
		query   string
		popular bool
	)

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List the tracked item catalog",
		Example: `  ahtracker items
  ahtracker items --popular
  ahtracker items -q elixir`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListItems(cmd.Context(), query, popular)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			cmd.Printf("%d items\n\n", resp.Total)
			return printItemsTable(resp.Items)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "name filter")
	cmd.Flags().BoolVar(&popular, "popular", false, "popular items only")

	return cmd
}

func discoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Trigger a discovery sweep for unresolved realms",
		Long: "Asks the API server to sweep candidate regions and namespaces\n" +
			"for realms that have no connected realm mapping yet.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.RefreshDiscovery(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if resp.Count == 0 {
				cmd.Println("No new realm mappings discovered.")
				return nil
			}

			cmd.Printf("Discovered %d realm mapping(s)\n\n", resp.Count)
			return printDiscoveredTable(resp.Discovered)
		},
	}
}
