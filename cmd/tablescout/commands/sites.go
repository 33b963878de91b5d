package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/bryanchriswhite/TableScout/internal/config"
	"github.com/bryanchriswhite/TableScout/internal/table"
	"github.com/spf13/cobra"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Manage supported poker sites",
	Long: `Manage the poker sites TableScout looks for.

Each site has a table_finder regular expression matched against window
titles and executable paths, and a decoder that reads table identities
from titles. Sites are tried in the order they are listed.`,
}

var sitesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sites",
	Args:  cobra.NoArgs,
	RunE:  runSitesList,
}

var sitesAddCmd = &cobra.Command{
	Use:   "add NAME TABLE_FINDER",
	Short: "Add a site",
	Example: `  # Add a site whose tables only carry a name
  tablescout sites add Party 'PartyGaming\.exe'

  # Add a site with PokerStars-style titles that must name a game
  tablescout sites add "PokerStars FR" 'PokerStarsFR\.exe' --decoder metadata --require-game`,
	Args: cobra.ExactArgs(2),
	RunE: runSitesAdd,
}

var sitesRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm"},
	Short:   "Remove a site",
	Args:    cobra.ExactArgs(1),
	RunE:    runSitesRemove,
}

var (
	siteDecoder     string
	siteLobbyTitle  string
	siteRequireGame bool
)

func init() {
	rootCmd.AddCommand(sitesCmd)
	sitesCmd.AddCommand(sitesListCmd)
	sitesCmd.AddCommand(sitesAddCmd)
	sitesCmd.AddCommand(sitesRemoveCmd)

	sitesAddCmd.Flags().StringVarP(&siteDecoder, "decoder", "d", table.KindGeneric, "title decoder kind")
	sitesAddCmd.Flags().StringVar(&siteLobbyTitle, "lobby-title", "", "exact title of the site's lobby window")
	sitesAddCmd.Flags().BoolVar(&siteRequireGame, "require-game", false, "treat titles without a game as decode errors")
}

func runSitesList(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "NAME\tTABLE FINDER\tDECODER\tLOBBY TITLE\tREQUIRE GAME")
	fmt.Fprintln(w, "----\t------------\t-------\t-----------\t------------")
	for _, s := range cfg.Sites {
		requireGame := "No"
		if s.RequireGame {
			requireGame = "Yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Name, s.TableFinder, s.Decoder, orDash(s.LobbyTitle), requireGame)
	}
	return nil
}

func runSitesAdd(cmd *cobra.Command, args []string) error {
	configMgr, _, err := loadConfig()
	if err != nil {
		return err
	}

	err = configMgr.AddSite(config.SiteConfig{
		Name:        args[0],
		TableFinder: args[1],
		Decoder:     siteDecoder,
		LobbyTitle:  siteLobbyTitle,
		RequireGame: siteRequireGame,
	})
	if err != nil {
		return fmt.Errorf("failed to add site: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added site: %s\n", args[0])
	return nil
}

func runSitesRemove(cmd *cobra.Command, args []string) error {
	configMgr, _, err := loadConfig()
	if err != nil {
		return err
	}

	if err := configMgr.RemoveSite(args[0]); err != nil {
		return fmt.Errorf("failed to remove site: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed site: %s\n", args[0])
	return nil
}
