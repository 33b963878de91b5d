package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bryanchriswhite/TableScout/internal/logger"
	"github.com/bryanchriswhite/TableScout/internal/table"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open poker tables",
	Long: `List every open table window of the configured sites.

Lobbies, hand history viewers and other client windows are skipped. When two
windows decode to the same table name the one enumerated last is shown and a
warning is logged.`,
	Example: `  # List tables in table format (default)
  tablescout list

  # List tables in JSON format
  tablescout list --format json

  # Use xwininfo even when X11 libraries are available
  tablescout list --source xwininfo`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var findCmd = &cobra.Command{
	Use:   "find NAME",
	Short: "Find a table by name",
	Long: `Find the table whose decoded name is exactly NAME.

Titles that merely contain NAME do not match.`,
	Example: `  tablescout find Aloha
  tablescout find "Tournament 118942908 Table 3" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

var tournamentCmd = &cobra.Command{
	Use:   "tournament ID TABLE",
	Short: "Find a tournament table",
	Example: `  tablescout tournament 118942908 3`,
	Args:    cobra.ExactArgs(2),
	RunE:    runTournament,
}

var (
	listFormat string
	findFormat string
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(tournamentCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", formatTable, "output format (table, json or yaml)")
	findCmd.Flags().StringVarP(&findFormat, "format", "f", formatTable, "output format (table, json or yaml)")
	tournamentCmd.Flags().StringVarP(&findFormat, "format", "f", formatTable, "output format (table, json or yaml)")
}

func runList(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	finder, src, err := newFinder(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	res, err := finder.All()
	if err != nil {
		return err
	}
	if res.Err != nil {
		logger.WithComponent("cli").Warn().Err(res.Err).Msg("some tables could not be decoded")
	}

	out := cmd.OutOrStdout()
	if listFormat == formatTable {
		return printTables(out, res.Tables)
	}
	return encode(out, listFormat, res.Tables)
}

func runFind(cmd *cobra.Command, args []string) error {
	return lookup(cmd, func(f tableLookup) (*table.Identity, error) {
		return f.ByName(args[0])
	}, fmt.Sprintf("no table named %q", args[0]))
}

func runTournament(cmd *cobra.Command, args []string) error {
	tour, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid tournament number: %s", args[0])
	}
	tableNumber, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid table number: %s", args[1])
	}

	return lookup(cmd, func(f tableLookup) (*table.Identity, error) {
		return f.ByTournamentTable(tour, tableNumber)
	}, fmt.Sprintf("no table %d in tournament %d", tableNumber, tour))
}

type tableLookup interface {
	ByName(name string) (*table.Identity, error)
	ByTournamentTable(tournament int64, tableNumber int) (*table.Identity, error)
}

func lookup(cmd *cobra.Command, query func(tableLookup) (*table.Identity, error), notFound string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, src, err := newFinder(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	id, err := query(f)
	if err != nil {
		return err
	}
	if id == nil {
		return errors.New(notFound)
	}
	return printIdentity(cmd.OutOrStdout(), findFormat, id)
}
