package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bryanchriswhite/TableScout/internal/discovery"
	"github.com/bryanchriswhite/TableScout/internal/site"
	"github.com/bryanchriswhite/TableScout/internal/table"
	"github.com/bryanchriswhite/TableScout/internal/window"
	"github.com/spf13/cobra"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "Dump the raw window enumeration",
	Long: `Print every top-level window reported by the window source, with the
site its executable resolves to and whether it would be skipped as a
non-table window. Useful when writing a table_finder for a new site.`,
	Example: `  tablescout windows
  tablescout windows --matched --source x11`,
	Args: cobra.NoArgs,
	RunE: runWindows,
}

var decodeCmd = &cobra.Command{
	Use:   "decode TITLE",
	Short: "Decode a window title without enumerating windows",
	Example: `  tablescout decode "Tournament 118942908 Table 3 - No Limit Hold'em" --site PokerStars
  tablescout decode "Bellagio (6 max) - Razz" --decoder generic`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

var (
	windowsFormat  string
	windowsMatched bool
	decodeSite     string
	decodeDecoder  string
	decodeFormat   string
)

func init() {
	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(decodeCmd)

	windowsCmd.Flags().StringVarP(&windowsFormat, "format", "f", formatTable, "output format (table, json or yaml)")
	windowsCmd.Flags().BoolVarP(&windowsMatched, "matched", "m", false, "show only windows matched by a site's table_finder")

	decodeCmd.Flags().StringVarP(&decodeSite, "site", "s", "", "decode with the decoder of a configured site")
	decodeCmd.Flags().StringVarP(&decodeDecoder, "decoder", "d", "", "decode with a decoder kind ("+strings.Join(table.Kinds(), ", ")+")")
	decodeCmd.Flags().StringVarP(&decodeFormat, "format", "f", formatTable, "output format (table, json or yaml)")
}

func runWindows(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	matcher, err := site.NewMatcher(cfg.SiteSpecs()...)
	if err != nil {
		return err
	}

	src, err := window.NewSource(cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to open window source: %w", err)
	}
	defer src.Close()

	windows, err := src.Windows()
	if err != nil {
		return fmt.Errorf("failed to enumerate windows: %w", err)
	}

	if windowsMatched {
		filtered := make([]window.RawWindow, 0)
		for _, w := range windows {
			if matcher.Matches(w.Title) || matcher.Matches(w.Executable) {
				filtered = append(filtered, w)
			}
		}
		windows = filtered
	}

	out := cmd.OutOrStdout()
	if windowsFormat != formatTable {
		return encode(out, windowsFormat, windows)
	}

	return printWindows(out, src, matcher, windows)
}

// printWindows renders the enumeration with the site each window resolves
// to the same way discovery resolves it.
func printWindows(out io.Writer, src window.Source, matcher *site.Matcher, windows []window.RawWindow) error {
	finder := discovery.NewFinder(src, matcher)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "# source: %s (%s)\n", src.Name(), src.Flavor())
	fmt.Fprintln(w, "HANDLE\tSITE\tSKIP\tGEOMETRY\tEXECUTABLE\tTITLE")
	fmt.Fprintln(w, "------\t----\t----\t--------\t----------\t-----")

	for _, win := range windows {
		siteName := "-"
		if s, ok := finder.Resolve(win); ok {
			siteName = s.Name
		}
		skip := "No"
		if matcher.IsExcluded(win.Title, win.ExecutableBase()) {
			skip = "Yes"
		}
		fmt.Fprintf(w, "%#x\t%s\t%s\t%s\t%s\t%s\n", win.Handle, siteName, skip, win.Client(), orDash(win.Executable), win.Title)
	}
	return w.Flush()
}

func runDecode(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dec, siteName, err := pickDecoder(cfg.SiteSpecs(), decodeSite, decodeDecoder)
	if err != nil {
		return err
	}

	id, err := dec.Decode(table.Candidate{
		Window: window.RawWindow{Title: args[0]},
		Site:   siteName,
	})
	if err != nil {
		return err
	}
	return printIdentity(cmd.OutOrStdout(), decodeFormat, &id)
}

// pickDecoder prefers an explicit decoder kind, then a named site, then the
// generic decoder.
func pickDecoder(specs []site.Spec, siteName, kind string) (table.Decoder, string, error) {
	if kind != "" {
		dec, err := table.NewDecoder(kind, table.Options{})
		return dec, siteName, err
	}
	if siteName == "" {
		return table.GenericDecoder{}, "", nil
	}

	matcher, err := site.NewMatcher(specs...)
	if err != nil {
		return nil, "", err
	}
	for _, s := range matcher.Sites() {
		if strings.EqualFold(s.Name, siteName) {
			return s.Decoder, s.Name, nil
		}
	}
	return nil, "", fmt.Errorf("site %s not configured", siteName)
}
