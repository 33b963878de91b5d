package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/bryanchriswhite/TableScout/internal/table"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func encode(out io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case formatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(v)
	default:
		return fmt.Errorf("unsupported format: %s (use 'table', 'json' or 'yaml')", format)
	}
}

// printTables writes one row per table sorted by name.
func printTables(out io.Writer, tables map[string]table.Identity) error {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "NAME\tSITE\tGAME\tSTRUCTURE\tSEATS\tTOURNAMENT\tGEOMETRY\tHANDLE")
	fmt.Fprintln(w, "----\t----\t----\t---------\t-----\t----------\t--------\t------")

	for _, name := range names {
		id := tables[name]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%#x\n",
			id.Name,
			orDash(id.Site),
			orDash(string(id.Game)),
			orDash(string(id.Structure)),
			seats(id),
			tournament(id),
			id.Geometry,
			id.Handle,
		)
	}
	return nil
}

func printIdentity(out io.Writer, format string, id *table.Identity) error {
	if format == formatTable {
		_, err := fmt.Fprint(out, id.String())
		return err
	}
	return encode(out, format, id)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func seats(id table.Identity) string {
	if id.MaxSeats == nil {
		return "-"
	}
	return fmt.Sprint(*id.MaxSeats)
}

func tournament(id table.Identity) string {
	if id.Tournament == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d", id.Tournament.ID, id.Tournament.Table)
}
