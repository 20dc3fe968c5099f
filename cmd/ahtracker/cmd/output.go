package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	apiclient "github.com/wowecon/ahtracker/internal/api/client"
	domain "github.com/wowecon/ahtracker/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printSearchResult(resp *apiclient.SearchResponse) error {
	fmt.Printf("Source: %s\n", resp.DataSource)
	if resp.Error != "" {
		fmt.Printf("Upstream error: %s\n", resp.Error)
	}
	if resp.AuctionCount > 0 {
		fmt.Printf("Auctions: %d\n", resp.AuctionCount)
	}
	fmt.Println()

	tw := newTabWriter(os.Stdout)
	for i := range resp.Items {
		item := &resp.Items[i]
		tw.writef("%s (%s)\n", item.Name, item.Quality)
		tw.writef("REALM\tALLIANCE\tHORDE\tLISTINGS\n")
		for realm, quote := range item.Prices {
			if quote.Error != "" {
				tw.writef("%s\t%s\t\t\n", realm, quote.Error)
				continue
			}
			tw.writef("%s\t%s\t%s\t%d\n",
				realm,
				formatGold(quote.Alliance),
				formatGold(quote.Horde),
				quote.ListingCount,
			)
		}
		if item.Note != "" {
			tw.writef("Note: %s\n", item.Note)
		}
		tw.writef("\n")
	}
	return tw.finish()
}

// formatGold renders a gold amount as "12g 34s 56c", omitting zero parts.
func formatGold(gold float64) string {
	copper := int64(gold*10000 + 0.5)
	if copper <= 0 {
		return "0c"
	}

	g := copper / 10000
	s := (copper % 10000) / 100
	c := copper % 100

	out := ""
	if g > 0 {
		out += fmt.Sprintf("%dg ", g)
	}
	if s > 0 {
		out += fmt.Sprintf("%ds ", s)
	}
	if c > 0 || out == "" {
		out += fmt.Sprintf("%dc", c)
	}
	if out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return out
}

func printRealmsTable(realms []apiclient.RealmEntry) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("KEY\tNAME\tREGION\tCONNECTED ID\tNAMESPACE\tRESOLVED\tSOURCE\n")
	for i := range realms {
		r := &realms[i]
		id := "-"
		if r.ConnectedRealmID > 0 {
			id = fmt.Sprintf("%d", r.ConnectedRealmID)
		}
		source := r.Source
		if source == "" {
			source = "-"
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%v\t%s\n",
			r.RealmKey, r.DisplayName, r.Region, id, r.Namespace, r.Resolved, source)
	}
	return tw.finish()
}

func printItemsTable(items []domain.ItemRecord) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tQUALITY\tCATEGORY\tPOPULAR\n")
	for i := range items {
		tw.writef("%d\t%s\t%s\t%s\t%v\n",
			items[i].ID, items[i].Name, items[i].Quality, items[i].Category, items[i].Popular)
	}
	return tw.finish()
}

func printDiscoveredTable(discovered []apiclient.DiscoveredRealm) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("KEY\tREGION\tCONNECTED ID\tNAMESPACE\n")
	for i := range discovered {
		d := &discovered[i]
		tw.writef("%s\t%s\t%d\t%s\n", d.RealmKey, d.Region, d.ConnectedRealmID, d.Namespace)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
