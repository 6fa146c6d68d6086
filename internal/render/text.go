package render

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteText writes the document as aligned plain text
func WriteText(w io.Writer, doc *Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\n", doc.Title)
	for _, s := range doc.Sections {
		fmt.Fprintf(tw, "\n== %s ==\n", s.Title)
		if s.Badge != nil {
			fmt.Fprintf(tw, "Risk Level:\t%s\t(%s)\n", s.Badge.Label, s.Badge.Tier)
		}
		for _, f := range s.Fields {
			fmt.Fprintf(tw, "%s:\t%s\n", f.Label, f.Value)
		}
		for _, l := range s.Lists {
			fmt.Fprintf(tw, "%s:\n", l.Title)
			for _, item := range l.Items {
				if item.Href != "" {
					fmt.Fprintf(tw, "  - %s <%s>\n", item.Text, item.Href)
				} else {
					fmt.Fprintf(tw, "  - %s\n", item.Text)
				}
			}
		}
		if v := s.Verification; v != nil {
			status := "PASSED"
			if !v.Valid {
				status = "FAILED"
			}
			fmt.Fprintf(tw, "Status:\t%s\n", status)
			fmt.Fprintf(tw, "Message:\t%s\n", v.Message)
			if v.AuthorityURL != "" {
				fmt.Fprintf(tw, "Check at:\t%s\n", v.AuthorityURL)
			}
		}
	}

	return tw.Flush()
}
