package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lvillar/gofpdf/reader"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <document.pdf>",
		Short: "List the pages of a PDF document with their sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := reader.Open(args[0])
			if err != nil {
				return fmt.Errorf("unable to read the document: %w", err)
			}

			fmt.Fprintf(os.Stdout, "PDF %s, %d pages\n", doc.Version, doc.NumPages())

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PAGE\tWIDTH\tHEIGHT")
			for n, page := range doc.Pages() {
				fmt.Fprintf(tw, "%d\t%g\t%g\n", n, page.MediaBox.Width(), page.MediaBox.Height())
			}
			return tw.Flush()
		},
	}
}
