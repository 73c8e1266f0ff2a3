package main

import (
	"log/slog"
	"os"

	"gioui.org/app"
	"github.com/esimov/img2pdf/gui"
	"github.com/spf13/cobra"
)

func newGuiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui [image|folder|pattern|url]...",
		Short: "Open the desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gui.NewGUI(opts.cfg, args...)

			// The Gio event loop has to run in a separate goroutine,
			// app.Main blocks the main thread until the program exits.
			go func() {
				if err := g.Run(); err != nil {
					slog.Error("Window closed with error", "error", err)
					os.Exit(1)
				}
				os.Exit(0)
			}()
			app.Main()

			return nil
		},
	}
}
