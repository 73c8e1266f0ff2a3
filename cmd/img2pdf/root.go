package main

import (
	"log/slog"
	"os"

	"github.com/esimov/img2pdf/config"
	"github.com/esimov/img2pdf/utils"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const helpBanner = `
┬┌┬┐┌─┐┌─┐┌─┐┌┬┐┌─┐
││││├┬┘┌─┘├─┘ ││├┤
┴┴ ┴└─┘└─┘┴  ─┴┘└

Combine images into a single PDF document, one page per image.
`

// options holds the global flags and the configuration resolved from them.
type options struct {
	configPath string
	verbose    bool
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "img2pdf",
		Short: "Combine images into a single PDF document",
		Long: helpBanner + `
Every page of the generated document has the exact pixel size of its source image.
Images can be local files, folders (walked recursively), glob patterns or http(s) URLs.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			utils.NoColor = !term.IsTerminal(int(os.Stderr.Fd()))

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			slog.Debug("Configuration loaded", "output", cfg.Output, "dir", cfg.Dir, "thumb_size", cfg.ThumbSize)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Configuration file (default "+config.DefaultFile+" if present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(
		newConvertCmd(opts),
		newPreviewCmd(opts),
		newInspectCmd(),
		newGuiCmd(opts),
	)

	return cmd
}
