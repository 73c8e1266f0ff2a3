package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/esimov/img2pdf"
	"github.com/esimov/img2pdf/config"
	"github.com/esimov/img2pdf/utils"
	"github.com/spf13/cobra"
)

func newConvertCmd(opts *options) *cobra.Command {
	var (
		output     string
		dir        string
		exts       string
		openFolder bool
	)

	cmd := &cobra.Command{
		Use:   "convert [flags] <image|folder|pattern|url>...",
		Short: "Combine the images into a PDF document",
		Long: `Combines the images into a single PDF document, in the order they are provided.
Folders are walked recursively in lexical order, keeping only the supported image files.`,
		Example: `  # Combine two images into album.pdf
  img2pdf convert -o album cover.jpg back.png

  # Combine every image found in a folder and open the output folder
  img2pdf convert --open -o scans ./scans`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("out") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("dir") {
				cfg.Dir = dir
			}
			if cmd.Flags().Changed("ext") {
				cfg.Extensions = config.ParseExtensions(exts)
			}
			if cmd.Flags().Changed("open") {
				cfg.OpenFolder = openFolder
			}

			paths, err := utils.CollectImages(args, cfg.Extensions)
			if err != nil {
				return err
			}
			slog.Debug("Collected images", "count", len(paths))

			p := img2pdf.New(cfg.Options())
			p.Add(paths...)

			res, err := assemble(cmd, p, cfg.Output)
			if err != nil {
				return err
			}
			printResult(res)

			if cfg.OpenFolder {
				if err := utils.OpenFolder(res.Output); err != nil {
					slog.Warn("Could not open the output folder", "path", res.Output, "error", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "Output document name (.pdf is appended when missing)")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory of the output document")
	cmd.Flags().StringVar(&exts, "ext", "", "Comma separated list of the accepted image extensions")
	cmd.Flags().BoolVar(&openFolder, "open", false, "Open the containing folder after a successful conversion")

	return cmd
}

// assemble runs the conversion while the progress indicator is shown.
func assemble(cmd *cobra.Command, p *img2pdf.Pipeline, name string) (*img2pdf.Result, error) {
	spinner := utils.NewSpinner(
		utils.StatusText("⇢ creating the PDF document (be patient, it may take a while)...", utils.DefaultMessage),
		time.Millisecond*80,
	)

	// Restore the cursor visibility when the command gets interrupted.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-cmd.Context().Done():
			spinner.RestoreCursor()
			os.Exit(1)
		case <-stop:
		}
	}()

	spinner.Start()
	res, err := p.Assemble(name)
	if err != nil {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.StatusText("creating the PDF document failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
		spinner.Stop()
		return nil, describe(err)
	}
	spinner.StopMsg = fmt.Sprintf("%s\n",
		utils.StatusText("⇢ the PDF document has been created successfully ✔", utils.SuccessMessage),
	)
	spinner.Stop()

	return res, nil
}

// describe adds a hint to the pipeline errors the user can act upon.
func describe(err error) error {
	switch {
	case errors.Is(err, img2pdf.ErrEmptyCollection):
		return fmt.Errorf("%w: no supported image has been found", err)
	case errors.Is(err, img2pdf.ErrEmptyName):
		return fmt.Errorf("%w: use the --out flag", err)
	}
	return err
}

// printResult displays the relevant information about the generated document.
func printResult(res *img2pdf.Result) {
	for _, pg := range res.Pages {
		note := ""
		if pg.Converted {
			note = utils.DecorateText(" (converted to RGB)", utils.StatusMessage)
		}
		fmt.Fprintf(os.Stderr, "  %3d. %s %dx%d%s\n", pg.Number, filepath.Base(pg.Source), pg.Width, pg.Height, note)
	}
	fmt.Fprintf(os.Stderr, "\nThe document has been saved as: %s\n",
		utils.DecorateText(res.Output, utils.SuccessMessage),
	)
	fmt.Fprintf(os.Stderr, "Execution time: %s\n",
		utils.DecorateText(utils.FormatTime(res.Elapsed), utils.SuccessMessage),
	)
}
