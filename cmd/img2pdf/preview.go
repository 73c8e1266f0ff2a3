package main

import (
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/esimov/img2pdf"
	"github.com/esimov/img2pdf/utils"
	"github.com/spf13/cobra"
)

func newPreviewCmd(opts *options) *cobra.Command {
	var (
		output string
		index  int
		size   int
	)

	cmd := &cobra.Command{
		Use:   "preview [flags] <image|folder|pattern|url>...",
		Short: "Save the thumbnail of one of the images",
		Example: `  # Save the thumbnail of the second image found in a folder
  img2pdf preview --index 1 -o thumb.png ./scans`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("size") {
				cfg.ThumbSize = size
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			paths, err := utils.CollectImages(args, cfg.Extensions)
			if err != nil {
				return err
			}
			p := img2pdf.New(cfg.Options())
			p.Add(paths...)

			thumb, err := p.Preview(index)
			if err != nil {
				return err
			}
			if err := imaging.Save(thumb, output); err != nil {
				return fmt.Errorf("unable to save the thumbnail: %w", err)
			}

			ref, _ := p.At(index)
			fmt.Fprintf(os.Stderr, "The thumbnail of %s (%dx%d) has been saved as: %s\n",
				ref.Name(), thumb.Bounds().Dx(), thumb.Bounds().Dy(),
				utils.DecorateText(output, utils.SuccessMessage),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "thumbnail.png", "Thumbnail file, the extension selects the format")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "Index of the image in the list")
	cmd.Flags().IntVar(&size, "size", img2pdf.DefaultThumbSize, "Longest edge of the thumbnail")

	return cmd
}
