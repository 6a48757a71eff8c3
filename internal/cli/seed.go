package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/backdrop"
	"github.com/gogpu/backdrop/internal/config"
	imageio "github.com/gogpu/backdrop/internal/image"
)

type seedFlags struct {
	width      int
	height     int
	background backdrop.Color
	output     string
	text       string
}

func (a *app) seedCommand() *cobra.Command {
	def := config.DefaultConfig()
	f := seedFlags{
		width:      def.Seed.Width,
		height:     def.Seed.Height,
		background: def.Seed.Background,
		output:     def.Seed.Output,
		text:       def.Seed.Text,
	}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a new background image",
		Long: `Seed fills a new image with the background color and draws the text centered
on it, in a random installed font and the inverse of the background color.

The output format follows the file extension: .png, .jpg, .bmp or .tiff.`,
		Example: `  backdrop seed
  backdrop seed -W 2560 -H 1440 -b "#1e1e2e" -o wallpaper.png
  backdrop seed -t "Good morning" -o hello.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSeed(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.width, "width", "W", f.width, "image width in pixels")
	flags.IntVarP(&f.height, "height", "H", f.height, "image height in pixels")
	flags.VarP(&f.background, "background", "b", "background color as #rrggbb")
	flags.StringVarP(&f.output, "output", "o", f.output, "output image path")
	flags.StringVarP(&f.text, "text", "t", f.text, "text to draw")

	return cmd
}

func (a *app) runSeed(cmd *cobra.Command, f seedFlags) error {
	seed := a.cfg.Seed
	flags := cmd.Flags()
	if flags.Changed("width") {
		seed.Width = f.width
	}
	if flags.Changed("height") {
		seed.Height = f.height
	}
	if flags.Changed("background") {
		seed.Background = f.background
	}
	if flags.Changed("output") {
		seed.Output = f.output
	}
	if flags.Changed("text") {
		seed.Text = f.text
	}

	return a.seed(cmd.OutOrStdout(), a.cfg, seed)
}

// seed composes one image as described by seed and saves it.
func (a *app) seed(w io.Writer, cfg *config.Config, seed config.SeedConfig) error {
	// Reject unsupported extensions before spending time on fonts.
	if format, err := imageio.FormatFromPath(seed.Output); err != nil || !format.CanEncode() {
		if err == nil {
			err = imageio.ErrUnsupportedFormat
		}
		return err
	}

	opts := append(cfg.ComposerOptions(), backdrop.WithText(seed.Text))
	c := backdrop.NewComposer(cfg.FontProvider(), opts...)

	a.logger.Debug("seeding", "width", seed.Width, "height", seed.Height, "background", seed.Background)
	res, err := c.Compose(seed.Width, seed.Height, seed.Background)
	if err != nil {
		return err
	}

	if err := imageio.Save(seed.Output, res.Image); err != nil {
		return err
	}

	printSeedSummary(w, seed.Output, res, seed.Background)
	return nil
}
