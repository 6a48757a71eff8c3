package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/backdrop"
	imageio "github.com/gogpu/backdrop/internal/image"
)

func (a *app) updateCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Refresh an existing background image",
		Long: `Update reads an image produced by seed and writes it back.

Re-rendering an existing image is not implemented yet; the image is
written unchanged. --input defaults to [seed] output from the config and
--output defaults to the input path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := input
			if in == "" {
				in = a.cfg.Seed.Output
			}
			out := output
			if out == "" {
				out = in
			}

			img, err := imageio.Load(in)
			if err != nil {
				return err
			}

			c := backdrop.NewComposer(a.cfg.FontProvider(), a.cfg.ComposerOptions()...)
			updated, err := c.Update(img)
			if err != nil {
				return err
			}

			if err := imageio.Save(out, updated); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			b := updated.Bounds()
			printSuccess(w, "updated %s", styleNumber.Render(fmt.Sprintf("%dx%d", b.Dx(), b.Dy())))
			printFile(w, out)
			printStats(w, styleDim.Render("background ")+swatch(backdrop.SampleBackground(updated)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "image to update")
	cmd.Flags().StringVarP(&output, "output", "o", "", "where to write the result")

	return cmd
}
