package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/backdrop/internal/config"
)

func (a *app) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Init writes the default configuration as TOML to the config path, so it
can be edited and picked up by seed and watch. An existing file is left
alone unless --force is given.`,
		Example: `  backdrop init
  backdrop init -c ~/wallpaper.toml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.cfgFile
			if path == "" {
				return errors.New("init: no config file path")
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("init: %s already exists (use --force to overwrite)", path)
				}
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("init: %w", err)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return fmt.Errorf("init: %w", err)
			}

			a.logger.Debug("config written", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	return cmd
}
