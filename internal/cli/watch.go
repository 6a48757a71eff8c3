package cli

import (
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/backdrop/internal/config"
	"github.com/gogpu/backdrop/internal/watch"
)

func (a *app) watchCommand() *cobra.Command {
	var poll time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Seed again whenever the config file changes",
		Long: `Watch seeds an image from the config file, then reloads the file and seeds
again each time it is saved. A config that fails to load is reported and
the previous one is kept. Stop with Ctrl-C.`,
		Example: `  backdrop watch
  backdrop watch -c ~/wallpaper.toml --poll 5s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWatch(cmd, poll)
		},
	}

	cmd.Flags().DurationVar(&poll, "poll", 0, "poll the file at this interval instead of using file system events")

	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, poll time.Duration) error {
	if a.cfgFile == "" {
		return errors.New("watch: no config file path")
	}

	opts := []watch.Option{watch.WithLogger(slog.New(a.logger))}
	if poll > 0 {
		opts = append(opts, watch.WithPolling(), watch.WithPollInterval(poll))
	}
	w, err := watch.New(a.cfgFile, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	out := cmd.OutOrStdout()
	cfg := a.cfg
	if err := a.seed(out, cfg, cfg.Seed); err != nil {
		return err
	}

	a.logger.Info("watching config", "path", w.Path(), "polling", w.Polling())
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Events():
		}

		next, ok := a.reload()
		if !ok {
			continue
		}
		cfg = next

		if err := a.seed(out, cfg, cfg.Seed); err != nil {
			a.logger.Error("seed failed", "err", err)
		}
	}
}

// reload reads the config file again. A file that is missing or invalid
// is reported and ok is false, so the caller keeps its previous config.
func (a *app) reload() (cfg *config.Config, ok bool) {
	cfg, err := config.Load(a.cfgFile, false)
	if err != nil {
		a.logger.Warn("config reload failed, keeping previous", "err", err)
		return nil, false
	}
	a.logger.Debug("config reloaded", "path", a.cfgFile)
	return cfg, true
}
