package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/april-ivy/april-ivy/internal/cache"
	"github.com/april-ivy/april-ivy/internal/config"
	"github.com/april-ivy/april-ivy/internal/daemon"
	"github.com/april-ivy/april-ivy/internal/readme"
	"github.com/april-ivy/april-ivy/pkg/github"
	"github.com/april-ivy/april-ivy/pkg/lastfm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	runLogLevel string
	runEnvFile  string
	runOnce     bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the README reconcile loop",
	Long: `Run the reconcile loop that keeps the README's music snippet in sync
with Last.fm.

Each cycle fetches the most recent track, decides whether the snippet
needs to change (content difference, or the re-announce interval
elapsed), and if so rewrites the update zone of the README through a
conditional commit. Failures are isolated per cycle; the loop only
stops on SIGINT/SIGTERM.

Use --once to perform a single cycle and exit, for cron-style
scheduling.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&runEnvFile, "env-file", "", "Env file to load before reading configuration")
	runCmd.Flags().BoolVar(&runOnce, "once", false, "Run a single reconcile cycle and exit")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(runEnvFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := setupLogger(runLogLevel)

	logger.Info().
		Str("version", version).
		Str("user", cfg.LastFM.User).
		Str("repo", cfg.GitHub.Owner+"/"+cfg.GitHub.Repo).
		Msg("Starting april-ivy")

	fetcher, err := lastfm.NewClient(lastfm.Config{
		APIKey:    cfg.LastFM.APIKey,
		UserAgent: cfg.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("failed to create lastfm client: %w", err)
	}

	host, err := github.NewClient(github.Config{
		Token:     cfg.GitHub.Token,
		UserAgent: cfg.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("failed to create github client: %w", err)
	}

	patcher := readme.New(host, readme.Config{
		Owner:       cfg.GitHub.Owner,
		Repo:        cfg.GitHub.Repo,
		Path:        cfg.GitHub.ReadmePath,
		Branch:      cfg.GitHub.Branch,
		Placeholder: cfg.Placeholder,
	}, logger)

	d := daemon.New(daemon.Config{
		User:          cfg.LastFM.User,
		PollInterval:  cfg.PollInterval,
		ReannounceTTL: cfg.ReannounceTTL,
	}, fetcher, patcher, cache.NewStore(cfg.CacheFile), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runOnce {
		return d.RunOnce(ctx)
	}

	if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("daemon error: %w", err)
	}

	logger.Info().Msg("Stopped")
	return nil
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logLevel string) zerolog.Logger {
	level := zerolog.InfoLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	logger := zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
