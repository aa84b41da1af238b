// file: cmd/root.go
// version: 2.1.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/barad1tos/GenreUpdater-sub004/internal/changelog"
	"github.com/barad1tos/GenreUpdater-sub004/internal/config"
	"github.com/barad1tos/GenreUpdater-sub004/internal/database"
	"github.com/barad1tos/GenreUpdater-sub004/internal/discogs"
	"github.com/barad1tos/GenreUpdater-sub004/internal/engine"
	"github.com/barad1tos/GenreUpdater-sub004/internal/library"
	"github.com/barad1tos/GenreUpdater-sub004/internal/lookup"
	"github.com/barad1tos/GenreUpdater-sub004/internal/metrics"
	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
	"github.com/barad1tos/GenreUpdater-sub004/internal/musicbrainz"
	"github.com/barad1tos/GenreUpdater-sub004/internal/scoring"
	"github.com/barad1tos/GenreUpdater-sub004/internal/verification"
	"github.com/barad1tos/GenreUpdater-sub004/internal/yearcache"
)

var cfgFile string
var libraryPath string
var sourceType string
var databasePath string
var databaseType string
var reportDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yearfix",
	Short: "Reconcile album release years across a music library",
	Long: `yearfix reconciles album release years from local track years,
release-year hints, a confidence-gated cache, and scored external
lookups (MusicBrainz, optionally Discogs).

Safe by design: ambiguous or suspicious results are queued for
verification instead of silently overwriting your library.`,
}

// runCmd resolves every album in the library once.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve and apply album years across the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}
		defer env.close()

		ctx, stop := signalContext()
		defer stop()

		return env.runOnce(ctx)
	},
}

// reverifyCmd re-resolves only the albums in the verification queue.
var reverifyCmd = &cobra.Command{
	Use:   "reverify",
	Short: "Re-check albums pending verification",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}
		defer env.close()

		ctx, stop := signalContext()
		defer stop()

		pending, err := env.queue.AllPending()
		if err != nil {
			return fmt.Errorf("load pending entries: %w", err)
		}
		if len(pending) == 0 {
			fmt.Println("Verification queue is empty")
			return nil
		}

		tracks, err := env.source.Tracks(ctx)
		if err != nil {
			return fmt.Errorf("load library: %w", err)
		}
		byKey := models.GroupByAlbum(tracks)

		bar := progressbar.Default(int64(len(pending)), "reverifying")
		var resolved int
		for _, entry := range pending {
			if err := ctx.Err(); err != nil {
				return err
			}
			albumTracks, ok := byKey[entry.Key()]
			if !ok {
				// Album left the library; its pending entry goes too.
				if err := env.queue.RemoveFromPending(entry.Artist, entry.Album); err == nil {
					resolved++
				}
				bar.Add(1)
				continue
			}
			summary, err := env.engine.ProcessTracks(ctx, albumTracks)
			if err != nil {
				return err
			}
			if summary.Applied > 0 {
				resolved++
			}
			bar.Add(1)
		}

		fmt.Printf("\nRe-verified %d albums, resolved %d\n", len(pending), resolved)
		return env.finish()
	},
}

// stuckCmd reports albums that repeated runs have failed to resolve.
var stuckCmd = &cobra.Command{
	Use:   "stuck",
	Short: "Report albums stuck in the verification queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}
		defer env.close()

		minAttempts, _ := cmd.Flags().GetInt("min-attempts")
		if minAttempts <= 0 {
			minAttempts = config.AppConfig.StuckMinAttempts
		}

		stuck, err := env.queue.StuckAlbumsReport(minAttempts)
		if err != nil {
			return fmt.Errorf("build stuck report: %w", err)
		}
		if len(stuck) == 0 {
			fmt.Printf("No albums stuck after %d attempts\n", minAttempts)
			return nil
		}
		return verification.WriteReport(os.Stdout, stuck)
	},
}

// watchCmd keeps running, re-resolving whenever the library changes.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the library and re-run on changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}
		defer env.close()

		ctx, stop := signalContext()
		defer stop()

		runs := make(chan struct{}, 1)
		w := library.NewWatcher(func(string) {
			select {
			case runs <- struct{}{}:
			default:
			}
		}, 0)
		if err := w.Start(config.AppConfig.LibraryPath); err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer w.Stop()

		fmt.Printf("Watching %s (Ctrl-C to stop)\n", config.AppConfig.LibraryPath)
		if err := env.runOnce(ctx); err != nil {
			return err
		}
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-runs:
				if err := env.runOnce(ctx); err != nil {
					return err
				}
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.yearfix.yaml)")
	rootCmd.PersistentFlags().StringVar(&libraryPath, "library", "", "music library: a Library.xml export or a folder of audio files")
	rootCmd.PersistentFlags().StringVar(&sourceType, "source", "itunes", "library source type: itunes or folder")
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "yearfix.db", "path to the cache/verification database")
	rootCmd.PersistentFlags().StringVar(&databaseType, "db-type", "sqlite", "database type: sqlite (default) or pebble")
	rootCmd.PersistentFlags().StringVar(&reportDir, "reports", "reports", "directory for change-log CSV reports")
	rootCmd.PersistentFlags().Bool("dry-run", false, "resolve and report without writing anything")
	rootCmd.PersistentFlags().Bool("disable-fallback", false, "legacy always-apply mode (compat testing only)")
	rootCmd.PersistentFlags().String("region", "", "artist home region (ISO 3166-1 alpha-2) for scoring")

	viper.BindPFlag("library_path", rootCmd.PersistentFlags().Lookup("library"))
	viper.BindPFlag("source_type", rootCmd.PersistentFlags().Lookup("source"))
	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("database_type", rootCmd.PersistentFlags().Lookup("db-type"))
	viper.BindPFlag("dry_run", rootCmd.PersistentFlags().Lookup("dry-run"))
	viper.BindPFlag("disable_fallback", rootCmd.PersistentFlags().Lookup("disable-fallback"))
	viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reverifyCmd)
	rootCmd.AddCommand(stuckCmd)
	rootCmd.AddCommand(watchCmd)

	stuckCmd.Flags().Int("min-attempts", 0, "minimum attempts before an album counts as stuck")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".yearfix")
	}

	viper.SetEnvPrefix("yearfix")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	// Ensure database directory exists
	if databasePath != "" {
		dbDir := filepath.Dir(databasePath)
		if dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o755); err != nil {
				fmt.Printf("Error creating database directory: %v\n", err)
			}
		}
	}

	config.InitConfig()
}

// env bundles the wired-up run stack.
type env struct {
	source  library.Source
	store   database.Store
	queue   *verification.Queue
	engine  *engine.Engine
	changes *changelog.Log
}

func buildEnv() (*env, error) {
	cfg := &config.AppConfig
	if cfg.LibraryPath == "" {
		return nil, fmt.Errorf("library path not specified (use --library)")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	metrics.Register()

	source, err := library.NewSource(cfg.SourceType, cfg.LibraryPath)
	if err != nil {
		return nil, err
	}
	store, err := database.NewStore(cfg.DatabaseType, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	mb := musicbrainz.NewClient(cfg.LookupTimeout)
	sources := []lookup.ReleaseSource{mb}
	if cfg.DiscogsToken != "" {
		sources = append(sources, discogs.NewClient(cfg.DiscogsToken, cfg.LookupTimeout))
	}
	lookups := lookup.NewService(sources, mb, lookup.Options{
		RetryAttempts: cfg.RetryAttempts,
		Region:        cfg.Region,
		Resolver: scoring.Options{
			DefinitiveScore:  cfg.Thresholds.DefinitiveScore,
			DefinitiveMargin: cfg.Thresholds.DefinitiveMargin,
			StabilityWindow:  cfg.Thresholds.StabilityWindow,
		},
	})

	queue := verification.NewQueue(store)
	changes := changelog.NewLog()
	eng := engine.New(engine.Options{
		Thresholds:        cfg.Thresholds,
		BatchSize:         cfg.BatchSize,
		BatchDelay:        cfg.BatchDelay,
		UpdateConcurrency: cfg.UpdateConcurrency,
		DisableFallback:   cfg.DisableFallback,
		DryRun:            cfg.DryRun,
	}, lookups, source, queue, yearcache.New(store, cfg.Thresholds.CacheMinConfidence), changes)

	return &env{source: source, store: store, queue: queue, engine: eng, changes: changes}, nil
}

func (e *env) runOnce(ctx context.Context) error {
	tracks, err := e.source.Tracks(ctx)
	if err != nil {
		return fmt.Errorf("load library: %w", err)
	}
	fmt.Printf("Loaded %d tracks\n", len(tracks))

	summary, err := e.engine.ProcessTracks(ctx, tracks)
	if err != nil {
		return err
	}
	fmt.Printf("Run %s: %s\n", e.changes.RunID(), summary)
	return e.finish()
}

// finish persists buffered library writes and the change-log CSV.
func (e *env) finish() error {
	if config.AppConfig.DryRun {
		return nil
	}
	if err := e.source.Flush(); err != nil {
		return fmt.Errorf("flush library: %w", err)
	}
	if e.changes.Len() > 0 {
		path, err := e.changes.SaveCSV(reportDir)
		if err != nil {
			return err
		}
		fmt.Printf("Change log written to %s\n", path)
	}
	if pending, err := e.queue.AllPending(); err == nil {
		metrics.SetPending(len(pending))
		if len(pending) > 0 {
			fmt.Printf("%d albums pending verification (run 'yearfix stuck' for details)\n", len(pending))
		}
	}
	return nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing database: %v\n", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
