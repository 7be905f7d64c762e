// Package cmd provides the CLI commands for potcost.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pottery-cost/adapters/presets"
	"pottery-cost/adapters/profile"
	"pottery-cost/adapters/storage"
	"pottery-cost/core/session"
	"pottery-cost/core/types"
	"pottery-cost/core/ui"
	"pottery-cost/internal/config"
	"pottery-cost/internal/errors"
	"pottery-cost/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile  string
	verbose  bool
	noColor  bool
	currency string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "potcost",
	Short: "Cost and price handmade pottery",
	Long: `potcost works out what one finished piece of pottery costs to make
(clay, glaze, packaging, other materials, kiln energy, labor and overhead)
and suggests wholesale and retail prices.

Examples:
  potcost estimate mugs.hcl
  potcost estimate --preset "Mug (12 oz)" --format markdown
  potcost recipe celadon.hcl --batch 5 --unit kg
  potcost shipping --weight 1.2 --dims 30x20x15 --zone zone2`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	err := rootCmd.Execute()
	if err != nil {
		newWriter().Error("%v", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pottery-cost/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&currency, "currency", "", "currency symbol to display (USD, EUR, GBP)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if currency != "" {
		cfg.Currency = types.Currency(strings.ToUpper(strings.TrimSpace(currency)))
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

func newWriter() *ui.Writer {
	w := ui.NewWriter(os.Stdout, noColor || config.Get().Output.NoColor)
	if verbose {
		w.SetVerbosity(2)
	}
	return w
}

// loadSession reads the profile named by args, or starts a new session
func loadSession(args []string) (*profile.Profile, error) {
	if len(args) == 0 {
		return &profile.Profile{Session: session.Default()}, nil
	}
	p, err := profile.Load(args[0])
	if err != nil {
		return nil, err
	}
	for _, f := range p.Fallbacks {
		logging.Debug("setting took its default: " + f)
	}
	return p, nil
}

func presetLoader() *presets.Loader {
	cfg := config.Get().Presets
	return presets.NewLoader(presets.LoaderConfig{
		URL:     cfg.URL,
		TTL:     time.Duration(cfg.CacheTTLSeconds) * time.Second,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		Logger:  logging.Named("presets"),
	})
}

// applyPreset looks the form up and copies it into the session
func applyPreset(ctx context.Context, name string, s *session.Session) (presets.Preset, error) {
	list, _ := presetLoader().Load(ctx)
	p, ok := presets.Find(list, name)
	if !ok {
		return presets.Preset{}, errors.NotFound("preset", name)
	}
	presets.Apply(p, s)
	return p, nil
}

func openStore(ctx context.Context) (storage.Store, error) {
	cfg := config.Get().Storage
	return storage.Open(ctx, cfg.Driver, cfg.DSN)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("potcost version %s\n", Version)
	},
}
