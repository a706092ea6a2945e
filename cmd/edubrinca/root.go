package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/edubrinca"
)

var (
	verbose    bool
	configPath string
	adapter    string
	storePath  string
	offline    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "edubrinca",
	Short: "Lesson plans and activity sheets for early primary school, online or offline",
	Long: `EduBrinca generates lesson plans and printable activity sheets.
It asks Google Gemini once and falls back to local templates when the model
is unavailable, so every request produces a complete result. Everything is
kept in a local store that can be exported and imported as a JSON backup.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&adapter, "store", "", "Storage adapter: fs, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&storePath, "path", "", "Store location (default: nearest store above the working directory, then the data directory)")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Never call the remote model")
}

// options merges the config file with the command line; flags win.
func options() ([]edubrinca.Option, bool, error) {
	var opts []edubrinca.Option
	hasPath := false

	if configPath != "" {
		cfg, err := edubrinca.LoadConfig(configPath)
		if err != nil {
			return nil, false, err
		}
		opts = append(opts, cfg.Options()...)
		hasPath = cfg.Store.Path != ""
	}

	opts = append(opts, edubrinca.WithLogger(slog.Default()))
	if adapter != "" {
		opts = append(opts, edubrinca.WithAdapter(adapter))
	}
	if offline {
		opts = append(opts, edubrinca.WithOffline(true))
	}
	return opts, hasPath, nil
}

// storeURI resolves the store location: --path, then the config file
// (applied through WithPath), then the nearest store above the working directory.
func storeURI(hasConfigPath bool) string {
	if storePath != "" || hasConfigPath {
		return storePath
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	root, err := edubrinca.FindStoreRoot(wd)
	if err != nil {
		return ""
	}
	return root
}

// openApp wires the application for one command.
func openApp() *edubrinca.App {
	opts, hasPath, err := options()
	if err != nil {
		fatal("Failed to load configuration", err)
	}
	app, err := edubrinca.New(storeURI(hasPath), opts...)
	if err != nil {
		fatal("Failed to initialize edubrinca", err)
	}
	return app
}

func printJSON(v any) {
	if err := encodeJSON(os.Stdout, v); err != nil {
		fatal("Failed to encode JSON", err)
	}
}

func printf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format, args...)
}
