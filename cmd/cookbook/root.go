package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyhub-apps/cookbook-pdf/pkg/config"
	"github.com/pyhub-apps/cookbook-pdf/pkg/fetch"
	"github.com/pyhub-apps/cookbook-pdf/pkg/titles"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	configPath string
	verbose    bool
	policyName string
	backend    string
	validate   bool

	cfg    *config.AppConfig
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cookbook",
	Short: "Extract recipe titles from PDF cookbooks",
	Long: `cookbook reads a PDF cookbook from a URL or a local file and lists the recipe
titles found in it, using either the font size (size) or the font style (style)
of each text span.

Configuration is read from cookbook.yaml or ~/.config/cookbook/config.yaml and
can be overridden with COOKBOOK_* environment variables, a .env file or flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		if err := config.LoadEnv(); err != nil {
			return err
		}

		var err error
		if configPath != "" {
			cfg, err = config.Load(configPath)
		} else {
			var path string
			cfg, path, err = config.LoadDefault()
			logger.Debug("loaded config", "path", path)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ApplyEnv(); err != nil {
			return err
		}

		if cmd.Flags().Changed("policy") {
			cfg.Policy = policyName
		}
		if cmd.Flags().Changed("backend") {
			cfg.PDF.Backend = backend
		}
		if cmd.Flags().Changed("validate") {
			cfg.PDF.Validate = validate
		}
		return cfg.Validate()
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cookbook {{.Version}}\n")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&policyName, "policy", "p", "size", "Title policy (size, style)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "ledongthuc", "PDF backend (ledongthuc, dslipak, auto)")
	rootCmd.PersistentFlags().BoolVar(&validate, "validate", false, "Validate the PDF with pdfcpu before extraction")
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

// sourceArg returns the first argument or the configured cookbook URL.
func sourceArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return cfg.Source.URL
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// readSource returns the bytes of a cookbook given as a URL or a path.
func readSource(ctx context.Context, source string) ([]byte, error) {
	if isURL(source) {
		return fetch.New(cfg.FetchOptions()).Fetch(ctx, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func currentPolicy() titles.Policy {
	// cfg.Validate has already checked the name
	p, _ := titles.Lookup(cfg.Policy)
	return p
}
