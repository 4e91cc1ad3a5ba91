// Package main provides the ontoschema binary entry point.
// Ontoschema generates JSON Schema documents from an ontology class model
// and a set of constraint shapes.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontoschema/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "ontoschema"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions carries flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Ontology to JSON Schema generator",
		Long: `Ontoschema reads a class/property model and a set of constraint shapes
and emits one self-contained JSON Schema document per class plus a
combined document cross-referencing all classes.

The class model is accepted in RDF/XML with an automatic fallback to a
Turtle subset; constraint shapes are authored in the Turtle subset only.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// setup configures logging and loads the layered configuration.
func (o *globalOptions) setup() (*slog.Logger, *config.Config, error) {
	level := slog.LevelInfo
	switch strings.ToLower(o.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var cfg *config.Config
	var err error
	if o.configPath != "" {
		cfg, err = config.LoadFromFile(o.configPath)
	} else {
		cfg, err = config.NewLoader(logger).Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return logger, cfg, nil
}
