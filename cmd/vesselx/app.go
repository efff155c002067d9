package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/xraph/vesselx"
	"github.com/xraph/vesselx/manifest"
)

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Inspect vesselx registration manifests",
		Long: `vesselx validates registration manifests and previews how they apply
to a container. Every binding is try-registered: a binding whose key is
already taken is skipped, never overwritten.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(planCmd(&logLevel), validateCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func planCmd(logLevel *string) *cobra.Command {
	var (
		existing []string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "plan [manifest]",
		Short: "Preview which bindings would be registered or skipped",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := manifestPath(args)
			if err != nil {
				return err
			}

			logger, err := newLogger(*logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			report, err := plan(path, existing, logger)
			if err != nil {
				return err
			}

			return writeReport(cmd.OutOrStdout(), report, output)
		},
	}

	cmd.Flags().StringSliceVar(&existing, "existing", nil, "Keys to treat as already registered")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Check that a manifest and its includes are well formed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := manifestPath(args)
			if err != nil {
				return err
			}

			m, err := manifest.Load(path)
			if err != nil {
				return err
			}
			if err := m.Validate(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bindings ok\n", path, m.Len())
			return nil
		},
	}
}

func manifestPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if path := os.Getenv(manifestEnv); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("no manifest given and %s is not set", manifestEnv)
}

// plan applies the manifest to an empty container whose catalog accepts every
// provider, after pre-registering the existing keys.
func plan(path string, existing []string, logger *zap.Logger) (*manifest.Report, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}

	b := vesselx.NewBuilder(nil, vesselx.WithLogger(logger))
	for _, key := range existing {
		if _, err := vesselx.TryRegisterType(b, vesselx.NameKey(key), placeholder(key), vesselx.Singleton); err != nil {
			return nil, err
		}
	}

	return manifest.Apply(b, placeholderCatalog(m), m)
}

func placeholder(name string) vesselx.Factory {
	return func(vesselx.Vessel) (any, error) {
		return name, nil
	}
}

func placeholderCatalog(m *manifest.Manifest) *manifest.Catalog {
	cat := manifest.NewCatalog()
	add := func(provider string) {
		if _, ok := cat.Lookup(provider); !ok && provider != "" {
			_ = cat.Add(provider, placeholder(provider))
		}
	}

	for _, b := range m.Services {
		add(b.Provider)
	}
	for _, b := range m.EntryPoints {
		add(b.Provider)
	}
	for _, c := range m.Components {
		add(c.Provider)
	}

	return cat
}

func writeReport(w io.Writer, report *manifest.Report, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		for _, e := range report.Entries {
			mark := "+"
			detail := fmt.Sprintf("%s, %s", e.Provider, e.Lifetime)
			if e.Outcome != vesselx.OutcomeRegistered.String() {
				mark = "="
				detail = fmt.Sprintf("%s, taken by %s", e.Outcome, e.Taken)
			}
			fmt.Fprintf(w, "%s %-12s %s (%s)\n", mark, e.Section, strings.Join(e.Keys, ", "), detail)
		}
		fmt.Fprintf(w, "%d to register, %d skipped\n", len(report.Registered()), len(report.Skipped()))
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := loggerConfig(lvl)
	return cfg.Build()
}

// loggerConfig picks the development encoder for debug output and the
// production one otherwise. Both write to stderr so stdout stays parseable.
func loggerConfig(lvl zapcore.Level) zap.Config {
	cfg := zap.NewProductionConfig()
	if lvl <= zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg
}
