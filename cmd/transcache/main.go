// Command transcache loads translation files through the read-through cache
// and pre-warms shared stores.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/spf13/cobra"

	"github.com/wearerequired/transcache"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = transcache.Version
	commit    = transcache.GitCommit
	buildDate = transcache.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries state shared by all commands.
type app struct {
	configPath string
	logLevel   string

	cfg    *transcache.Config
	logger log.Logger
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer) error {
	a := &app{stderr: stderr}

	root := &cobra.Command{
		Use:           transcache.Name,
		Short:         transcache.Description,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newMOCommand(a),
		newScriptCommand(a),
		newWarmCommand(a),
		newImportCommand(a),
		newVersionCommand(),
	)

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(context.Background())
}

// load resolves the configuration: defaults, then file, then environment,
// then flags.
func (a *app) load() error {
	cfg := transcache.DefaultConfig()
	if a.configPath != "" {
		loaded, err := transcache.LoadFromFile(a.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	transcache.LoadFromEnv(cfg)
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = transcache.NewLogger(a.stderr, cfg.LogLevel)
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", transcache.Name, version)
			if commit != "unknown" && commit != "" {
				fmt.Fprintf(out, "  commit:  %s\n", commit)
			}
			if buildDate != "unknown" && buildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", buildDate)
			}
			return nil
		},
	}
}
