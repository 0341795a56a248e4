package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wearerequired/transcache"
	"github.com/wearerequired/transcache/cache"
	"github.com/wearerequired/transcache/gettext"
	"github.com/wearerequired/transcache/warmup"
)

// adapters bundles everything a command needs to drive the cache.
type adapters struct {
	store      cache.Store
	closer     io.Closer
	l10n       *transcache.L10n
	domains    *transcache.TextdomainRegistry
	registry   *prometheus.Registry
	textdomain *transcache.Textdomain
	scripts    *transcache.ScriptTranslations
}

func (a *app) adapters(ctx context.Context) (*adapters, error) {
	store, closer, err := a.cfg.OpenStore(ctx, a.logger)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	opts := append(a.cfg.Options(),
		transcache.WithLogger(a.logger),
		transcache.WithMetrics(transcache.NewMetrics("transcache", registry)),
	)
	c := cache.New(store, cache.WithLogger(a.logger))

	ad := &adapters{
		store:    store,
		closer:   closer,
		l10n:     transcache.NewL10n(),
		domains:  transcache.NewTextdomainRegistry(),
		registry: registry,
	}
	ad.textdomain = transcache.NewTextdomain(c, gettext.NewMOParser(), ad.domains, ad.l10n, opts...)
	ad.scripts = transcache.NewScriptTranslations(c, gettext.NewJSONScriptLoader(a.logger), opts...)
	return ad, nil
}

// catalogOutput is the JSON form of a loaded catalog.
type catalogOutput struct {
	Domain    string              `json:"domain"`
	Locale    string              `json:"locale,omitempty"`
	Directory *string             `json:"directory,omitempty"`
	Entries   map[string][]string `json:"entries"`
	Headers   map[string]string   `json:"headers"`
}

func newMOCommand(a *app) *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "mo DOMAIN MOFILE",
		Short: "Load a gettext catalog through the cache and print it as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, mofile := args[0], args[1]
			ctx := cmd.Context()

			ad, err := a.adapters(ctx)
			if err != nil {
				return err
			}
			defer ad.closer.Close()

			if locale == "" {
				locale = a.cfg.LocaleFunc()()
			}
			ad.textdomain.Filter(ctx, false, domain, mofile, locale)

			out := catalogOutput{Domain: domain, Locale: locale, Entries: map[string][]string{}, Headers: map[string]string{}}
			if dir, known := ad.domains.Get(domain, locale); known {
				out.Directory = &dir
			}
			if catalog, ok := ad.l10n.Get(domain); ok {
				out.Entries = catalog.Entries
				out.Headers = catalog.Headers
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "Locale (default: from config or environment)")
	return cmd
}

func newScriptCommand(a *app) *cobra.Command {
	var handle, domain string

	cmd := &cobra.Command{
		Use:   "script FILE",
		Short: "Load JSON script translations through the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ad, err := a.adapters(ctx)
			if err != nil {
				return err
			}
			defer ad.closer.Close()

			got := ad.scripts.Filter(ctx, nil, args[0], handle, domain)
			if !got.Found {
				fmt.Fprintln(cmd.OutOrStdout(), "false")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), got.JSON)
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "Script handle")
	cmd.Flags().StringVar(&domain, "domain", "default", "Text domain")
	_ = cmd.MarkFlagRequired("handle")
	return cmd
}

func newWarmCommand(a *app) *cobra.Command {
	var (
		concurrency int
		scripts     []string
		exportPath  string
		metricsPath string
	)

	cmd := &cobra.Command{
		Use:   "warm DIR",
		Short: "Populate the store with every catalog below DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			jobs, err := warmup.Discover(args[0])
			if err != nil {
				return fmt.Errorf("scanning %s: %w", args[0], err)
			}
			scriptJobs, err := parseScriptJobs(scripts)
			if err != nil {
				return err
			}

			ad, err := a.adapters(ctx)
			if err != nil {
				return err
			}
			defer ad.closer.Close()

			start := time.Now()
			w := warmup.New(ad.textdomain, ad.scripts, warmup.Config{Concurrency: concurrency}, a.logger)
			report, err := w.Run(ctx, jobs, scriptJobs)
			if err != nil {
				return fmt.Errorf("warm-up failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Done in %v\n", time.Since(start).Round(time.Millisecond))
			fmt.Fprintf(out, "  Catalogs:        %d\n", report.Catalogs)
			fmt.Fprintf(out, "  Scripts:         %d\n", report.Scripts)
			fmt.Fprintf(out, "  Scripts missing: %d\n", report.ScriptsMissing)

			if metricsPath != "" {
				if err := prometheus.WriteToTextfile(metricsPath, ad.registry); err != nil {
					return fmt.Errorf("writing metrics: %w", err)
				}
			}

			if exportPath != "" {
				snap, ok := ad.store.(cache.SnapshotStore)
				if !ok {
					return fmt.Errorf("store backend %q does not support export", a.cfg.Store.Backend)
				}
				meta := map[string]string{"source": args[0], "version": transcache.FullVersion()}
				if err := cache.NewExporter(snap).ExportToFile(exportPath, meta); err != nil {
					return fmt.Errorf("exporting snapshot: %w", err)
				}
				level.Info(a.logger).Log("msg", "snapshot written", "path", exportPath)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of files loaded at once")
	cmd.Flags().StringArrayVar(&scripts, "script", nil, "Script translation to warm as FILE:HANDLE:DOMAIN (repeatable)")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write a snapshot of the store (memory backend only)")
	cmd.Flags().StringVar(&metricsPath, "metrics-file", "", "Write Prometheus metrics in textfile format")
	return cmd
}

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import SNAPSHOT",
		Short: "Add the entries of a snapshot to the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closer, err := a.cfg.OpenStore(ctx, a.logger)
			if err != nil {
				return err
			}
			defer closer.Close()

			result, err := cache.NewImporter(store).ImportFromFile(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries, skipped %d already present\n", result.Imported, result.Skipped)
			return nil
		},
	}
}

// parseScriptJobs parses FILE:HANDLE:DOMAIN flag values. The file may itself
// contain colons, so the last two fields are split off the right.
func parseScriptJobs(values []string) ([]warmup.ScriptJob, error) {
	jobs := make([]warmup.ScriptJob, 0, len(values))
	for _, v := range values {
		i := strings.LastIndex(v, ":")
		if i <= 0 {
			return nil, fmt.Errorf("invalid --script %q: want FILE:HANDLE:DOMAIN", v)
		}
		rest, domain := v[:i], v[i+1:]
		j := strings.LastIndex(rest, ":")
		if j <= 0 || domain == "" || j == len(rest)-1 {
			return nil, fmt.Errorf("invalid --script %q: want FILE:HANDLE:DOMAIN", v)
		}
		jobs = append(jobs, warmup.ScriptJob{File: rest[:j], Handle: rest[j+1:], Domain: domain})
	}
	return jobs, nil
}
