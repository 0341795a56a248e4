// Package warmup populates a cold shared store, typically right after a
// deploy or a salt change, so that workers start out with cache hits.
package warmup

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/wearerequired/transcache"
)

// CatalogJob loads one .mo file through the textdomain adapter.
type CatalogJob struct {
	Domain string
	Locale string
	Path   string
}

// ScriptJob loads one JSON file through the script translation adapter.
// The handle cannot be recovered from the file name and must be given.
type ScriptJob struct {
	File   string
	Handle string
	Domain string
}

// Config controls warm-up behavior.
type Config struct {
	// Concurrency bounds the number of files loaded at once.
	Concurrency int
}

// Normalize returns a configuration with defaults applied.
func (c Config) Normalize() Config {
	config := c
	if config.Concurrency <= 0 {
		config.Concurrency = 4
	}
	return config
}

// Report summarizes a warm-up run.
type Report struct {
	Catalogs       int // catalogs handed to the textdomain adapter
	Scripts        int // script files handed to the script adapter
	ScriptsMissing int // script files that had no translations
}

// Warmer drives jobs through the adapters.
type Warmer struct {
	textdomain *transcache.Textdomain
	scripts    *transcache.ScriptTranslations
	config     Config
	logger     log.Logger
}

// New creates a Warmer. Either adapter may be nil when the matching jobs
// are never submitted.
func New(td *transcache.Textdomain, scripts *transcache.ScriptTranslations, cfg Config, logger log.Logger) *Warmer {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Warmer{
		textdomain: td,
		scripts:    scripts,
		config:     cfg.Normalize(),
		logger:     logger,
	}
}

// Run loads every job. It stops early only when ctx is cancelled.
func (w *Warmer) Run(ctx context.Context, catalogs []CatalogJob, scripts []ScriptJob) (Report, error) {
	var (
		nCatalogs, nScripts, nMissing atomic.Int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.config.Concurrency)

	for _, job := range catalogs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w.textdomain.Filter(ctx, false, job.Domain, job.Path, job.Locale)
			nCatalogs.Add(1)
			level.Debug(w.logger).Log("msg", "warmed catalog", "domain", job.Domain, "locale", job.Locale)
			return nil
		})
	}

	for _, job := range scripts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if got := w.scripts.Filter(ctx, nil, job.File, job.Handle, job.Domain); !got.Found {
				nMissing.Add(1)
			}
			nScripts.Add(1)
			return nil
		})
	}

	err := g.Wait()
	report := Report{
		Catalogs:       int(nCatalogs.Load()),
		Scripts:        int(nScripts.Load()),
		ScriptsMissing: int(nMissing.Load()),
	}
	level.Info(w.logger).Log("msg", "warm-up finished", "catalogs", report.Catalogs, "scripts", report.Scripts, "scripts_missing", report.ScriptsMissing)
	return report, err
}

// Discover walks dir for .mo files named "{domain}-{locale}.mo". Core
// catalogs named "{locale}.mo" get the "default" domain. Results are
// sorted by path.
func Discover(dir string) ([]CatalogJob, error) {
	var jobs []CatalogJob
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".mo" {
			return nil
		}
		domain, locale := splitCatalogName(strings.TrimSuffix(d.Name(), ".mo"))
		jobs = append(jobs, CatalogJob{Domain: domain, Locale: locale, Path: path})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Path < jobs[j].Path })
	return jobs, nil
}

func splitCatalogName(name string) (domain, locale string) {
	i := strings.LastIndex(name, "-")
	if i < 0 {
		return "default", name
	}
	return name[:i], name[i+1:]
}
