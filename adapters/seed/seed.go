// Package seed hydrates the catalog from flat CSV files at startup.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/chunkinator/astroneer/adapters/metrics"
	"github.com/chunkinator/astroneer/domain/catalog"
	"github.com/chunkinator/astroneer/ports"
	"github.com/rs/zerolog"
)

// Row outcomes, used as metric labels.
const (
	outcomeLoaded    = "loaded"
	outcomeDuplicate = "duplicate"
	outcomeSkipped   = "skipped"
)

// ModuleFile pairs a module CSV with the printer that crafts every row in it.
type ModuleFile struct {
	File    string
	Printer string
}

// Deps contains dependencies for the loader.
type Deps struct {
	Source  ports.SeedSource
	Store   ports.CatalogStore
	Logger  zerolog.Logger
	Metrics *metrics.Collector // optional

	Modules       []ModuleFile
	ResourcesFile string

	// Strict turns the first duplicate name into an error.
	Strict bool
	// Optional tolerates files missing from the source.
	Optional bool
}

// Stats summarizes one hydration run.
type Stats struct {
	Modules    int `json:"modules"`
	Resources  int `json:"resources"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
	Missing    int `json:"missing_files"`
}

// Loader populates a store from CSV files.
type Loader struct {
	deps Deps
}

// NewLoader creates a loader.
func NewLoader(deps Deps) *Loader {
	return &Loader{deps: deps}
}

// Load reads every module file in order, then the resources file.
// Rows go through the store's create path, so invariants hold for seeded data too.
func (l *Loader) Load(ctx context.Context) (Stats, error) {
	var stats Stats
	start := time.Now()
	log := l.deps.Logger.With().Str("source", l.deps.Source.Describe()).Logger()

	for _, mf := range l.deps.Modules {
		err := l.eachFile(ctx, mf.File, &stats, func(row []string) error {
			return l.moduleRow(ctx, mf, row, &stats)
		})
		if err != nil {
			return stats, err
		}
	}

	if l.deps.ResourcesFile != "" {
		err := l.eachFile(ctx, l.deps.ResourcesFile, &stats, func(row []string) error {
			return l.resourceRow(ctx, row, &stats)
		})
		if err != nil {
			return stats, err
		}
	}

	if l.deps.Metrics != nil {
		l.deps.Metrics.HydrationDuration.Observe(time.Since(start).Seconds())
		l.deps.Metrics.SetCounts(l.deps.Store.Counts(ctx))
	}

	log.Info().
		Int("modules", stats.Modules).
		Int("resources", stats.Resources).
		Int("duplicates", stats.Duplicates).
		Int("skipped", stats.Skipped).
		Dur("took", time.Since(start)).
		Msg("catalog hydrated")

	return stats, nil
}

func (l *Loader) eachFile(ctx context.Context, name string, stats *Stats, fn func([]string) error) error {
	rc, err := l.deps.Source.Open(ctx, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && l.deps.Optional {
			stats.Missing++
			l.deps.Logger.Warn().Str("file", name).Msg("hydration file missing, skipped")
			return nil
		}
		return fmt.Errorf("hydrate %s: %w", name, err)
	}
	defer rc.Close()

	if err := eachRow(rc, fn); err != nil {
		return fmt.Errorf("hydrate %s: %w", name, err)
	}
	return nil
}

// eachRow calls fn for every CSV record. Records may have any number of fields.
func eachRow(r io.Reader, fn func([]string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

func (l *Loader) moduleRow(ctx context.Context, mf ModuleFile, row []string, stats *Stats) error {
	if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
		l.skip(catalog.CollectionModules, mf.File, row, stats)
		return nil
	}

	m := catalog.Module{
		Name:         strings.TrimSpace(row[0]),
		ResourceCost: []string{strings.TrimSpace(row[1])},
		Printer:      mf.Printer,
	}
	return l.created(catalog.CollectionModules, m.Name, l.deps.Store.CreateModule(ctx, m), stats, &stats.Modules)
}

func (l *Loader) resourceRow(ctx context.Context, row []string, stats *Stats) error {
	if len(row) < 1 || strings.TrimSpace(row[0]) == "" {
		l.skip(catalog.CollectionResources, l.deps.ResourcesFile, row, stats)
		return nil
	}

	r := catalog.Resource{
		Name:        strings.TrimSpace(row[0]),
		Found:       catalog.ParseList(column(row, 1)),
		CraftedIn:   catalog.ParseList(column(row, 2)),
		RefinedWith: catalog.ParseList(column(row, 3)),
		Rate:        catalog.ParseList(column(row, 4)),
	}
	return l.created(catalog.CollectionResources, r.Name, l.deps.Store.CreateResource(ctx, r), stats, &stats.Resources)
}

// created accounts for the result of a create call.
func (l *Loader) created(collection, name string, err error, stats *Stats, loaded *int) error {
	switch {
	case err == nil:
		*loaded++
		l.deps.Metrics.RecordHydrationRow(collection, outcomeLoaded)
		return nil
	case errors.Is(err, catalog.ErrConflict):
		if l.deps.Strict {
			return fmt.Errorf("duplicate %s %q: %w", collection, name, err)
		}
		stats.Duplicates++
		l.deps.Metrics.RecordHydrationRow(collection, outcomeDuplicate)
		l.deps.Logger.Warn().Str("collection", collection).Str("name", name).Msg("duplicate row skipped")
		return nil
	default:
		return err
	}
}

func (l *Loader) skip(collection, file string, row []string, stats *Stats) {
	stats.Skipped++
	l.deps.Metrics.RecordHydrationRow(collection, outcomeSkipped)
	l.deps.Logger.Debug().Str("file", file).Strs("row", row).Msg("short row skipped")
}

// column returns row[i], or "" past the end of the row.
func column(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
