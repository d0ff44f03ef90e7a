package trips

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tarediiran-industries.com/bikeshare-tools/internal/common"
	"tarediiran-industries.com/bikeshare-tools/internal/config"
	"tarediiran-industries.com/bikeshare-tools/internal/db"
)

var ErrNoDatabase = errors.New("no database connection")

// Loader reads a configured city's records into a Table. Nothing is cached;
// every Load rereads the source.
type Loader struct {
	cfg     config.Config
	db      db.DBTX
	metrics *common.Metrics
}

type LoaderOption func(*Loader)

// WithDatabase supplies the connection used by table-backed cities.
func WithDatabase(conn db.DBTX) LoaderOption {
	return func(loader *Loader) {
		loader.db = conn
	}
}

func WithMetrics(metrics *common.Metrics) LoaderOption {
	return func(loader *Loader) {
		loader.metrics = metrics
	}
}

func NewLoader(cfg config.Config, opts ...LoaderOption) *Loader {
	loader := &Loader{cfg: cfg}
	for _, opt := range opts {
		opt(loader)
	}
	return loader
}

func (loader *Loader) Config() config.Config {
	return loader.cfg
}

func (loader *Loader) SourceFor(city config.CityConfig) (Source, error) {
	if city.Table != "" {
		if loader.db == nil {
			return nil, fmt.Errorf("%s: %w", city.Name, ErrNoDatabase)
		}
		return SQLSource{DB: loader.db, Table: city.Table}, nil
	}
	return CSVSource{Path: loader.cfg.FilePath(city)}, nil
}

func (loader *Loader) Load(ctx context.Context, cityName string) (*Table, error) {
	city, err := loader.cfg.City(cityName)
	if err != nil {
		return nil, err
	}

	source, err := loader.SourceFor(city)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	records, err := source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", city.Name, err)
	}

	table, err := NewTable(city.Name, records)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", city.Name, err)
	}

	elapsed := time.Since(start)
	if loader.metrics != nil {
		loader.metrics.LoadSeconds.WithLabelValues(city.Name).Observe(elapsed.Seconds())
		loader.metrics.RowsLoadedTotal.WithLabelValues(city.Name).Add(float64(table.Len()))
	}

	log.Printf("Loaded %d trips for %s from %s in %s", table.Len(), city.Name, source, elapsed)
	return table, nil
}
