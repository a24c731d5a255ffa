package ingest

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/joreneng/VisualizingLifeExpectancies/internal/config"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/models"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/worldbank"
)

// DataSource defines the operations the ingestion service needs from the
// remote indicator API. This allows for easier testing and decoupling.
type DataSource interface {
	FetchIndicator(indicatorID string, startYear, endYear int) ([]worldbank.RawRecord, error)
}

// FactStore defines the persistence operations the ingestion service needs.
type FactStore interface {
	ReadAll() ([]models.Observation, error)
	Append(rows []models.Observation) error
}

// Service drives fetch -> normalize -> merge -> append for the configured
// indicator windows. It is the single writer of the fact table; at most one
// refresh is expected to run at a time.
type Service struct {
	source     DataSource
	store      FactStore
	indicators []config.IndicatorWindow
}

// NewService creates an ingestion Service over the given source and store.
func NewService(source DataSource, store FactStore, indicators []config.IndicatorWindow) *Service {
	return &Service{
		source:     source,
		store:      store,
		indicators: indicators,
	}
}

// RefreshSummary reports the outcome of one refresh run.
type RefreshSummary struct {
	RunID        string         `json:"run_id"`
	RowsInserted int            `json:"rows_inserted"`
	PerIndicator map[string]int `json:"per_indicator"`
}

// RefreshIndicator ingests one indicator window and returns the number of
// rows inserted. Errors from any stage abort the window before the store is
// mutated; a failed append surfaces the store error as is.
func (s *Service) RefreshIndicator(w config.IndicatorWindow) (int, error) {
	records, err := s.source.FetchIndicator(w.IndicatorID, w.StartYear, w.EndYear)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s (%s) for %d:%d: %w",
			w.Name, w.IndicatorID, w.StartYear, w.EndYear, err)
	}

	batch, err := Normalize(records)
	if err != nil {
		return 0, fmt.Errorf("failed to normalize %s batch: %w", w.Name, err)
	}

	existing, err := s.store.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read existing facts for %s merge: %w", w.Name, err)
	}

	rows := Merge(batch, existing)
	if len(rows) == 0 {
		log.Printf("Indicator %s (%s): batch of %d rows contained nothing new", w.Name, w.IndicatorID, len(batch))
		return 0, nil
	}

	if err := s.store.Append(rows); err != nil {
		return 0, fmt.Errorf("failed to append %d new rows for %s: %w", len(rows), w.Name, err)
	}
	log.Printf("Indicator %s (%s): inserted %d of %d fetched rows", w.Name, w.IndicatorID, len(rows), len(batch))
	return len(rows), nil
}

// RefreshAll ingests every configured indicator window in sequence. The first
// failure aborts the whole run; there is no per-indicator retry.
func (s *Service) RefreshAll() (RefreshSummary, error) {
	summary := RefreshSummary{
		RunID:        uuid.New().String(),
		PerIndicator: make(map[string]int, len(s.indicators)),
	}
	log.Printf("Starting refresh run %s over %d indicators", summary.RunID, len(s.indicators))

	for _, w := range s.indicators {
		inserted, err := s.RefreshIndicator(w)
		if err != nil {
			return summary, fmt.Errorf("refresh run %s aborted at %s: %w", summary.RunID, w.Name, err)
		}
		summary.PerIndicator[w.Name] = inserted
		summary.RowsInserted += inserted
	}

	log.Printf("Refresh run %s completed: %d rows inserted", summary.RunID, summary.RowsInserted)
	return summary, nil
}
