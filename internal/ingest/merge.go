package ingest

import "github.com/joreneng/VisualizingLifeExpectancies/internal/models"

// Merge computes exactly the rows of batch that are new with respect to the
// existing fact snapshot, keyed by (indicator_id, country_id, date). Rows
// with an empty country id or a nil value are dropped first: a fact without a
// measurable value is noise, not data. Because only keys absent from the
// snapshot survive, re-running the same batch yields no rows, which is what
// makes ingestion idempotent.
func Merge(batch, existing []models.Observation) []models.Observation {
	index := make(map[models.ObservationKey]models.Observation, len(existing))
	for _, row := range existing {
		index[row.Key()] = row
	}

	var toInsert []models.Observation
	for _, row := range batch {
		if row.CountryID == "" || row.Value == nil {
			continue
		}
		match, seen := index[row.Key()]
		if seen {
			// First write wins; a later observation of the same key is not new.
			continue
		}
		// Coalesce value/unit from either side. With set-difference semantics
		// the existing side is always the zero row here, so the fallback never
		// fires; it is kept so an upsert-style join can reuse this step as is.
		row.Value = coalesceFloat(row.Value, match.Value)
		row.Unit = coalesceString(row.Unit, match.Unit)
		row.ID = 0
		toInsert = append(toInsert, row)
		index[row.Key()] = row
	}
	return toInsert
}

func coalesceFloat(primary, fallback *float64) *float64 {
	if primary != nil {
		return primary
	}
	return fallback
}

func coalesceString(primary, fallback *string) *string {
	if primary != nil {
		return primary
	}
	return fallback
}
