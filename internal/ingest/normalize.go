package ingest

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/joreneng/VisualizingLifeExpectancies/internal/models"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/worldbank"
)

// ErrEmptyResult is returned when a fetch produced no records at all.
var ErrEmptyResult = errors.New("empty result: no records to normalize")

// ErrSchemaMismatch is returned when the fetched records cannot be projected
// onto the five-column fact schema. The whole batch is rejected; there is no
// partial acceptance.
var ErrSchemaMismatch = errors.New("data is missing required columns")

// Normalize flattens raw API records into fact rows, projecting exactly
// {indicator_id, country_id, date, value, unit}. A record without the
// indicator or country sub-object or without a parsable year fails the whole
// batch. Null country ids (empty after flattening) and null values survive
// normalization; filtering them is merge policy, not a schema concern.
func Normalize(records []worldbank.RawRecord) ([]models.Observation, error) {
	if len(records) == 0 {
		return nil, ErrEmptyResult
	}

	batch := make([]models.Observation, 0, len(records))
	for i, r := range records {
		if r.Indicator == nil || r.Country == nil || r.Date == nil {
			return nil, fmt.Errorf("record %d lacks indicator/country/date: %w", i, ErrSchemaMismatch)
		}
		year, err := strconv.Atoi(*r.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d has non-numeric date %q: %w", i, *r.Date, ErrSchemaMismatch)
		}
		batch = append(batch, models.Observation{
			IndicatorID: r.Indicator.ID,
			CountryID:   r.Country.ID,
			Date:        year,
			Value:       r.Value,
			Unit:        r.Unit,
		})
	}
	return batch, nil
}
