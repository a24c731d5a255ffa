package models

// Observation is one fact row of the databank table: a single indicator value
// for one country and one year. The (IndicatorID, CountryID, Date) triple is
// the natural key and is enforced by a composite unique index; Value and Unit
// are the only non-key attributes and may be null in upstream data.
type Observation struct {
	ID          uint     `json:"id" gorm:"primaryKey;autoIncrement"`
	Date        int      `json:"date" gorm:"uniqueIndex:idx_databank_unique"`
	IndicatorID string   `json:"indicator_id" gorm:"type:text;uniqueIndex:idx_databank_unique"`
	CountryID   string   `json:"country_id" gorm:"type:text;uniqueIndex:idx_databank_unique"`
	Unit        *string  `json:"unit,omitempty" gorm:"type:text"`
	Value       *float64 `json:"value,omitempty"`
}

// TableName keeps the table name of the original cache schema.
func (Observation) TableName() string { return "databank" }

// ObservationKey is the natural key of an Observation, used by the merge
// engine for the set difference against the existing snapshot.
type ObservationKey struct {
	IndicatorID string
	CountryID   string
	Date        int
}

// Key returns the natural key of the observation.
func (o Observation) Key() ObservationKey {
	return ObservationKey{IndicatorID: o.IndicatorID, CountryID: o.CountryID, Date: o.Date}
}

// Region is a dimension row joined against facts at read time. Facts whose
// country id has no region row are silently dropped by the read-side joins.
type Region struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	CountryID   string `json:"country_id" gorm:"type:text;not null"`
	CountryName string `json:"country_name" gorm:"type:text;not null"`
	Region      string `json:"region" gorm:"type:text;not null"`
	SubRegion   string `json:"sub_region" gorm:"type:text;not null"`
}

func (Region) TableName() string { return "regions" }

// ISO2Code maps a 2-letter country code to its display name, populated from
// the upstream country listing endpoint.
type ISO2Code struct {
	ID      string `json:"id" gorm:"type:text;primaryKey"`
	Country string `json:"country" gorm:"type:text"`
}

func (ISO2Code) TableName() string { return "iso2_codes" }

// CountryCode mirrors ISO2Code but is post-processed to hold real countries
// only: aggregate ids (regions, income groups) are deleted after bootstrap.
type CountryCode struct {
	ID      string `json:"id" gorm:"type:text;primaryKey"`
	Country string `json:"country" gorm:"type:text"`
}

func (CountryCode) TableName() string { return "country_codes" }

// BubbleObject is one country's point for the wealth-health bubble chart.
type BubbleObject struct {
	Name       string   `json:"name"`
	Region     string   `json:"region"`
	HealthExp  *float64 `json:"health_exp"`
	Population *float64 `json:"population"`
	LifeExp    *float64 `json:"life_exp"`
}

// LineChartPoint is one (country, year, value) sample for the line chart.
type LineChartPoint struct {
	Name  string  `json:"name"`
	Date  int     `json:"date"`
	Value float64 `json:"value"`
}

// DeathCause is one ranked cause-of-death bar. Category carries the region
// name, which the frontend uses for color grouping.
type DeathCause struct {
	Date     int     `json:"date"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}
