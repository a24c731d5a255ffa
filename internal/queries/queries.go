// Package queries holds the read-side aggregation over the fact schema. Each
// query produces a chart-ready shape for the frontend; all of them join facts
// to the regions dimension, which silently drops observations whose country
// id has no region row.
package queries

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/joreneng/VisualizingLifeExpectancies/internal/config"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/models"
)

// Queries executes the chart aggregations against an open database.
type Queries struct {
	db *gorm.DB
}

// New creates a Queries over the given connection.
func New(db *gorm.DB) *Queries {
	return &Queries{db: db}
}

// AvgLifeExpectancy returns the average life expectancy per country over the
// year window, keyed by country id. Feeds the choropleth.
func (q *Queries) AvgLifeExpectancy(startYear, endYear int) (map[string]float64, error) {
	type row struct {
		CountryID string
		AvgValue  float64
	}
	var rows []row
	err := q.db.Raw(`
		SELECT country_id, AVG(value) AS avg_value
		FROM databank
		WHERE indicator_id = ?
		  AND date BETWEEN ? AND ?
		GROUP BY country_id`,
		config.LifeExpectancy, startYear, endYear).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("avg life expectancy query failed: %w", err)
	}

	data := make(map[string]float64, len(rows))
	for _, r := range rows {
		data[r.CountryID] = r.AvgValue
	}
	return data, nil
}

// LifeExpectancySeries returns per-country life expectancy samples over the
// year window, ordered by country then year. Feeds the line chart.
func (q *Queries) LifeExpectancySeries(startYear, endYear int) ([]models.LineChartPoint, error) {
	var points []models.LineChartPoint
	err := q.db.Raw(`
		SELECT r.country_name AS name, d.date, d.value
		FROM databank d
		JOIN regions r ON d.country_id = r.country_id
		WHERE d.indicator_id = ?
		  AND d.date BETWEEN ? AND ?
		  AND d.value IS NOT NULL
		ORDER BY r.country_name, d.date`,
		config.LifeExpectancy, startYear, endYear).Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("life expectancy series query failed: %w", err)
	}
	return points, nil
}

// WealthHealth returns, per year, each country's population, health
// expenditure and life expectancy pivoted into one object. Feeds the bubble
// chart; years without data map to empty slices so the frontend can scrub
// through the whole range.
func (q *Queries) WealthHealth(startYear, endYear int) (map[int][]models.BubbleObject, error) {
	type row struct {
		Name       string
		Region     string
		Date       int
		Population *float64
		HealthExp  *float64
		LifeExp    *float64
	}
	var rows []row
	err := q.db.Raw(`
		SELECT r.country_name AS name, r.region, d.date,
		       MAX(CASE WHEN d.indicator_id = ? THEN d.value END) AS population,
		       MAX(CASE WHEN d.indicator_id = ? THEN d.value END) AS health_exp,
		       MAX(CASE WHEN d.indicator_id = ? THEN d.value END) AS life_exp
		FROM databank d
		JOIN regions r ON d.country_id = r.country_id
		WHERE d.indicator_id IN (?, ?, ?)
		  AND d.date BETWEEN ? AND ?
		GROUP BY r.country_name, r.region, d.date
		ORDER BY d.date, r.country_name`,
		config.Population, config.HealthExpenditure, config.LifeExpectancy,
		config.Population, config.HealthExpenditure, config.LifeExpectancy,
		startYear, endYear).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("wealth-health query failed: %w", err)
	}

	data := make(map[int][]models.BubbleObject, endYear-startYear+1)
	for year := startYear; year <= endYear; year++ {
		data[year] = []models.BubbleObject{}
	}
	for _, r := range rows {
		data[r.Date] = append(data[r.Date], models.BubbleObject{
			Name:       r.Name,
			Region:     r.Region,
			Population: r.Population,
			HealthExp:  r.HealthExp,
			LifeExp:    r.LifeExp,
		})
	}
	return data, nil
}

// deathCausesTopN bounds the ranked bars per year.
const deathCausesTopN = 12

// DeathCauses returns the top-ranked cause-of-death shares per year across
// the three cause indicators, region attached as the color category. Feeds
// the bar-chart race.
func (q *Queries) DeathCauses(startYear, endYear int) ([]models.DeathCause, error) {
	var causes []models.DeathCause
	err := q.db.Raw(`
		WITH ranked_causes AS (
			SELECT d.date,
			       r.country_name AS name,
			       r.region AS category,
			       d.value,
			       RANK() OVER (PARTITION BY d.date ORDER BY d.value DESC) AS rnk
			FROM databank d
			JOIN regions r ON d.country_id = r.country_id
			WHERE d.date BETWEEN ? AND ?
			  AND d.indicator_id IN (?, ?, ?)
			  AND d.value IS NOT NULL
		)
		SELECT date, name, category, value
		FROM ranked_causes
		WHERE rnk <= ?
		ORDER BY date, value DESC`,
		startYear, endYear,
		config.DeathCommDiseases, config.DeathInjury, config.DeathNonComm,
		deathCausesTopN).Scan(&causes).Error
	if err != nil {
		return nil, fmt.Errorf("death causes query failed: %w", err)
	}
	return causes, nil
}
