package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/joreneng/VisualizingLifeExpectancies/internal/config"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/ingest"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/models"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/queries"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/store"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/worldbank"
)

func fptr(v float64) *float64 { return &v }

// StubDataSource serves a fixed record set per indicator id.
type StubDataSource struct {
	Records map[string][]worldbank.RawRecord
	Err     error
}

func (s *StubDataSource) FetchIndicator(indicatorID string, startYear, endYear int) ([]worldbank.RawRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Records[indicatorID], nil
}

func record(indicator, country, date string, value *float64) worldbank.RawRecord {
	return worldbank.RawRecord{
		Indicator: &worldbank.IndicatorRef{ID: indicator},
		Country:   &worldbank.CountryRef{ID: country},
		Date:      &date,
		Value:     value,
	}
}

type testEnv struct {
	router *gin.Engine
	store  *store.Store
	source *StubDataSource
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	st := store.NewWithDB(db)
	require.NoError(t, st.EnsureSchema())

	require.NoError(t, db.Create(&models.Region{
		CountryID: "US", CountryName: "United States of America",
		Region: "Americas", SubRegion: "Northern America",
	}).Error)

	source := &StubDataSource{Records: map[string][]worldbank.RawRecord{}}
	cfg := config.Config{StartYear: 1960, EndYear: 2025}
	windows := []config.IndicatorWindow{
		{Name: "LIFE_EXPECTANCY", IndicatorID: config.LifeExpectancy, StartYear: 1960, EndYear: 1962},
	}

	svc := ingest.NewService(source, st, windows)
	h := New(queries.New(db), svc, cfg)

	router := gin.New()
	h.RegisterRoutes(router)
	return &testEnv{router: router, store: st, source: source}
}

func (e *testEnv) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestGetAvgLifeExpectancy(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Append([]models.Observation{
		{IndicatorID: config.LifeExpectancy, CountryID: "US", Date: 1960, Value: fptr(68.0)},
		{IndicatorID: config.LifeExpectancy, CountryID: "US", Date: 1961, Value: fptr(70.0)},
	}))

	t.Run("Defaults To Configured Bounds", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/avg-life-expectancy")
		require.Equal(t, http.StatusOK, w.Code)

		var data map[string]float64
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
		assert.InDelta(t, 69.0, data["US"], 1e-9)
	})

	t.Run("Honors The Year Window", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/avg-life-expectancy?start_year=1961&end_year=1961")
		require.Equal(t, http.StatusOK, w.Code)

		var data map[string]float64
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
		assert.InDelta(t, 70.0, data["US"], 1e-9)
	})

	t.Run("Rejects A Non-Numeric Year", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/avg-life-expectancy?start_year=abc")
		require.Equal(t, http.StatusBadRequest, w.Code)

		var apiErr models.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, models.ErrorCodeValidation, apiErr.Code)
	})

	t.Run("Rejects An Inverted Window", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/avg-life-expectancy?start_year=2000&end_year=1990")
		require.Equal(t, http.StatusBadRequest, w.Code)

		var apiErr models.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, models.ErrorCodeInvalidYearRange, apiErr.Code)
	})
}

func TestTriggerRefresh(t *testing.T) {
	t.Run("Refresh Then Re-Refresh Is Idempotent", func(t *testing.T) {
		env := newTestEnv(t)
		env.source.Records[config.LifeExpectancy] = []worldbank.RawRecord{
			record(config.LifeExpectancy, "US", "1960", fptr(69.8)),
			record(config.LifeExpectancy, "US", "1961", fptr(70.3)),
			record(config.LifeExpectancy, "", "1960", fptr(5.2)), // dropped: null country
		}

		w := env.do(http.MethodPost, "/api/v1/ingest/refresh")
		require.Equal(t, http.StatusOK, w.Code)

		var summary ingest.RefreshSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, 2, summary.RowsInserted)
		assert.NotEmpty(t, summary.RunID)

		// The identical upstream data a second time inserts nothing.
		w = env.do(http.MethodPost, "/api/v1/ingest/refresh")
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Zero(t, summary.RowsInserted)

		rows, err := env.store.ReadAll()
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("No Data Upstream Maps To 502", func(t *testing.T) {
		env := newTestEnv(t)
		env.source.Err = worldbank.ErrNoData

		w := env.do(http.MethodPost, "/api/v1/ingest/refresh")
		require.Equal(t, http.StatusBadGateway, w.Code)

		var apiErr models.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, models.ErrorCodeNoData, apiErr.Code)
	})

	t.Run("Schema Mismatch Maps To 502", func(t *testing.T) {
		env := newTestEnv(t)
		bad := record(config.LifeExpectancy, "US", "1960", fptr(69.8))
		bad.Date = nil
		env.source.Records[config.LifeExpectancy] = []worldbank.RawRecord{bad}

		w := env.do(http.MethodPost, "/api/v1/ingest/refresh")
		require.Equal(t, http.StatusBadGateway, w.Code)

		var apiErr models.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, models.ErrorCodeSchemaMismatch, apiErr.Code)

		rows, err := env.store.ReadAll()
		require.NoError(t, err)
		assert.Empty(t, rows, "a rejected batch must leave the store untouched")
	})
}
