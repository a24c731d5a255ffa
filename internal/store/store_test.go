package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/joreneng/VisualizingLifeExpectancies/internal/models"
)

func fptr(v float64) *float64 { return &v }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err, "failed to open test database")

	s := NewWithDB(db)
	require.NoError(t, s.EnsureSchema())
	return s
}

func row(indicator, country string, year int, value float64) models.Observation {
	return models.Observation{
		IndicatorID: indicator,
		CountryID:   country,
		Date:        year,
		Value:       fptr(value),
	}
}

func TestEnsureSchema(t *testing.T) {
	s := newTestStore(t)

	t.Run("Is Idempotent", func(t *testing.T) {
		require.NoError(t, s.EnsureSchema())
		require.NoError(t, s.EnsureSchema())
	})

	t.Run("Enforces The Natural Key", func(t *testing.T) {
		require.NoError(t, s.Append([]models.Observation{row("SP.DYN.LE00.IN", "US", 1960, 69.8)}))

		err := s.DB().Create(&models.Observation{
			IndicatorID: "SP.DYN.LE00.IN",
			CountryID:   "US",
			Date:        1960,
			Value:       fptr(99.9),
		}).Error
		assert.Error(t, err, "the unique index must reject a duplicate natural key")
	})
}

func TestAppendAndReadAll(t *testing.T) {
	s := newTestStore(t)

	t.Run("Empty Store Reads Empty", func(t *testing.T) {
		rows, err := s.ReadAll()
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("Round Trip", func(t *testing.T) {
		unit := "years"
		in := []models.Observation{
			{IndicatorID: "SP.DYN.LE00.IN", CountryID: "US", Date: 1960, Value: fptr(69.8), Unit: &unit},
			{IndicatorID: "SP.DYN.LE00.IN", CountryID: "US", Date: 1961, Value: fptr(70.3)},
		}
		require.NoError(t, s.Append(in))

		out, err := s.ReadAll()
		require.NoError(t, err)
		require.Len(t, out, 2)

		assert.NotZero(t, out[0].ID, "surrogate keys are assigned on insert")
		assert.Equal(t, "US", out[0].CountryID)
		require.NotNil(t, out[0].Unit)
		assert.Equal(t, "years", *out[0].Unit)
		assert.Nil(t, out[1].Unit, "null unit must stay null")
	})

	t.Run("Appending Nothing Is A No-Op", func(t *testing.T) {
		require.NoError(t, s.Append(nil))
	})

	t.Run("Duplicate Natural Key Maps To ErrDuplicateKey", func(t *testing.T) {
		err := s.Append([]models.Observation{row("SP.DYN.LE00.IN", "US", 1960, 69.8)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})
}

func TestCountByIndicator(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append([]models.Observation{
		row("SP.DYN.LE00.IN", "US", 1960, 69.8),
		row("SP.DYN.LE00.IN", "SE", 1960, 73.0),
		row("SP.POP.TOTL", "US", 1960, 180.7e6),
	}))

	counts, err := s.CountByIndicator()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"SP.DYN.LE00.IN": 2,
		"SP.POP.TOTL":    1,
	}, counts)
}
