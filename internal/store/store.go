package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/joreneng/VisualizingLifeExpectancies/internal/config"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/models"
)

// ErrDuplicateKey reports a violation of the (indicator_id, country_id, date)
// unique index. The merge engine's set difference is supposed to make this
// impossible, so hitting it means the merge logic is broken; callers must not
// swallow it.
var ErrDuplicateKey = errors.New("observation unique index violated")

// Store is the gorm-backed fact store. It owns schema creation for the
// databank table and the dimension tables and is the durability boundary of
// the ingestion pipeline.
type Store struct {
	db *gorm.DB
}

// insertBatchSize bounds one INSERT's bind variables under sqlite's limit.
const insertBatchSize = 500

// Open connects to the database selected by the config: sqlite by default,
// postgres when configured with a DSN.
func Open(cfg config.Config) (*Store, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.PostgresDSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an already-open gorm connection. Used by tests and by
// consumers that share one connection across components.
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection for the read-side query layer.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// EnsureSchema creates the databank table with its composite unique index and
// the dimension tables if they are absent. Idempotent; safe on every start.
func (s *Store) EnsureSchema() error {
	err := s.db.AutoMigrate(
		&models.Observation{},
		&models.Region{},
		&models.ISO2Code{},
		&models.CountryCode{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return nil
}

// ReadAll returns every stored observation. The merge engine compares against
// this full snapshot; the table is bounded by indicators x countries x years,
// so a full scan stays in the tens of thousands of rows.
func (s *Store) ReadAll() ([]models.Observation, error) {
	var rows []models.Observation
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read fact table: %w", err)
	}
	return rows, nil
}

// Append bulk-inserts new observation rows. A unique-index violation is
// mapped to ErrDuplicateKey so the caller can tell a merge-logic bug apart
// from ordinary database trouble.
func (s *Store) Append(rows []models.Observation) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(rows, insertBatchSize).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("append of %d rows hit an existing natural key: %w", len(rows), ErrDuplicateKey)
		}
		return fmt.Errorf("failed to insert %d observation rows: %w", len(rows), err)
	}
	return nil
}

// CountByIndicator reports stored row counts per indicator, handy for
// refresh logging and sanity checks.
func (s *Store) CountByIndicator() (map[string]int64, error) {
	type pair struct {
		IndicatorID string
		N           int64
	}
	var pairs []pair
	err := s.db.Model(&models.Observation{}).
		Select("indicator_id, COUNT(*) AS n").
		Group("indicator_id").
		Scan(&pairs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count facts per indicator: %w", err)
	}
	counts := make(map[string]int64, len(pairs))
	for _, p := range pairs {
		counts[p.IndicatorID] = p.N
	}
	return counts, nil
}

// isUniqueViolation inspects driver-specific errors for a unique-constraint
// failure: sqlite3 extended codes for the sqlite driver, class 23505 for
// postgres via lib/pq or pgx's translated gorm error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
