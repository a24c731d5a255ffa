package config

import (
	"os"
	"strconv"
)

// Indicator codes assigned by the World Bank Databank API.
const (
	LifeExpectancy    = "SP.DYN.LE00.IN"    // Life expectancy at birth, total (years)
	HealthExpenditure = "SH.XPD.CHEX.GD.ZS" // Current health expenditure (% of GDP)
	DeathCommDiseases = "SH.DTH.COMM.ZS"    // Cause of death, by communicable diseases (% of total)
	DeathInjury       = "SH.DTH.INJR.ZS"    // Cause of death, by injury (% of total)
	DeathNonComm      = "SH.DTH.NCOM.ZS"    // Cause of death, by non-communicable diseases (% of total)
	Population        = "SP.POP.TOTL"       // Population, total
)

// Default time range served by the API and used for ingestion.
const (
	DefaultStartYear = 1960
	DefaultEndYear   = 2025
)

// IndicatorWindow names one indicator series and the inclusive year range to
// ingest for it.
type IndicatorWindow struct {
	Name        string
	IndicatorID string
	StartYear   int
	EndYear     int
}

// Config is the immutable process configuration. It is constructed once at
// startup and passed into the services that need it; nothing reads the
// environment after Load returns.
type Config struct {
	BaseURL     string // World Bank API base, e.g. https://api.worldbank.org/v2
	DBDriver    string // "sqlite" (default) or "postgres"
	DBPath      string // sqlite database file
	PostgresDSN string // used when DBDriver is "postgres"
	RegionsFile string // countries-with-region reference JSON for the dimension bootstrap
	ServerPort  string
	StartYear   int
	EndYear     int
	Indicators  []IndicatorWindow
}

// Load builds a Config from environment variables with sensible defaults.
// Callers that want .env support should run godotenv.Load() beforehand.
func Load() Config {
	return Config{
		BaseURL:     getEnv("DATABANK_API_URL", "https://api.worldbank.org/v2"),
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBPath:      getEnv("DB_PATH", "databank.db"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		RegionsFile: getEnv("REGIONS_FILE", "data/countries_with_region.json"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		StartYear:   getEnvInt("START_YEAR", DefaultStartYear),
		EndYear:     getEnvInt("END_YEAR", DefaultEndYear),
		Indicators:  DefaultIndicators(),
	}
}

// DefaultIndicators returns the fixed set of series the refresh ingests. The
// cause-of-death series only have data from 2000 onwards, so their windows
// start later than the global bounds.
func DefaultIndicators() []IndicatorWindow {
	return []IndicatorWindow{
		{Name: "LIFE_EXPECTANCY", IndicatorID: LifeExpectancy, StartYear: 1960, EndYear: 2025},
		{Name: "HEALTH_EXPENDITURE", IndicatorID: HealthExpenditure, StartYear: 1960, EndYear: 2025},
		{Name: "DEATH_COMM_DISEASES", IndicatorID: DeathCommDiseases, StartYear: 2000, EndYear: 2025},
		{Name: "DEATH_INJURY", IndicatorID: DeathInjury, StartYear: 2000, EndYear: 2025},
		{Name: "DEATH_NON_COMM", IndicatorID: DeathNonComm, StartYear: 2000, EndYear: 2025},
		{Name: "POPULATION", IndicatorID: Population, StartYear: 1960, EndYear: 2025},
	}
}

// getEnv reads an environment variable with a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt reads an integer environment variable with a fallback value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
