// Command loader bootstraps the database and runs one full refresh: schema
// creation, dimension tables (regions, iso2 codes, country codes), then the
// fetch/normalize/merge cycle for every configured indicator. Run it once
// before starting the server, and again whenever the cache should pick up new
// upstream data.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/joreneng/VisualizingLifeExpectancies/internal/config"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/ingest"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/store"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/worldbank"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using environment defaults")
	}
	cfg := config.Load()

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := st.EnsureSchema(); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	client := worldbank.NewClient(cfg.BaseURL)

	if err := st.PopulateRegions(cfg.RegionsFile); err != nil {
		log.Fatalf("Failed to bootstrap regions: %v", err)
	}
	countries, err := client.FetchCountries()
	if err != nil {
		log.Fatalf("Failed to fetch country listing: %v", err)
	}
	if err := st.PopulateISO2Codes(countries); err != nil {
		log.Fatalf("Failed to bootstrap iso2 codes: %v", err)
	}
	if err := st.PopulateCountryCodes(countries); err != nil {
		log.Fatalf("Failed to bootstrap country codes: %v", err)
	}
	if err := st.KeepOnlyCountryCodes(); err != nil {
		log.Fatalf("Failed to clean up country codes: %v", err)
	}

	svc := ingest.NewService(client, st, cfg.Indicators)
	summary, err := svc.RefreshAll()
	if err != nil {
		log.Fatalf("Refresh failed: %v", err)
	}

	counts, err := st.CountByIndicator()
	if err != nil {
		log.Fatalf("Failed to count stored facts: %v", err)
	}
	log.Printf("Refresh run %s inserted %d rows; fact table now holds:", summary.RunID, summary.RowsInserted)
	for indicator, n := range counts {
		log.Printf("  %s: %d rows", indicator, n)
	}
}
