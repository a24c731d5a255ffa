package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/joreneng/VisualizingLifeExpectancies/internal/models"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/worldbank"
)

// regionEntry is the shape of one entry in the countries-with-region
// reference file.
type regionEntry struct {
	Name      string `json:"name"`
	Alpha2    string `json:"alpha-2"`
	Region    string `json:"region"`
	SubRegion string `json:"sub-region"`
}

// aggregateCountryIDs are Databank ids that denote regions, income groups and
// other aggregates rather than countries. They are deleted from country_codes
// after bootstrap so read-side joins only see real countries.
var aggregateCountryIDs = []string{
	"EU", "OE", "XC", "XD", "XE", "XF", "XG", "XH", "XI",
	"XJ", "XL", "XM", "XN", "XO", "XP", "XQ", "XT", "XU",
	"PS", "XY", "ZB", "ZF", "ZG", "ZH", "ZI", "ZJ", "ZQ", "ZT",
}

// PopulateRegions loads the regions dimension from the static reference file.
// Entries with any missing field are dropped. The load is one-shot: when the
// table already has rows it is left untouched.
func (s *Store) PopulateRegions(path string) error {
	var count int64
	if err := s.db.Model(&models.Region{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count regions: %w", err)
	}
	if count > 0 {
		log.Printf("Regions table already holds %d rows; skipping bootstrap", count)
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read regions reference file %s: %w", path, err)
	}
	var entries []regionEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("failed to decode regions reference file %s: %w", path, err)
	}

	regions := make([]models.Region, 0, len(entries))
	for _, e := range entries {
		if e.Alpha2 == "" || e.Name == "" || e.Region == "" || e.SubRegion == "" {
			continue
		}
		regions = append(regions, models.Region{
			CountryID:   e.Alpha2,
			CountryName: e.Name,
			Region:      e.Region,
			SubRegion:   e.SubRegion,
		})
	}
	if len(regions) == 0 {
		return fmt.Errorf("regions reference file %s contained no usable entries", path)
	}

	if err := s.db.CreateInBatches(regions, insertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert %d region rows: %w", len(regions), err)
	}
	log.Printf("Loaded %d regions from %s", len(regions), path)
	return nil
}

// PopulateISO2Codes fills the iso2_codes dimension from the upstream country
// listing. Existing ids are left as they are, so repeated bootstraps are safe.
func (s *Store) PopulateISO2Codes(countries []worldbank.CountrySummary) error {
	codes := make([]models.ISO2Code, 0, len(countries))
	for _, c := range countries {
		if c.ISO2Code == "" {
			continue
		}
		codes = append(codes, models.ISO2Code{ID: c.ISO2Code, Country: c.Name})
	}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(codes, insertBatchSize).Error
	if err != nil {
		return fmt.Errorf("failed to insert iso2 codes: %w", err)
	}
	return nil
}

// PopulateCountryCodes fills the country_codes dimension from the upstream
// country listing. Pair with KeepOnlyCountryCodes to strip aggregates.
func (s *Store) PopulateCountryCodes(countries []worldbank.CountrySummary) error {
	codes := make([]models.CountryCode, 0, len(countries))
	for _, c := range countries {
		if c.ISO2Code == "" {
			continue
		}
		codes = append(codes, models.CountryCode{ID: c.ISO2Code, Country: c.Name})
	}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(codes, insertBatchSize).Error
	if err != nil {
		return fmt.Errorf("failed to insert country codes: %w", err)
	}
	return nil
}

// KeepOnlyCountryCodes deletes aggregate ids and ids containing digits from
// country_codes, leaving real 2-letter country codes only. The fact table is
// never touched; unmatched facts are simply dropped by read-time joins.
func (s *Store) KeepOnlyCountryCodes() error {
	var all []models.CountryCode
	if err := s.db.Find(&all).Error; err != nil {
		return fmt.Errorf("failed to read country codes: %w", err)
	}

	aggregates := make(map[string]bool, len(aggregateCountryIDs))
	for _, id := range aggregateCountryIDs {
		aggregates[id] = true
	}

	var toDelete []string
	for _, c := range all {
		if aggregates[c.ID] || strings.ContainsAny(c.ID, "0123456789") {
			toDelete = append(toDelete, c.ID)
		}
	}
	if len(toDelete) == 0 {
		return nil
	}

	if err := s.db.Delete(&models.CountryCode{}, "id IN ?", toDelete).Error; err != nil {
		return fmt.Errorf("failed to delete %d aggregate country codes: %w", len(toDelete), err)
	}
	log.Printf("Removed %d aggregate ids from country_codes", len(toDelete))
	return nil
}
