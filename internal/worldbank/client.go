package worldbank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

// ErrNoData is returned when the API answers with a one-element body instead
// of the usual [metadata, records] pair. The Databank API uses that shape to
// signal an empty or invalid result rather than an HTTP error status.
var ErrNoData = errors.New("no data found")

// PageMeta is the first element of every Databank response body.
type PageMeta struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// IndicatorRef is the nested indicator sub-object of a raw record.
type IndicatorRef struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// CountryRef is the nested country sub-object of a raw record. ID is empty
// when the upstream value is null.
type CountryRef struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// RawRecord is one observation as the API ships it, nested sub-objects and
// all. Optional fields are pointers so that "absent or null" is observable
// downstream; the normalizer owns the flattening.
type RawRecord struct {
	Indicator   *IndicatorRef `json:"indicator"`
	Country     *CountryRef   `json:"country"`
	CountryISO3 string        `json:"countryiso3code"`
	Date        *string       `json:"date"`
	Value       *float64      `json:"value"`
	Unit        *string       `json:"unit"`
	ObsStatus   string        `json:"obs_status"`
	Decimal     int           `json:"decimal"`
}

// CountrySummary is one entry of the country listing endpoint, used to
// bootstrap the iso2_codes dimension table.
type CountrySummary struct {
	ID       string `json:"id"`
	ISO2Code string `json:"iso2Code"`
	Name     string `json:"name"`
}

// Client fetches paginated indicator data from the World Bank Databank API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Databank API client for the given base URL
// (e.g. https://api.worldbank.org/v2).
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

// FetchIndicator retrieves every page of one indicator over an inclusive year
// range and returns the concatenated record lists. Page 1 is fetched first to
// discover the total page count from the response metadata; pages are then
// fetched sequentially. No retries: any transport failure, non-OK status or
// undecodable body aborts the fetch.
func (c *Client) FetchIndicator(indicatorID string, startYear, endYear int) ([]RawRecord, error) {
	base := fmt.Sprintf("%s/country/all/indicator/%s", c.BaseURL, indicatorID)
	query := url.Values{
		"date":   []string{fmt.Sprintf("%d:%d", startYear, endYear)},
		"format": []string{"json"},
	}

	meta, _, err := c.getPage(base, query, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page 1 for indicator %s: %w", indicatorID, err)
	}

	var allRecords []RawRecord
	for page := 1; page <= meta.Pages; page++ {
		_, raw, err := c.getPage(base, query, page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d for indicator %s: %w", page, indicatorID, err)
		}
		var records []RawRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("failed to decode records on page %d for indicator %s: %w", page, indicatorID, err)
		}
		allRecords = append(allRecords, records...)
	}

	log.Printf("Fetched %d records over %d page(s) for indicator %s (%d:%d)",
		len(allRecords), meta.Pages, indicatorID, startYear, endYear)
	return allRecords, nil
}

// FetchCountries retrieves every page of the country listing endpoint.
func (c *Client) FetchCountries() ([]CountrySummary, error) {
	base := fmt.Sprintf("%s/country", c.BaseURL)
	query := url.Values{"format": []string{"json"}}

	meta, _, err := c.getPage(base, query, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch country listing: %w", err)
	}

	var all []CountrySummary
	for page := 1; page <= meta.Pages; page++ {
		_, raw, err := c.getPage(base, query, page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch country listing page %d: %w", page, err)
		}
		var countries []CountrySummary
		if err := json.Unmarshal(raw, &countries); err != nil {
			return nil, fmt.Errorf("failed to decode country listing page %d: %w", page, err)
		}
		all = append(all, countries...)
	}
	return all, nil
}

// getPage performs one GET and splits the body into its metadata element and
// the raw records element. Record decoding is left to the caller because the
// record shape differs per endpoint.
func (c *Client) getPage(base string, query url.Values, page int) (*PageMeta, json.RawMessage, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("page", fmt.Sprintf("%d", page))

	resp, err := c.HTTPClient.Get(base + "?" + q.Encode())
	if err != nil {
		return nil, nil, fmt.Errorf("request to databank API failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("databank API returned non-OK status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read databank API response: %w", err)
	}
	return decodeEnvelope(body)
}

// decodeEnvelope decodes the two-element [metadata, records] response body.
// A one-element body is the API's "no data" convention and maps to ErrNoData.
func decodeEnvelope(body []byte) (*PageMeta, json.RawMessage, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, nil, fmt.Errorf("failed to decode databank API response body: %w", err)
	}

	if len(elems) == 1 {
		return nil, nil, ErrNoData
	}
	if len(elems) < 2 {
		return nil, nil, fmt.Errorf("unexpected databank API response with %d elements", len(elems))
	}

	var meta PageMeta
	if err := json.Unmarshal(elems[0], &meta); err != nil {
		return nil, nil, fmt.Errorf("failed to decode page metadata: %w", err)
	}
	return &meta, elems[1], nil
}
