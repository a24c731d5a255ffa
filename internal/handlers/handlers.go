package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joreneng/VisualizingLifeExpectancies/internal/config"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/ingest"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/models"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/queries"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/store"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/worldbank"
)

// Handlers wires the chart queries and the ingestion service into gin routes.
type Handlers struct {
	queries *queries.Queries
	ingest  *ingest.Service
	cfg     config.Config
}

// New creates the handler set.
func New(q *queries.Queries, svc *ingest.Service, cfg config.Config) *Handlers {
	return &Handlers{
		queries: q,
		ingest:  svc,
		cfg:     cfg,
	}
}

// RegisterRoutes attaches all API routes under /api/v1.
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/avg-life-expectancy", h.GetAvgLifeExpectancy)
		v1.GET("/life-expectancy", h.GetLifeExpectancySeries)
		v1.GET("/wealth-health", h.GetWealthHealth)
		v1.GET("/death-causes", h.GetDeathCauses)

		ingestRoutes := v1.Group("/ingest")
		{
			ingestRoutes.POST("/refresh", h.TriggerRefresh)
		}
	}
}

// yearRange parses and validates the optional start_year/end_year query
// parameters, falling back to the configured bounds. Returns ok=false after
// writing the error response.
func (h *Handlers) yearRange(c *gin.Context) (int, int, bool) {
	startStr := c.DefaultQuery("start_year", strconv.Itoa(h.cfg.StartYear))
	start, err := strconv.Atoi(startStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation,
			"Invalid start_year parameter: not a number.", gin.H{"start_year": startStr})
		return 0, 0, false
	}

	endStr := c.DefaultQuery("end_year", strconv.Itoa(h.cfg.EndYear))
	end, err := strconv.Atoi(endStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation,
			"Invalid end_year parameter: not a number.", gin.H{"end_year": endStr})
		return 0, 0, false
	}

	if start > end {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidYearRange,
			"start_year must not exceed end_year.", gin.H{"start_year": start, "end_year": end})
		return 0, 0, false
	}
	return start, end, true
}

// GetAvgLifeExpectancy godoc
// @Summary Average life expectancy per country
// @Description Average life expectancy per country id over the year window; feeds the choropleth.
// @Tags charts
// @Produce json
// @Param start_year query int false "First year of the window (inclusive)"
// @Param end_year query int false "Last year of the window (inclusive)"
// @Success 200 {object} map[string]float64
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /avg-life-expectancy [get]
func (h *Handlers) GetAvgLifeExpectancy(c *gin.Context) {
	start, end, ok := h.yearRange(c)
	if !ok {
		return
	}
	data, err := h.queries.AvgLifeExpectancy(start, end)
	if err != nil {
		log.Printf("avg life expectancy query failed: %v", err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError,
			"Failed to compute average life expectancies.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, data)
}

// GetLifeExpectancySeries godoc
// @Summary Per-country life expectancy time series
// @Tags charts
// @Produce json
// @Param start_year query int false "First year of the window (inclusive)"
// @Param end_year query int false "Last year of the window (inclusive)"
// @Success 200 {array} models.LineChartPoint
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /life-expectancy [get]
func (h *Handlers) GetLifeExpectancySeries(c *gin.Context) {
	start, end, ok := h.yearRange(c)
	if !ok {
		return
	}
	points, err := h.queries.LifeExpectancySeries(start, end)
	if err != nil {
		log.Printf("life expectancy series query failed: %v", err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError,
			"Failed to load life expectancy series.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, points)
}

// GetWealthHealth godoc
// @Summary Population, health expenditure and life expectancy per country and year
// @Tags charts
// @Produce json
// @Param start_year query int false "First year of the window (inclusive)"
// @Param end_year query int false "Last year of the window (inclusive)"
// @Success 200 {object} map[int][]models.BubbleObject
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /wealth-health [get]
func (h *Handlers) GetWealthHealth(c *gin.Context) {
	start, end, ok := h.yearRange(c)
	if !ok {
		return
	}
	data, err := h.queries.WealthHealth(start, end)
	if err != nil {
		log.Printf("wealth-health query failed: %v", err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError,
			"Failed to load wealth-health data.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, data)
}

// GetDeathCauses godoc
// @Summary Ranked cause-of-death shares per year
// @Tags charts
// @Produce json
// @Param start_year query int false "First year of the window (inclusive)"
// @Param end_year query int false "Last year of the window (inclusive)"
// @Success 200 {array} models.DeathCause
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /death-causes [get]
func (h *Handlers) GetDeathCauses(c *gin.Context) {
	start, end, ok := h.yearRange(c)
	if !ok {
		return
	}
	causes, err := h.queries.DeathCauses(start, end)
	if err != nil {
		log.Printf("death causes query failed: %v", err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError,
			"Failed to load death cause rankings.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, causes)
}

// TriggerRefresh godoc
// @Summary Refresh the indicator cache from the Databank API
// @Description Runs the full fetch/normalize/merge cycle for every configured indicator. The run aborts on the first failure.
// @Tags ingest
// @Produce json
// @Success 200 {object} ingest.RefreshSummary
// @Failure 500 {object} models.APIError
// @Failure 502 {object} models.APIError
// @Router /ingest/refresh [post]
func (h *Handlers) TriggerRefresh(c *gin.Context) {
	summary, err := h.ingest.RefreshAll()
	if err != nil {
		log.Printf("refresh run failed: %v", err)
		switch {
		case errors.Is(err, worldbank.ErrNoData), errors.Is(err, ingest.ErrEmptyResult):
			RespondWithError(c, http.StatusBadGateway, models.ErrorCodeNoData,
				"Upstream returned no data for an indicator.", gin.H{"error": err.Error()})
		case errors.Is(err, ingest.ErrSchemaMismatch):
			RespondWithError(c, http.StatusBadGateway, models.ErrorCodeSchemaMismatch,
				"Upstream data did not match the expected schema.", gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrDuplicateKey):
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeDuplicateKey,
				"Merge produced a duplicate natural key; this is a bug.", gin.H{"error": err.Error()})
		default:
			RespondWithError(c, http.StatusBadGateway, models.ErrorCodeSourceUnavailable,
				"Failed to refresh from the Databank API.", gin.H{"error": err.Error()})
		}
		return
	}
	RespondWithSuccess(c, http.StatusOK, summary)
}
