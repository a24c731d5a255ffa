package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/joreneng/VisualizingLifeExpectancies/docs"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/config"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/handlers"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/ingest"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/queries"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/store"
	"github.com/joreneng/VisualizingLifeExpectancies/internal/worldbank"
)

// @title Visualizing Life Expectancies API
// @version 1.0
// @description Chart-ready world-development aggregates over a locally cached copy of World Bank indicator data.
// @BasePath /api/v1
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
	ingestSvc := ingest.NewService(client, st, cfg.Indicators)
	chartQueries := queries.New(st.DB())

	router := gin.Default()
	// Permissive CORS so the charting frontend can be served from anywhere
	// during development. Tighten the origins before exposing this publicly.
	router.Use(cors.Default())

	h := handlers.New(chartQueries, ingestSvc, cfg)
	h.RegisterRoutes(router)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("Starting server on :%s...", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
