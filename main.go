package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"menurecs/config/datastore"
	"menurecs/config/environment"
	"menurecs/middleware"
	route "menurecs/routes"
	"menurecs/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	once := flag.Bool("once", false, "compute one recommendation from the data directory and exit")
	flag.Parse()

	// Load environment variables. No .env file is fine, the defaults
	// cover local runs.
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Catalog and recommendation table are loaded once and stay read-only
	// for the life of the process.
	store, err := datastore.Load(environment.GetDataDir())
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load data files")
	}
	logger.Info().
		Int("menu_items", store.MenuSize()).
		Int("recommendations", store.RecommendationCount()).
		Msg("data loaded")

	if *once {
		runOnce(store, logger)
		return
	}

	// Setup Gin router
	r := gin.Default()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())

	// CORS Middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Register all routes
	route.RegisterRoutes(r, store, logger)

	port := environment.GetPort()
	logger.Info().Str("port", port).Msg("server running")
	if err := r.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// runOnce reads config.txt and current.csv from the data directory,
// computes a single recommendation without the prediction service and
// prints the selected item ids.
func runOnce(store *datastore.Store, logger zerolog.Logger) {
	dataDir := environment.GetDataDir()

	config, err := datastore.ReadRunConfig(dataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not read run config")
	}
	order, err := datastore.ReadCurrentOrder(dataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not read current order")
	}

	service := services.NewRecommendService(store, logger)
	results, err := service.RecommendLocal(config.CustomerID, config.OutputLength, config.NumPax, config.SpendPerPax, order)
	if err != nil {
		logger.Fatal().Err(err).Msg("recommendation failed")
	}

	for _, itemID := range results {
		item, _ := store.MenuItem(itemID)
		fmt.Printf("%s,%s,%s,%.2f\n", item.ID, item.Description, item.Category, item.Price)
	}
}
