package environment

import (
	"os"
	"strconv"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func GetPort() string {
	return getEnv("PORT", "8080")
}

// GetDataDir is the directory holding menu.csv and recommendation.csv.
func GetDataDir() string {
	return getEnv("DATA_DIR", "data")
}

// GetPredictBaseURL points at the prediction service.
func GetPredictBaseURL() string {
	host := getEnv("PREDICT_HOST", "localhost")
	port := getEnv("PREDICT_PORT", "5000")
	return "http://" + host + ":" + port
}

// GetSentinelItemID is the pseudo-item key the prediction service reports
// for non-purchasable entries. It is dropped before ranking.
func GetSentinelItemID() string {
	return getEnv("SENTINEL_ITEM_ID", "NONE")
}

// GetZmax bounds the budget-overage variables. It must stay comfortably
// above the largest single-item price divided by the smallest budget the
// service is expected to see, or the bound starts distorting the optimum.
func GetZmax() float64 {
	return getFloatEnv("ZMAX", 1000)
}

func GetCategoryPenaltyWeight() float64 {
	return getFloatEnv("CATEGORY_PENALTY_WEIGHT", 100)
}

func GetBudgetPenaltyWeight() float64 {
	return getFloatEnv("BUDGET_PENALTY_WEIGHT", 300)
}

// GetModelDumpDir enables per-solve LP file dumps when non-empty.
func GetModelDumpDir() string {
	return getEnv("MODEL_DUMP_DIR", "")
}
