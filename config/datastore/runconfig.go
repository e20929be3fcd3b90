package datastore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"menurecs/utils"
)

// RunConfig holds the parameters of a one-shot run, read from config.txt:
// output length, pax count, spend per pax, and an optional customer id.
type RunConfig struct {
	OutputLength int
	NumPax       int
	SpendPerPax  float64
	CustomerID   string
}

// ReadRunConfig parses config.txt as ordered whitespace-separated tokens.
func ReadRunConfig(dataDir string) (RunConfig, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, "config.txt"))
	if err != nil {
		return RunConfig{}, utils.NewCustomError(utils.KindStartupIO, fmt.Sprintf("could not read config file: %v", err))
	}

	tokens := strings.Fields(string(raw))
	if len(tokens) < 3 {
		return RunConfig{}, utils.NewCustomError(utils.KindStartupIO, "config file needs output length, pax count and spend per pax")
	}

	outputLength, err := strconv.Atoi(tokens[0])
	if err != nil {
		return RunConfig{}, utils.NewCustomError(utils.KindStartupIO, "config output length is not an integer: "+tokens[0])
	}
	numPax, err := strconv.Atoi(tokens[1])
	if err != nil {
		return RunConfig{}, utils.NewCustomError(utils.KindStartupIO, "config pax count is not an integer: "+tokens[1])
	}
	spendPerPax, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return RunConfig{}, utils.NewCustomError(utils.KindStartupIO, "config spend per pax is not numeric: "+tokens[2])
	}

	config := RunConfig{OutputLength: outputLength, NumPax: numPax, SpendPerPax: spendPerPax}
	if len(tokens) > 3 {
		config.CustomerID = tokens[3]
	}
	return config, nil
}

// ReadCurrentOrder parses current.csv (Item, Quantity) into an order map.
func ReadCurrentOrder(dataDir string) (map[string]int, error) {
	file, err := os.Open(filepath.Join(dataDir, "current.csv"))
	if err != nil {
		return nil, utils.NewCustomError(utils.KindStartupIO, fmt.Sprintf("could not open current order file: %v", err))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, utils.NewCustomError(utils.KindStartupIO, fmt.Sprintf("could not parse current order file: %v", err))
	}
	if len(records) == 0 {
		return nil, utils.NewCustomError(utils.KindStartupIO, "current order file is empty")
	}

	order := make(map[string]int, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, utils.NewCustomError(utils.KindStartupIO,
				fmt.Sprintf("current order item %s has invalid quantity %q", record[0], record[1]))
		}
		order[strings.TrimSpace(record[0])] = quantity
	}
	return order, nil
}
