package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"menurecs/models"
	"menurecs/utils"

	"github.com/rs/zerolog"
)

// PredictService calls the external prediction service that scores menu
// items for the request's context (hour, holidays, weekday, outlet, day).
type PredictService struct {
	BaseURL string
	Client  *http.Client
	Logger  zerolog.Logger
}

// NewPredictService creates a new instance of PredictService
func NewPredictService(baseURL string, logger zerolog.Logger) *PredictService {
	return &PredictService{
		BaseURL: baseURL,
		Client:  &http.Client{},
		Logger:  logger,
	}
}

// FetchScores requests predicted scores for the given context and returns
// them in response order. The response is a JSON array whose first element
// maps item id to score; item ids are trimmed of stray whitespace.
func (s *PredictService) FetchScores(ctx context.Context, pctx models.PredictContext) ([]models.PredictedScore, error) {
	query := url.Values{}
	query.Set("hour", pctx.Hour)
	query.Set("school_holiday", pctx.SchoolHoliday)
	query.Set("public_holiday", pctx.PublicHoliday)
	query.Set("weekday", pctx.Weekday)
	query.Set("outlet", pctx.Outlet)
	query.Set("day", pctx.Day)

	endpoint := s.BaseURL + "/json?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, utils.NewCustomError(utils.KindExternalService, fmt.Sprintf("could not build prediction request: %v", err))
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, utils.NewCustomError(utils.KindExternalService, fmt.Sprintf("prediction service unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, utils.NewCustomError(utils.KindExternalService,
			fmt.Sprintf("prediction service returned status %d: %s", resp.StatusCode, string(body)))
	}

	scores, err := decodeScores(resp.Body)
	if err != nil {
		return nil, utils.NewCustomError(utils.KindExternalService, fmt.Sprintf("malformed prediction response: %v", err))
	}

	s.Logger.Debug().Int("items", len(scores)).Msg("fetched prediction scores")
	return scores, nil
}

// decodeScores reads the first object of the response array token by token
// so the original key order survives; ranking ties are broken by this
// order later.
func decodeScores(r io.Reader) ([]models.PredictedScore, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("expected array, got %v", tok)
	}
	if !dec.More() {
		return nil, fmt.Errorf("response array is empty")
	}

	tok, err = dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected score object, got %v", tok)
	}

	var scores []models.PredictedScore
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected item id key, got %v", keyTok)
		}
		var value float64
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("score for item %q is not numeric: %w", key, err)
		}
		scores = append(scores, models.PredictedScore{ItemID: strings.TrimSpace(key), Score: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return scores, nil
}
