package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"menurecs/models"
	"menurecs/utils"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() models.PredictContext {
	return models.PredictContext{
		Hour:          "14",
		SchoolHoliday: "1",
		PublicHoliday: "0",
		Weekday:       "3",
		Outlet:        "O1",
		Day:           "12",
	}
}

func TestFetchScores(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "/json", r.URL.Path)
		w.Write([]byte(`[{"F001": 0.8, " F002 ": 0.5, "D001": 0.9}]`))
	}))
	defer server.Close()

	service := NewPredictService(server.URL, zerolog.Nop())
	scores, err := service.FetchScores(context.Background(), testContext())
	require.NoError(t, err)

	require.Len(t, scores, 3)
	assert.Equal(t, "F001", scores[0].ItemID)
	assert.Equal(t, "F002", scores[1].ItemID, "item ids are trimmed")
	assert.InDelta(t, 0.9, scores[2].Score, 1e-9)

	assert.Equal(t, []string{"14"}, gotQuery["hour"])
	assert.Equal(t, []string{"1"}, gotQuery["school_holiday"])
	assert.Equal(t, []string{"O1"}, gotQuery["outlet"])
}

func TestFetchScoresKeepsResponseOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"B": 1.0, "A": 1.0, "C": 1.0}]`))
	}))
	defer server.Close()

	service := NewPredictService(server.URL, zerolog.Nop())
	scores, err := service.FetchScores(context.Background(), testContext())
	require.NoError(t, err)

	ids := make([]string, len(scores))
	for i, s := range scores {
		ids[i] = s.ItemID
	}
	assert.Equal(t, []string{"B", "A", "C"}, ids)
}

func TestFetchScoresServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewPredictService(server.URL, zerolog.Nop())
	_, err := service.FetchScores(context.Background(), testContext())
	require.Error(t, err)

	var customErr *utils.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, utils.KindExternalService, customErr.Kind)
}

func TestFetchScoresUnreachable(t *testing.T) {
	service := NewPredictService("http://127.0.0.1:1", zerolog.Nop())
	_, err := service.FetchScores(context.Background(), testContext())
	assert.Error(t, err)
}

func TestFetchScoresMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not an array", `{"F001": 0.8}`},
		{"empty array", `[]`},
		{"array of numbers", `[1, 2]`},
		{"non-numeric score", `[{"F001": "high"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			service := NewPredictService(server.URL, zerolog.Nop())
			_, err := service.FetchScores(context.Background(), testContext())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "malformed")
		})
	}
}

func TestDecodeScoresEmptyObject(t *testing.T) {
	scores, err := decodeScores(strings.NewReader(`[{}]`))
	require.NoError(t, err)
	assert.Empty(t, scores)
}
