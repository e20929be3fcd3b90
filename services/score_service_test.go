package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"menurecs/models"
	"menurecs/utils"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreServiceFor(t *testing.T, body string) (*ScoreService, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	predict := NewPredictService(server.URL, zerolog.Nop())
	return NewScoreService(predict, "NONE", zerolog.Nop()), server.Close
}

func TestScoreCandidatesRanksByPrediction(t *testing.T) {
	service, done := scoreServiceFor(t, `[{"A": 0.2, "B": 0.9, "C": 0.5}]`)
	defer done()

	// Not personalized: only the predicted rank contributes.
	scores, err := service.ScoreCandidates(context.Background(), []string{"A", "B", "C"}, false, testContext())
	require.NoError(t, err)

	// Descending by score: B, C, A -> ranks 3, 2, 1.
	assert.Equal(t, []int{1, 3, 2}, scores)
}

func TestScoreCandidatesAddsListRankWhenPersonalized(t *testing.T) {
	service, done := scoreServiceFor(t, `[{"A": 0.2, "B": 0.9, "C": 0.5}]`)
	defer done()

	scores, err := service.ScoreCandidates(context.Background(), []string{"A", "B", "C"}, true, testContext())
	require.NoError(t, err)

	// Position ranks 3, 2, 1 on top of predicted ranks 1, 3, 2.
	assert.Equal(t, []int{4, 5, 3}, scores)
}

func TestScoreCandidatesDropsSentinel(t *testing.T) {
	service, done := scoreServiceFor(t, `[{"NONE": 99.0, "A": 0.2, "B": 0.9}]`)
	defer done()

	scores, err := service.ScoreCandidates(context.Background(), []string{"A", "B"}, false, testContext())
	require.NoError(t, err)

	// The sentinel never outranks real items: B=2, A=1.
	assert.Equal(t, []int{1, 2}, scores)
}

func TestScoreCandidatesTiesKeepResponseOrder(t *testing.T) {
	service, done := scoreServiceFor(t, `[{"B": 0.5, "A": 0.5, "C": 0.5}]`)
	defer done()

	scores, err := service.ScoreCandidates(context.Background(), []string{"A", "B", "C"}, false, testContext())
	require.NoError(t, err)

	// All tied: the stable sort keeps response order B, A, C.
	assert.Equal(t, []int{2, 3, 1}, scores)
}

func TestScoreCandidatesMissingPrediction(t *testing.T) {
	service, done := scoreServiceFor(t, `[{"A": 0.2}]`)
	defer done()

	_, err := service.ScoreCandidates(context.Background(), []string{"A", "B"}, false, testContext())
	require.Error(t, err)

	var customErr *utils.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, utils.KindDataInconsistency, customErr.Kind)
	assert.Contains(t, err.Error(), "B")
}

func TestScoreCandidatesScoresNeverNegative(t *testing.T) {
	service, done := scoreServiceFor(t, `[{"A": -5.0, "B": -1.0}]`)
	defer done()

	scores, err := service.ScoreCandidates(context.Background(), []string{"A", "B"}, false, testContext())
	require.NoError(t, err)
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0)
	}
}

func TestRankPredictionsEmpty(t *testing.T) {
	service := NewScoreService(nil, "NONE", zerolog.Nop())
	rank := service.rankPredictions([]models.PredictedScore{})
	assert.Empty(t, rank)
}
