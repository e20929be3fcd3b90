package services

import (
	"context"
	"fmt"
	"sort"

	"menurecs/models"
	"menurecs/utils"

	"github.com/rs/zerolog"
)

// ScoreService turns the prediction service output and the candidate
// ordering into one integer relevance score per candidate. Higher is more
// relevant; scores are never negative.
type ScoreService struct {
	Predict  *PredictService
	Sentinel string
	Logger   zerolog.Logger
}

// NewScoreService creates a new instance of ScoreService
func NewScoreService(predict *PredictService, sentinel string, logger zerolog.Logger) *ScoreService {
	return &ScoreService{Predict: predict, Sentinel: sentinel, Logger: logger}
}

// ScoreCandidates computes one score per candidate id, in candidate order.
// The predicted rank always contributes; when the candidate list came from
// the customer's own recommendations the list position contributes a second
// additive rank. A candidate the prediction service knows nothing about
// fails the request.
func (s *ScoreService) ScoreCandidates(ctx context.Context, candidateIDs []string, personalized bool, pctx models.PredictContext) ([]int, error) {
	predicted, err := s.Predict.FetchScores(ctx, pctx)
	if err != nil {
		return nil, err
	}

	rank := s.rankPredictions(predicted)

	scores := make([]int, len(candidateIDs))
	for i, itemID := range candidateIDs {
		predictedRank, ok := rank[itemID]
		if !ok {
			return nil, utils.NewCustomError(utils.KindDataInconsistency,
				fmt.Sprintf("no predicted score for item %s", itemID))
		}
		score := predictedRank
		if personalized {
			score += len(candidateIDs) - i
		}
		scores[i] = score
	}
	return scores, nil
}

// rankPredictions drops the non-purchasable sentinel, sorts descending by
// score and assigns rank = count - position, so the top item gets the
// highest rank. The sort is stable: ties keep the response order.
func (s *ScoreService) rankPredictions(predicted []models.PredictedScore) map[string]int {
	kept := make([]models.PredictedScore, 0, len(predicted))
	for _, p := range predicted {
		if p.ItemID == s.Sentinel {
			continue
		}
		kept = append(kept, p)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	rank := make(map[string]int, len(kept))
	for position, p := range kept {
		rank[p.ItemID] = len(kept) - position
	}
	return rank
}
