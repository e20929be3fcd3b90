package services

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"menurecs/config/datastore"
	"menurecs/config/environment"
	"menurecs/milp"
	"menurecs/models"
	"menurecs/utils"

	"github.com/rs/zerolog"
)

// selectTol decides whether a solved selection variable counts as chosen.
// Solvers report booleans as floats and may return 0.999999999 for a true
// variable, so selection is "not zero within tolerance", never an equality
// test against 1.
const selectTol = 1e-4

// RecommendService runs the whole recommendation pipeline: candidates,
// scores, the mixed-integer model, and extraction of the selected items.
type RecommendService struct {
	Store      *datastore.Store
	Candidates *CandidateService
	Scores     *ScoreService

	// Zmax bounds the budget-overage variables and doubles as the big-M
	// constant of the category constraints.
	Zmax            float64
	CategoryPenalty float64
	BudgetPenalty   float64
	ModelDumpDir    string

	Logger zerolog.Logger
}

// NewRecommendService creates a new instance of RecommendService
func NewRecommendService(store *datastore.Store, logger zerolog.Logger) *RecommendService {
	return &RecommendService{
		Store:      store,
		Candidates: NewCandidateService(store, logger),
		Scores: NewScoreService(
			NewPredictService(environment.GetPredictBaseURL(), logger),
			environment.GetSentinelItemID(),
			logger,
		),
		Zmax:            environment.GetZmax(),
		CategoryPenalty: environment.GetCategoryPenaltyWeight(),
		BudgetPenalty:   environment.GetBudgetPenaltyWeight(),
		ModelDumpDir:    environment.GetModelDumpDir(),
		Logger:          logger,
	}
}

// Recommend handles one request end to end and returns the selected item
// ids, best candidates first. An infeasible model (for example asking for
// more items than there are candidates) yields an empty list, not an error.
func (s *RecommendService) Recommend(ctx context.Context, req models.RecommendRequest) ([]string, error) {
	s.Logger.Info().
		Str("customer_id", req.CustomerID).
		Int("output_length", req.OutputLength).
		Int("num_pax", req.NumPax).
		Float64("target_spend", req.TargetSpend).
		Msg("received recommendation request")

	currentTotal, err := s.Candidates.OrderTotal(req.Order)
	if err != nil {
		return nil, err
	}
	budget := models.BudgetContext{
		NumPax:            req.NumPax,
		SpendPerPax:       req.TargetSpend,
		CurrentTotalPrice: currentTotal,
	}

	candidateIDs, personalized, err := s.Candidates.Build(req.CustomerID, req.Order)
	if err != nil {
		return nil, err
	}
	if req.OutputLength == 0 {
		return []string{}, nil
	}

	scores, err := s.Scores.ScoreCandidates(ctx, candidateIDs, personalized, req.Context)
	if err != nil {
		return nil, err
	}

	candidates, categories, err := s.buildCandidates(candidateIDs, scores)
	if err != nil {
		return nil, err
	}
	return s.optimize(candidates, categories, budget, req.OutputLength)
}

// RecommendLocal runs the pipeline without the prediction service, scoring
// candidates by list position alone. It backs the one-shot mode.
func (s *RecommendService) RecommendLocal(customerID string, outputLength, numPax int, spendPerPax float64, order map[string]int) ([]string, error) {
	currentTotal, err := s.Candidates.OrderTotal(order)
	if err != nil {
		return nil, err
	}
	budget := models.BudgetContext{
		NumPax:            numPax,
		SpendPerPax:       spendPerPax,
		CurrentTotalPrice: currentTotal,
	}

	candidateIDs, _, err := s.Candidates.Build(customerID, order)
	if err != nil {
		return nil, err
	}
	if outputLength == 0 {
		return []string{}, nil
	}

	scores := make([]int, len(candidateIDs))
	for i := range candidateIDs {
		scores[i] = len(candidateIDs) - i
	}

	candidates, categories, err := s.buildCandidates(candidateIDs, scores)
	if err != nil {
		return nil, err
	}
	return s.optimize(candidates, categories, budget, outputLength)
}

// buildCandidates resolves prices and assigns category indices in
// first-seen order. The returned category labels are positional: label c
// belongs to category index c.
func (s *RecommendService) buildCandidates(candidateIDs []string, scores []int) ([]models.Candidate, []string, error) {
	candidates := make([]models.Candidate, len(candidateIDs))
	categories := []string{}
	for i, itemID := range candidateIDs {
		item, ok := s.Store.MenuItem(itemID)
		if !ok {
			return nil, nil, utils.NewCustomError(utils.KindDataInconsistency,
				fmt.Sprintf("recommended item %s is not on the menu", itemID))
		}

		categoryIndex := -1
		for c, label := range categories {
			if label == item.Category {
				categoryIndex = c
				break
			}
		}
		if categoryIndex == -1 {
			categoryIndex = len(categories)
			categories = append(categories, item.Category)
		}

		candidates[i] = models.Candidate{
			ItemID:        itemID,
			Price:         item.Price,
			CategoryIndex: categoryIndex,
			Score:         scores[i],
		}
		s.Logger.Debug().
			Str("item", itemID).
			Float64("price", item.Price).
			Str("category", item.Category).
			Int("score", scores[i]).
			Msg("adding recommendable item")
	}
	return candidates, categories, nil
}

// optimize builds the model, solves it and extracts the selection.
//
// Variables: x_i binary selection per candidate, y_c binary overflow
// indicator per category, z_i continuous budget overage per candidate in
// [0, Zmax]. Objective: maximize sum(score_i x_i) minus the weighted
// penalties on y and z. Constraints: sum(x) equals the output length;
// price_i x_i + currentTotal <= (1 + z_i) budget per candidate; and
// sum of x over a category <= 1 + Zmax y_c, so a second item from the same
// category is discouraged, not forbidden.
func (s *RecommendService) optimize(candidates []models.Candidate, categories []string, budget models.BudgetContext, outputLength int) ([]string, error) {
	model := milp.New()

	xs := make([]milp.Var, len(candidates))
	zs := make([]milp.Var, len(candidates))
	for i, cand := range candidates {
		xs[i] = model.Binary("x_" + cand.ItemID)
		zs[i] = model.Continuous("z_"+cand.ItemID, 0, s.Zmax)
	}
	ys := make([]milp.Var, len(categories))
	for c, label := range categories {
		ys[c] = model.Binary("y_" + label)
	}

	objective := make([]milp.Term, 0, 2*len(candidates)+len(categories))
	for i, cand := range candidates {
		objective = append(objective, milp.Term{Var: xs[i], Coef: float64(cand.Score)})
	}
	for _, y := range ys {
		objective = append(objective, milp.Term{Var: y, Coef: -s.CategoryPenalty})
	}
	for _, z := range zs {
		objective = append(objective, milp.Term{Var: z, Coef: -s.BudgetPenalty})
	}
	model.Maximize(objective...)

	cardinality := make([]milp.Term, len(candidates))
	for i := range candidates {
		cardinality[i] = milp.Term{Var: xs[i], Coef: 1}
	}
	model.AddEq("outputLength", cardinality, float64(outputLength))

	// price_i x_i + currentTotal <= (1 + z_i) budget, rearranged so the
	// variables sit on the left.
	totalBudget := budget.Budget()
	s.Logger.Debug().Float64("budget", totalBudget).Float64("remaining", budget.RemainingBudget()).Msg("budget computed")
	for i, cand := range candidates {
		model.AddLe("budget_"+cand.ItemID,
			[]milp.Term{{Var: xs[i], Coef: cand.Price}, {Var: zs[i], Coef: -totalBudget}},
			totalBudget-budget.CurrentTotalPrice)
	}

	categoryTerms := make([][]milp.Term, len(categories))
	for i, cand := range candidates {
		categoryTerms[cand.CategoryIndex] = append(categoryTerms[cand.CategoryIndex], milp.Term{Var: xs[i], Coef: 1})
	}
	for c, label := range categories {
		terms := append(categoryTerms[c], milp.Term{Var: ys[c], Coef: -s.Zmax})
		model.AddLe("category_"+label, terms, 1)
	}

	if s.ModelDumpDir != "" {
		path := filepath.Join(s.ModelDumpDir, fmt.Sprintf("model-%d.lp", time.Now().UnixNano()))
		if err := model.DumpLP(path); err != nil {
			s.Logger.Warn().Err(err).Str("path", path).Msg("could not dump model")
		}
	}

	if err := model.Solve(); err != nil {
		// Engine failure degrades to an empty result; the request itself
		// stays healthy.
		s.Logger.Error().Err(err).Msg("solver failed")
		return []string{}, nil
	}

	switch model.Status() {
	case milp.StatusSolved:
		s.Logger.Info().Float64("objective", model.ObjectiveValue()).Msg("model solved")
	case milp.StatusInfeasible:
		s.Logger.Warn().
			Int("output_length", outputLength).
			Int("candidates", len(candidates)).
			Msg("no feasible selection")
		return []string{}, nil
	default:
		return []string{}, nil
	}

	results := make([]string, 0, outputLength)
	for i, cand := range candidates {
		if math.Abs(model.Value(xs[i])) > selectTol {
			s.Logger.Debug().Str("item", cand.ItemID).Msg("selected")
			results = append(results, cand.ItemID)
		}
	}
	return results, nil
}
