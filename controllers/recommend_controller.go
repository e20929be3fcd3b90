package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"menurecs/config/datastore"
	"menurecs/models"
	"menurecs/services"
	"menurecs/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var requiredParams = []string{
	"customerid", "outputlength", "numpax", "targetspend", "itemids", "itemqty",
	"hour", "school_holiday", "public_holiday", "weekday", "outlet", "day",
}

var integerParams = []string{"customerid", "outputlength", "numpax"}

type RecommendController struct {
	RecommendService *services.RecommendService
}

func NewRecommendController(store *datastore.Store, logger zerolog.Logger) *RecommendController {
	return &RecommendController{
		RecommendService: services.NewRecommendService(store, logger),
	}
}

// GetRecommendation validates the query parameters, runs the pipeline and
// replies with a JSON array of selected item ids.
func (s *RecommendController) GetRecommendation(c *gin.Context) {
	var missing []string
	for _, param := range requiredParams {
		if _, ok := c.GetQuery(param); !ok {
			missing = append(missing, param)
		}
	}
	if len(missing) > 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Missing parameter(s): "+strings.Join(missing, ", "))
		return
	}

	var notInteger []string
	for _, param := range integerParams {
		if _, err := strconv.Atoi(c.Query(param)); err != nil {
			notInteger = append(notInteger, param)
		}
	}
	if len(notInteger) > 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Non-integer parameter(s): "+strings.Join(notInteger, ", "))
		return
	}

	targetSpend, err := strconv.ParseFloat(c.Query("targetspend"), 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Non-numeric parameter(s): targetspend")
		return
	}

	outputLength, _ := strconv.Atoi(c.Query("outputlength"))
	numPax, _ := strconv.Atoi(c.Query("numpax"))
	if outputLength < 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Negative parameter(s): outputlength")
		return
	}

	order, err := parseOrder(c.Query("itemids"), c.Query("itemqty"))
	if err != nil {
		c.Error(err)
		return
	}

	req := models.RecommendRequest{
		CustomerID:   c.Query("customerid"),
		OutputLength: outputLength,
		NumPax:       numPax,
		TargetSpend:  targetSpend,
		Order:        order,
		Context: models.PredictContext{
			Hour:          c.Query("hour"),
			SchoolHoliday: c.Query("school_holiday"),
			PublicHoliday: c.Query("public_holiday"),
			Weekday:       c.Query("weekday"),
			Outlet:        c.Query("outlet"),
			Day:           c.Query("day"),
		},
	}

	results, err := s.RecommendService.Recommend(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, results)
}

// parseOrder turns the comma-separated parallel itemids/itemqty lists into
// an order map. An empty itemids string means no current order, not one
// empty-string item.
func parseOrder(itemIDs, itemQty string) (map[string]int, error) {
	order := map[string]int{}
	if itemIDs == "" {
		return order, nil
	}

	ids := strings.Split(itemIDs, ",")
	quantities := strings.Split(itemQty, ",")
	if len(ids) != len(quantities) {
		return nil, utils.NewCustomError(utils.KindValidation, "Differing number of item ids and quantities")
	}
	for i, id := range ids {
		quantity, err := strconv.Atoi(quantities[i])
		if err != nil {
			return nil, utils.NewCustomError(utils.KindValidation, "Non-integer quantity: "+quantities[i])
		}
		order[id] = quantity
	}
	return order, nil
}
