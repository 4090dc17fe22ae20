package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkvist/shelfmark/internal/config"
	"github.com/mkvist/shelfmark/internal/models"
	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/utils"
)

// RecommendationHandler serves the placeholder recommendation feed
type RecommendationHandler struct {
	Store store.Store
	Cfg   *config.Config
}

// GetRecommendations handles GET /api/users/:id/recommendations
// @Summary Get recommendations for a user
// @Description Returns two disjoint randomized batches plus the user's recommendationVersion token
// @Tags Recommendations
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id}/recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "recommendations.validation.id")
	}

	recs, err := services.UserRecommendations(h.Store, id)
	if err != nil {
		return respondError(c, err, "recommendations.get")
	}

	return utils.SuccessResponse(c, fiber.Map{
		"current":               h.workList(recs.Current),
		"profile":               h.workList(recs.Profile),
		"recommendationVersion": recs.Version,
	}, fiber.StatusOK)
}

func (h *RecommendationHandler) workList(works []models.Work) []fiber.Map {
	out := make([]fiber.Map, 0, len(works))
	for i := range works {
		w := &works[i]
		summary, err := services.WorkAverageRating(h.Store, w.WorkID)
		if err != nil {
			summary = services.WorkRatingSummary{}
		}
		out = append(out, workPayload(h.Cfg.AssetBaseURL, w, summary))
	}
	return out
}
