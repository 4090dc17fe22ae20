package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkvist/shelfmark/internal/config"
	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/types"
	"github.com/mkvist/shelfmark/internal/utils"
)

// RatingHandler handles rating routes
type RatingHandler struct {
	Store store.Store
	Cfg   *config.Config
}

// RateWork handles POST /api/works/:id/ratings
// @Summary Rate a work
// @Description Upserts the caller's rating for the work: one rating per (user, work)
// @Tags Ratings
// @Accept json
// @Produce json
// @Param id path int true "Work ID"
// @Param body body object true "userId, score (1-5)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /works/{id}/ratings [post]
func (h *RatingHandler) RateWork(c *fiber.Ctx) error {
	workID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "ratings.validation.id")
	}

	var body struct {
		UserID types.FlexUint64 `json:"userId"`
		Score  *int             `json:"score"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID == 0 || body.Score == nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "ratings.validation.input",
			[]string{"userId and an integer score are required"})
	}

	rating, err := services.CreateOrUpdateRating(h.Store, body.UserID.Uint64(), workID, *body.Score)
	if err != nil {
		return respondError(c, err, "ratings.upsert")
	}

	return utils.SuccessResponse(c, ratingPayload(rating), fiber.StatusOK)
}

// GetWorkRating handles GET /api/works/:id/rating
// @Summary Get a work's aggregate rating
// @Description Mean rounded to 2 decimal places plus count, recomputed on every read
// @Tags Ratings
// @Produce json
// @Param id path int true "Work ID"
// @Success 200 {object} services.WorkRatingSummary
// @Router /works/{id}/rating [get]
func (h *RatingHandler) GetWorkRating(c *fiber.Ctx) error {
	workID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "ratings.validation.id")
	}

	summary, err := services.WorkAverageRating(h.Store, workID)
	if err != nil {
		return respondError(c, err, "ratings.average")
	}

	return utils.SuccessResponse(c, summary, fiber.StatusOK)
}

// UpdateRating handles PUT /api/ratings/:id
// @Summary Update a rating by id
// @Tags Ratings
// @Accept json
// @Produce json
// @Param id path int true "Rating ID"
// @Param body body object true "score (1-5)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /ratings/{id} [put]
func (h *RatingHandler) UpdateRating(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "ratings.validation.id")
	}

	var body struct {
		Score *int `json:"score"`
	}
	if err := c.BodyParser(&body); err != nil || body.Score == nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "ratings.validation.input",
			[]string{"an integer score is required"})
	}

	rating, err := services.UpdateRating(h.Store, id, *body.Score)
	if err != nil {
		return respondError(c, err, "ratings.update")
	}

	return utils.SuccessResponse(c, ratingPayload(rating), fiber.StatusOK)
}

// DeleteRating handles DELETE /api/ratings/:id
// @Summary Delete a rating by id
// @Tags Ratings
// @Produce json
// @Param id path int true "Rating ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /ratings/{id} [delete]
func (h *RatingHandler) DeleteRating(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "ratings.validation.id")
	}

	if err := services.DeleteRating(h.Store, id); err != nil {
		return respondError(c, err, "ratings.delete")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
