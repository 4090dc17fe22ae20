package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mkvist/shelfmark/internal/config"
	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/utils"
)

// SearchHandler handles catalog and user search
type SearchHandler struct {
	Store store.Store
	Cfg   *config.Config
}

// Search handles GET /api/search
// @Summary Search works and users
// @Description Combines a free-text query with work filters. Omitting itemType searches both lists.
// @Tags Search
// @Produce json
// @Param query query string false "Substring match on title, description, creator, username or email"
// @Param itemType query string false "work or user"
// @Param workType query string false "movie, series, music, book or graphic-novel"
// @Param genre query string false "Genre membership, case-insensitive"
// @Param minRating query number false "Minimum average rating"
// @Param year query int false "Release year, forward-inclusive"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	params := services.SearchParams{
		Query:    strings.TrimSpace(c.Query("query")),
		ItemType: strings.TrimSpace(c.Query("itemType")),
		WorkType: strings.TrimSpace(c.Query("workType")),
		Genre:    strings.TrimSpace(c.Query("genre")),
	}

	if raw := c.Query("minRating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return utils.ErrorResponse(c, "Invalid search input", fiber.StatusBadRequest,
				"search.validation.minRating", []string{"minRating must be a non-negative number"})
		}
		params.MinRating = v
	}
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return utils.ErrorResponse(c, "Invalid search input", fiber.StatusBadRequest,
				"search.validation.year", []string{"year must be a non-negative integer"})
		}
		params.Year = v
	}

	results, err := services.SearchItems(h.Store, params)
	if err != nil {
		return respondError(c, err, "search.query")
	}

	out := fiber.Map{}
	if results.Works != nil {
		works := make([]fiber.Map, 0, len(results.Works))
		for i := range results.Works {
			r := &results.Works[i]
			works = append(works, workPayload(h.Cfg.AssetBaseURL, &r.Work, services.WorkRatingSummary{
				AverageRating: r.AverageRating,
				TotalRatings:  r.TotalRatings,
			}))
		}
		out["works"] = works
	}
	if results.Users != nil {
		users := make([]fiber.Map, 0, len(results.Users))
		for i := range results.Users {
			users = append(users, userSummaryPayload(h.Cfg.AssetBaseURL, &results.Users[i]))
		}
		out["users"] = users
	}

	return utils.SuccessResponse(c, out, fiber.StatusOK)
}
