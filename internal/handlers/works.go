package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkvist/shelfmark/internal/config"
	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/types"
	"github.com/mkvist/shelfmark/internal/utils"
)

// WorkHandler handles catalog routes
type WorkHandler struct {
	Store store.Store
	Cfg   *config.Config
}

type workBody struct {
	Title         *string                `json:"title"`
	Description   *string                `json:"description"`
	Type          *string                `json:"type"`
	Year          *int                   `json:"year"`
	Genres        types.FlexList[string] `json:"genres"`
	Creator       *string                `json:"creator"`
	CoverPath     *string                `json:"coverPath"`
	DiscoveryLink *string                `json:"discoveryLink"`
}

// CreateWork handles POST /api/works
// @Summary Add a work to the catalog
// @Tags Works
// @Accept json
// @Produce json
// @Param body body object true "title, type, year?, genres?, creator?, description?, coverPath?, discoveryLink?"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /works [post]
func (h *WorkHandler) CreateWork(c *fiber.Ctx) error {
	var body workBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "works.validation.input", nil)
	}

	in := services.WorkInput{Genres: body.Genres.Slice()}
	if body.Title != nil {
		in.Title = *body.Title
	}
	if body.Description != nil {
		in.Description = *body.Description
	}
	if body.Type != nil {
		in.Type = *body.Type
	}
	if body.Year != nil {
		in.Year = *body.Year
	}
	if body.Creator != nil {
		in.Creator = *body.Creator
	}
	if body.CoverPath != nil {
		in.CoverPath = *body.CoverPath
	}
	if body.DiscoveryLink != nil {
		in.DiscoveryLink = *body.DiscoveryLink
	}

	work, err := services.CreateWork(h.Store, in)
	if err != nil {
		return respondError(c, err, "works.create")
	}

	return utils.SuccessResponse(c, workPayload(h.Cfg.AssetBaseURL, work, services.WorkRatingSummary{}), fiber.StatusCreated)
}

// ListWorks handles GET /api/works
// @Summary List the catalog
// @Description Every entry carries its independently derived rating
// @Tags Works
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Router /works [get]
func (h *WorkHandler) ListWorks(c *fiber.Ctx) error {
	works, err := services.ListWorks(h.Store)
	if err != nil {
		return respondError(c, err, "works.list")
	}

	out := make([]fiber.Map, 0, len(works))
	for i := range works {
		summary, err := services.WorkAverageRating(h.Store, works[i].WorkID)
		if err != nil {
			return respondError(c, err, "works.list")
		}
		out = append(out, workPayload(h.Cfg.AssetBaseURL, &works[i], summary))
	}
	return utils.SuccessResponse(c, out, fiber.StatusOK)
}

// GetWork handles GET /api/works/:id
// @Summary Get a work
// @Tags Works
// @Produce json
// @Param id path int true "Work ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /works/{id} [get]
func (h *WorkHandler) GetWork(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "works.validation.id")
	}

	work, err := services.GetWork(h.Store, id)
	if err != nil {
		return respondError(c, err, "works.get")
	}

	summary, err := services.WorkAverageRating(h.Store, id)
	if err != nil {
		return respondError(c, err, "works.get")
	}

	return utils.SuccessResponse(c, workPayload(h.Cfg.AssetBaseURL, work, summary), fiber.StatusOK)
}

// UpdateWork handles PUT /api/works/:id
// @Summary Update a work
// @Tags Works
// @Accept json
// @Produce json
// @Param id path int true "Work ID"
// @Param body body object true "partial work fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /works/{id} [put]
func (h *WorkHandler) UpdateWork(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "works.validation.id")
	}

	var body workBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "works.validation.input", nil)
	}

	work, err := services.UpdateWork(h.Store, id, services.WorkUpdate{
		Title:         body.Title,
		Description:   body.Description,
		Type:          body.Type,
		Year:          body.Year,
		Genres:        body.Genres.Slice(),
		Creator:       body.Creator,
		CoverPath:     body.CoverPath,
		DiscoveryLink: body.DiscoveryLink,
	})
	if err != nil {
		return respondError(c, err, "works.update")
	}

	summary, err := services.WorkAverageRating(h.Store, id)
	if err != nil {
		return respondError(c, err, "works.update")
	}

	return utils.SuccessResponse(c, workPayload(h.Cfg.AssetBaseURL, work, summary), fiber.StatusOK)
}

// DeleteWork handles DELETE /api/works/:id
// @Summary Delete a work
// @Description Ratings referencing the work are left as logical orphans
// @Tags Works
// @Produce json
// @Param id path int true "Work ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /works/{id} [delete]
func (h *WorkHandler) DeleteWork(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "works.validation.id")
	}

	if err := services.DeleteWork(h.Store, id); err != nil {
		return respondError(c, err, "works.delete")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
