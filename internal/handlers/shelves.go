package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkvist/shelfmark/internal/config"
	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/types"
	"github.com/mkvist/shelfmark/internal/utils"
)

// ShelfHandler handles shelf routes
type ShelfHandler struct {
	Store store.Store
	Cfg   *config.Config
}

// CreateShelf handles POST /api/shelves
// @Summary Create a shelf
// @Tags Shelves
// @Accept json
// @Produce json
// @Param body body object true "userId, name, description?"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /shelves [post]
func (h *ShelfHandler) CreateShelf(c *fiber.Ctx) error {
	var body struct {
		UserID      types.FlexUint64 `json:"userId"`
		Name        string           `json:"name"`
		Description string           `json:"description"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID == 0 {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "shelves.validation.input",
			[]string{"userId is required"})
	}

	shelf, err := services.CreateShelf(h.Store, body.UserID.Uint64(), services.ShelfInput{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		return respondError(c, err, "shelves.create")
	}

	return utils.SuccessResponse(c, shelfPayload(shelf), fiber.StatusCreated)
}

// GetShelf handles GET /api/shelves/:id
// @Summary Get a shelf
// @Tags Shelves
// @Produce json
// @Param id path int true "Shelf ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /shelves/{id} [get]
func (h *ShelfHandler) GetShelf(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "shelves.validation.id")
	}

	shelf, err := services.GetShelf(h.Store, id)
	if err != nil {
		return respondError(c, err, "shelves.get")
	}

	return utils.SuccessResponse(c, shelfPayload(shelf), fiber.StatusOK)
}

// ListUserShelves handles GET /api/users/:id/shelves
// @Summary List a user's shelves
// @Tags Shelves
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id}/shelves [get]
func (h *ShelfHandler) ListUserShelves(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "shelves.validation.id")
	}

	shelves, err := services.UserShelves(h.Store, id)
	if err != nil {
		return respondError(c, err, "shelves.list")
	}

	out := make([]fiber.Map, 0, len(shelves))
	for i := range shelves {
		out = append(out, shelfPayload(&shelves[i]))
	}
	return utils.SuccessResponse(c, out, fiber.StatusOK)
}

// UpdateShelf handles PUT /api/shelves/:id
// @Summary Update a shelf
// @Description Partial update; a rename re-checks name uniqueness per owner
// @Tags Shelves
// @Accept json
// @Produce json
// @Param id path int true "Shelf ID"
// @Param body body object true "name?, description?"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /shelves/{id} [put]
func (h *ShelfHandler) UpdateShelf(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "shelves.validation.id")
	}

	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "shelves.validation.input", nil)
	}

	shelf, err := services.UpdateShelf(h.Store, id, services.ShelfUpdate{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		return respondError(c, err, "shelves.update")
	}

	return utils.SuccessResponse(c, shelfPayload(shelf), fiber.StatusOK)
}

// DeleteShelf handles DELETE /api/shelves/:id
// @Summary Delete a shelf
// @Description Referenced works are not deleted
// @Tags Shelves
// @Produce json
// @Param id path int true "Shelf ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /shelves/{id} [delete]
func (h *ShelfHandler) DeleteShelf(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "shelves.validation.id")
	}

	if err := services.DeleteShelf(h.Store, id); err != nil {
		return respondError(c, err, "shelves.delete")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AddWork handles POST /api/shelves/:id/works/:workId
// @Summary Add a work to a shelf
// @Description Idempotent; the work id is a weak reference and is not validated
// @Tags Shelves
// @Produce json
// @Param id path int true "Shelf ID"
// @Param workId path int true "Work ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /shelves/{id}/works/{workId} [post]
func (h *ShelfHandler) AddWork(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "shelves.validation.id")
	}
	workID, err := parseID(c, "workId")
	if err != nil {
		return respondError(c, err, "shelves.validation.id")
	}

	shelf, err := services.AddWorkToShelf(h.Store, id, workID)
	if err != nil {
		return respondError(c, err, "shelves.addWork")
	}

	return utils.SuccessResponse(c, shelfPayload(shelf), fiber.StatusOK)
}

// RemoveWork handles DELETE /api/shelves/:id/works/:workId
// @Summary Remove a work from a shelf
// @Description Idempotent; removing an absent work id is a no-op
// @Tags Shelves
// @Produce json
// @Param id path int true "Shelf ID"
// @Param workId path int true "Work ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /shelves/{id}/works/{workId} [delete]
func (h *ShelfHandler) RemoveWork(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "shelves.validation.id")
	}
	workID, err := parseID(c, "workId")
	if err != nil {
		return respondError(c, err, "shelves.validation.id")
	}

	shelf, err := services.RemoveWorkFromShelf(h.Store, id, workID)
	if err != nil {
		return respondError(c, err, "shelves.removeWork")
	}

	return utils.SuccessResponse(c, shelfPayload(shelf), fiber.StatusOK)
}
