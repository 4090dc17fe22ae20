package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkvist/shelfmark/internal/config"
	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/utils"
)

// UserHandler handles account and profile routes
type UserHandler struct {
	Store store.Store
	Cfg   *config.Config
}

// Signup handles POST /api/users
// @Summary Register a user
// @Description Create a new account with a unique username and email
// @Tags Users
// @Accept json
// @Produce json
// @Param body body object true "username, email, password, imagePath?"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) Signup(c *fiber.Ctx) error {
	var body struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		ImagePath string `json:"imagePath"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input", nil)
	}

	user, err := services.RegisterUser(h.Store, services.SignupInput{
		Username:  body.Username,
		Email:     body.Email,
		Password:  body.Password,
		ImagePath: body.ImagePath,
	})
	if err != nil {
		return respondError(c, err, "users.signup")
	}

	return utils.SuccessResponse(c, userPayload(h.Cfg.AssetBaseURL, user), fiber.StatusCreated)
}

// Login handles POST /api/users/login
// @Summary Log in
// @Description Placeholder credential check; no session or token is issued
// @Tags Users
// @Accept json
// @Produce json
// @Param body body object true "identifier (username or email), password"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /users/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil || body.Identifier == "" || body.Password == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input", nil)
	}

	user, err := services.Authenticate(h.Store, body.Identifier, body.Password)
	if err != nil {
		return respondError(c, err, "users.login")
	}

	return utils.SuccessResponse(c, userPayload(h.Cfg.AssetBaseURL, user), fiber.StatusOK)
}

// GetUser handles GET /api/users/:id
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "users.validation.id")
	}

	user, err := services.GetUser(h.Store, id)
	if err != nil {
		return respondError(c, err, "users.get")
	}

	return utils.SuccessResponse(c, userPayload(h.Cfg.AssetBaseURL, user), fiber.StatusOK)
}

// UpdateUser handles PUT /api/users/:id
// @Summary Update a profile
// @Description Partial update; username/email uniqueness is re-checked
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body object true "username?, email?, password?, imagePath?"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "users.validation.id")
	}

	var body struct {
		Username  *string `json:"username"`
		Email     *string `json:"email"`
		Password  *string `json:"password"`
		ImagePath *string `json:"imagePath"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input", nil)
	}

	user, err := services.UpdateUser(h.Store, id, services.UserUpdate{
		Username:  body.Username,
		Email:     body.Email,
		Password:  body.Password,
		ImagePath: body.ImagePath,
	})
	if err != nil {
		return respondError(c, err, "users.update")
	}

	return utils.SuccessResponse(c, userPayload(h.Cfg.AssetBaseURL, user), fiber.StatusOK)
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Delete an account
// @Description Removes the account with a best-effort cascade of ratings, shelves and follow edges
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "users.validation.id")
	}

	if err := services.DeleteUser(h.Store, id); err != nil {
		return respondError(c, err, "users.delete")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserRatings handles GET /api/users/:id/ratings
// @Summary List a user's ratings
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id}/ratings [get]
func (h *UserHandler) GetUserRatings(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "users.validation.id")
	}

	ratings, err := services.UserRatings(h.Store, id)
	if err != nil {
		return respondError(c, err, "users.ratings")
	}

	out := make([]fiber.Map, 0, len(ratings))
	for i := range ratings {
		out = append(out, ratingPayload(&ratings[i]))
	}
	return utils.SuccessResponse(c, out, fiber.StatusOK)
}

// Follow handles POST /api/users/:id/follow/:targetId
// @Summary Follow a user
// @Tags Social
// @Produce json
// @Param id path int true "User ID"
// @Param targetId path int true "Target user ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id}/follow/{targetId} [post]
func (h *UserHandler) Follow(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "social.validation.id")
	}
	targetID, err := parseID(c, "targetId")
	if err != nil {
		return respondError(c, err, "social.validation.id")
	}

	if err := services.FollowUser(h.Store, id, targetID); err != nil {
		return respondError(c, err, "social.follow")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Unfollow handles DELETE /api/users/:id/follow/:targetId
// @Summary Unfollow a user
// @Tags Social
// @Produce json
// @Param id path int true "User ID"
// @Param targetId path int true "Target user ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id}/follow/{targetId} [delete]
func (h *UserHandler) Unfollow(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "social.validation.id")
	}
	targetID, err := parseID(c, "targetId")
	if err != nil {
		return respondError(c, err, "social.validation.id")
	}

	if err := services.UnfollowUser(h.Store, id, targetID); err != nil {
		return respondError(c, err, "social.unfollow")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowing handles GET /api/users/:id/following
// @Summary List followed users
// @Description Lightweight summaries; dangling ids are dropped silently
// @Tags Social
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id}/following [get]
func (h *UserHandler) GetFollowing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "social.validation.id")
	}

	users, err := services.UserFollowing(h.Store, id)
	if err != nil {
		return respondError(c, err, "social.following")
	}

	out := make([]fiber.Map, 0, len(users))
	for i := range users {
		out = append(out, userSummaryPayload(h.Cfg.AssetBaseURL, &users[i]))
	}
	return utils.SuccessResponse(c, out, fiber.StatusOK)
}

// GetFollowers handles GET /api/users/:id/followers
// @Summary List followers
// @Description Lightweight summaries; dangling ids are dropped silently
// @Tags Social
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id}/followers [get]
func (h *UserHandler) GetFollowers(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err, "social.validation.id")
	}

	users, err := services.UserFollowers(h.Store, id)
	if err != nil {
		return respondError(c, err, "social.followers")
	}

	out := make([]fiber.Map, 0, len(users))
	for i := range users {
		out = append(out, userSummaryPayload(h.Cfg.AssetBaseURL, &users[i]))
	}
	return utils.SuccessResponse(c, out, fiber.StatusOK)
}
