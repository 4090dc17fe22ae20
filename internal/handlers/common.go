package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mkvist/shelfmark/internal/models"
	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/types"
	"github.com/mkvist/shelfmark/internal/utils"
)

// parseID reads a path parameter as a positive integer id.
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, types.Validation("invalid path parameter", name+" must be a positive integer")
	}
	return id, nil
}

// statusForKind maps the domain error taxonomy to transport codes.
func statusForKind(kind types.ErrorKind) int {
	switch kind {
	case types.KindNotFound:
		return fiber.StatusNotFound
	case types.KindValidation, types.KindAlreadyExists, types.KindInvalidRelationship:
		return fiber.StatusBadRequest
	case types.KindAuthentication:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// respondError writes a domain error with the right status, or a 500
// envelope for anything the service layer did not classify.
func respondError(c *fiber.Ctx, err error, errorType string) error {
	var de *types.DomainError
	if errors.As(err, &de) {
		return utils.ErrorResponse(c, de.Message, statusForKind(de.Kind), errorType, de.Details)
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType, nil)
}

// userPayload formats a full user record for API output.
func userPayload(assetBaseURL string, u *models.User) fiber.Map {
	return fiber.Map{
		"id":                    u.UserID,
		"username":              u.Username,
		"email":                 u.Email,
		"imageUrl":              utils.ResolveImageURL(assetBaseURL, u.ImagePath, "user"),
		"ratedWorks":            u.RatedWorkEntries(),
		"followers":             u.FollowerIDs(),
		"following":             u.FollowingIDs(),
		"recommendationVersion": u.RecommendationVersion,
		"createdAt":             u.CreatedAt,
	}
}

// userSummaryPayload formats the lightweight user shape used by follower
// lists and user search.
func userSummaryPayload(assetBaseURL string, u *models.User) fiber.Map {
	return fiber.Map{
		"id":       u.UserID,
		"username": u.Username,
		"email":    u.Email,
		"imageUrl": utils.ResolveImageURL(assetBaseURL, u.ImagePath, "user"),
	}
}

// workPayload formats a work plus its derived rating.
func workPayload(assetBaseURL string, w *models.Work, summary services.WorkRatingSummary) fiber.Map {
	return fiber.Map{
		"id":            w.WorkID,
		"title":         w.Title,
		"description":   w.Description,
		"type":          w.Type,
		"year":          w.Year,
		"genres":        w.GenreList(),
		"creator":       w.Creator,
		"coverUrl":      utils.ResolveImageURL(assetBaseURL, w.CoverPath, w.Type),
		"discoveryLink": w.DiscoveryLink,
		"averageRating": summary.AverageRating,
		"totalRatings":  summary.TotalRatings,
	}
}

// ratingPayload formats a rating record. The id field name is part of the
// API contract.
func ratingPayload(r *models.Rating) fiber.Map {
	return fiber.Map{
		"ratingId": r.RatingID,
		"userId":   r.UserID,
		"workId":   r.WorkID,
		"score":    r.Score,
		"ratedAt":  r.RatedAt,
	}
}

// shelfPayload formats a shelf record.
func shelfPayload(s *models.Shelf) fiber.Map {
	return fiber.Map{
		"id":          s.ShelfID,
		"userId":      s.UserID,
		"name":        s.Name,
		"description": s.Description,
		"works":       s.WorkIDs(),
		"createdAt":   s.CreatedAt,
	}
}
