package handlers

import (
	"errors"

	"foodgram-backend/domain"

	"github.com/gofiber/fiber/v2"
)

// errorStatus maps domain errors onto the HTTP taxonomy: 404 for missing
// targets (including toggle-remove when absent), 409 for double adds and
// duplicate unique keys, 403 for ownership violations, 400 otherwise.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFavorited),
		errors.Is(err, domain.ErrNotInShoppingCart),
		errors.Is(err, domain.ErrNotSubscribed),
		errors.Is(err, domain.ErrShoppingCartEmpty):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyFavorited),
		errors.Is(err, domain.ErrAlreadyInShoppingCart),
		errors.Is(err, domain.ErrAlreadySubscribed),
		errors.Is(err, domain.ErrRecipeNameTaken),
		errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrTagAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrCredentialsInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadRequest
	}
}

// pagination reads the page/limit query params with the listing defaults.
func pagination(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

// callerID returns the authenticated user id, or "" for anonymous callers.
func callerID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

func paginationMap(page, limit int, count int64) fiber.Map {
	return fiber.Map{
		"page":        page,
		"limit":       limit,
		"total":       count,
		"total_pages": (count + int64(limit) - 1) / int64(limit),
	}
}
