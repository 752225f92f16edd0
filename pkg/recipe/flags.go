package recipe

import (
	"github.com/google/uuid"
)

// VisibilityFlags derives the per-caller booleans for a recipe listing.
// callerID is empty for anonymous callers, for whom both flags are false
// regardless of the sets' contents. The sets hold the recipe ids the caller
// has favorited / put in the cart.
func VisibilityFlags(recipeID uuid.UUID, callerID string, favorited, inCart map[uuid.UUID]bool) (bool, bool) {
	if callerID == "" {
		return false, false
	}
	return favorited[recipeID], inCart[recipeID]
}
