package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVisibilityFlagsAnonymous(t *testing.T) {
	recipeID := uuid.New()
	favorited := map[uuid.UUID]bool{recipeID: true}
	inCart := map[uuid.UUID]bool{recipeID: true}

	isFavorited, isInCart := VisibilityFlags(recipeID, "", favorited, inCart)

	assert.False(t, isFavorited)
	assert.False(t, isInCart)
}

func TestVisibilityFlagsAuthenticated(t *testing.T) {
	recipeID := uuid.New()
	other := uuid.New()
	callerID := uuid.New().String()

	favorited := map[uuid.UUID]bool{recipeID: true}
	inCart := map[uuid.UUID]bool{other: true}

	isFavorited, isInCart := VisibilityFlags(recipeID, callerID, favorited, inCart)
	assert.True(t, isFavorited)
	assert.False(t, isInCart)

	isFavorited, isInCart = VisibilityFlags(other, callerID, favorited, inCart)
	assert.False(t, isFavorited)
	assert.True(t, isInCart)
}

func TestVisibilityFlagsNilSets(t *testing.T) {
	isFavorited, isInCart := VisibilityFlags(uuid.New(), uuid.New().String(), nil, nil)

	assert.False(t, isFavorited)
	assert.False(t, isInCart)
}
