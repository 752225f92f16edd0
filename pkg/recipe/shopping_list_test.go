package recipe

import (
	"testing"

	"foodgram-backend/domain"

	"github.com/stretchr/testify/assert"
)

func TestAggregateShoppingList(t *testing.T) {
	rows := []CartIngredientRow{
		{Name: "flour", MeasurementUnit: "g", Amount: 2},
		{Name: "egg", MeasurementUnit: "pcs", Amount: 1},
		{Name: "flour", MeasurementUnit: "g", Amount: 3},
		{Name: "sugar", MeasurementUnit: "g", Amount: 2},
	}

	lines := AggregateShoppingList(rows)

	assert.Equal(t, []domain.ShoppingListLine{
		{Name: "egg", MeasurementUnit: "pcs", Amount: 1},
		{Name: "flour", MeasurementUnit: "g", Amount: 5},
		{Name: "sugar", MeasurementUnit: "g", Amount: 2},
	}, lines)
}

func TestAggregateShoppingListKeepsUnitsSeparate(t *testing.T) {
	rows := []CartIngredientRow{
		{Name: "milk", MeasurementUnit: "ml", Amount: 200},
		{Name: "milk", MeasurementUnit: "l", Amount: 1},
	}

	lines := AggregateShoppingList(rows)

	assert.Equal(t, []domain.ShoppingListLine{
		{Name: "milk", MeasurementUnit: "l", Amount: 1},
		{Name: "milk", MeasurementUnit: "ml", Amount: 200},
	}, lines)
}

func TestAggregateShoppingListDeterministic(t *testing.T) {
	rows := []CartIngredientRow{
		{Name: "salt", MeasurementUnit: "g", Amount: 1},
		{Name: "pepper", MeasurementUnit: "g", Amount: 2},
		{Name: "basil", MeasurementUnit: "g", Amount: 3},
	}

	first := AggregateShoppingList(rows)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, AggregateShoppingList(rows))
	}
}

func TestAggregateShoppingListEmpty(t *testing.T) {
	assert.Empty(t, AggregateShoppingList(nil))
}

func TestRenderShoppingList(t *testing.T) {
	lines := []domain.ShoppingListLine{
		{Name: "egg", MeasurementUnit: "pcs", Amount: 1},
		{Name: "flour", MeasurementUnit: "g", Amount: 5},
	}

	rendered := RenderShoppingList(lines)

	assert.Equal(t, "Shopping list\n\negg (pcs) — 1\nflour (g) — 5\n", rendered)
}
