package recipe

import (
	"fmt"
	"sort"
	"strings"

	"foodgram-backend/domain"
)

// AggregateShoppingList sums amounts of identical ingredients across every
// cart row. Rows are grouped by (name, measurement unit) and summed with
// exact integer arithmetic; the result is sorted by (name, unit) so a given
// cart snapshot always renders the same list.
func AggregateShoppingList(rows []CartIngredientRow) []domain.ShoppingListLine {
	type key struct {
		name string
		unit string
	}

	totals := make(map[key]int, len(rows))
	for _, row := range rows {
		totals[key{row.Name, row.MeasurementUnit}] += row.Amount
	}

	lines := make([]domain.ShoppingListLine, 0, len(totals))
	for k, total := range totals {
		lines = append(lines, domain.ShoppingListLine{
			Name:            k.name,
			MeasurementUnit: k.unit,
			Amount:          total,
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Name != lines[j].Name {
			return lines[i].Name < lines[j].Name
		}
		return lines[i].MeasurementUnit < lines[j].MeasurementUnit
	})

	return lines
}

// RenderShoppingList formats the aggregated list as the downloadable
// plain-text document, one ingredient per line.
func RenderShoppingList(lines []domain.ShoppingListLine) string {
	var b strings.Builder
	b.WriteString("Shopping list\n\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "%s (%s) — %d\n", line.Name, line.MeasurementUnit, line.Amount)
	}
	return b.String()
}
