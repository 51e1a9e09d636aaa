package bakermath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"levain/models"
)

func levainStages() []models.Stage {
	return []models.Stage{
		{
			ID:   "levain",
			Name: "Levain",
			Ingredients: []models.StageIngredient{
				{IngredientID: flourID, Weight: 100, FromFormula: true},
				{IngredientID: waterID, Weight: 100, FromFormula: true},
				{IngredientID: starterID, Weight: 20},
			},
		},
		{ID: "autolyse", Name: "Autolyse"},
		{
			ID:   "poolish",
			Name: "Poolish",
			Ingredients: []models.StageIngredient{
				{IngredientID: flourID, Weight: 200, FromFormula: true},
				{IngredientID: waterID, Weight: 200, FromFormula: true},
			},
		},
	}
}

func TestStageAllocationsSkipExtras(t *testing.T) {
	got := StageAllocations(levainStages())

	assert.Equal(t, map[string]float64{flourID: 300, waterID: 300}, got)
}

func TestOtherStageAllocationsExcludesOneStage(t *testing.T) {
	stages := levainStages()

	assert.Equal(t, map[string]float64{flourID: 200, waterID: 200}, OtherStageAllocations(stages, 0))
	assert.Equal(t, StageAllocations(stages), OtherStageAllocations(stages, 7))
}

func TestStageAvailabilityFlagsOverAllocation(t *testing.T) {
	stages := []models.Stage{
		{Name: "Levain", Ingredients: []models.StageIngredient{
			{IngredientID: flourID, Weight: 600, FromFormula: true},
			{IngredientID: starterID, Weight: 50},
		}},
		{Name: "Poolish", Ingredients: []models.StageIngredient{
			{IngredientID: flourID, Weight: 600, FromFormula: true},
		}},
	}

	rows := StageAvailability(stages, countryLoaf(), 1)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Tracked)
	assert.Equal(t, -200.0, rows[0].Available)
	assert.True(t, rows[0].OverAllocated)

	rows = StageAvailability(stages, countryLoaf(), 0)
	require.Len(t, rows, 2)
	assert.False(t, rows[1].Tracked, "extras have no formula budget")

	assert.Equal(t, map[string]float64{flourID: 200}, OverAllocations(stages, countryLoaf()))
	assert.Nil(t, StageAvailability(stages, countryLoaf(), 5))
}

func TestAvailable(t *testing.T) {
	assert.Equal(t, 300.0, Available(1000, 500, 200))
	assert.Equal(t, -50.0, Available(100, 100, 50))
}
