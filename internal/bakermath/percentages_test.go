package bakermath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"levain/models"
)

func TestCalculatePercentagesAgainstFlourTotal(t *testing.T) {
	dir := testDirectory()
	got := CalculatePercentages(countryLoaf(), dir)

	require.Len(t, got, 3)
	want := []float64{100, 70, 2}
	for i, item := range got {
		require.NotNil(t, item.Percentage, "row %d", i)
		assert.InDelta(t, want[i], *item.Percentage, 1e-9, "row %d", i)
	}
	assert.InDelta(t, 172, TotalPercentage(got), 1e-9)
	assert.Equal(t, 1720.0, TotalWeight(got))
	assert.Equal(t, 1000.0, FlourWeight(got, dir))
}

func TestCalculatePercentagesSumsEveryFlour(t *testing.T) {
	items := []models.RecipeIngredient{
		{IngredientID: flourID, Weight: 800},
		{IngredientID: ryeID, Weight: 200},
		{IngredientID: waterID, Weight: 750},
	}
	got := CalculatePercentages(items, testDirectory())

	assert.InDelta(t, 80, *got[0].Percentage, 1e-9)
	assert.InDelta(t, 20, *got[1].Percentage, 1e-9)
	assert.InDelta(t, 75, *got[2].Percentage, 1e-9)
}

func TestCalculatePercentagesWithoutFlourLeavesItemsUnchanged(t *testing.T) {
	items := []models.RecipeIngredient{
		{IngredientID: waterID, Weight: 700, Percentage: pct(12)},
		{IngredientID: saltID, Weight: 20},
	}
	got := CalculatePercentages(items, testDirectory())

	require.NotNil(t, got[0].Percentage)
	assert.Equal(t, 12.0, *got[0].Percentage)
	assert.Nil(t, got[1].Percentage)

	*got[0].Percentage = 99
	assert.Equal(t, 12.0, *items[0].Percentage, "result must not alias the input")
}

func TestCalculatePercentagesIsIdempotent(t *testing.T) {
	dir := testDirectory()
	once := CalculatePercentages(countryLoaf(), dir)
	twice := CalculatePercentages(once, dir)

	for i := range once {
		assert.Equal(t, *once[i].Percentage, *twice[i].Percentage)
	}
}

func TestCalculatePercentagesIgnoresStalePercentages(t *testing.T) {
	items := countryLoaf()
	items[1].Percentage = pct(55)
	got := CalculatePercentages(items, testDirectory())

	assert.InDelta(t, 70, *got[1].Percentage, 1e-9)
}

func TestUnknownIngredientIsNotFlour(t *testing.T) {
	items := []models.RecipeIngredient{
		{IngredientID: "missing", Weight: 500},
		{IngredientID: waterID, Weight: 300},
	}
	dir := testDirectory()

	assert.Equal(t, 0.0, FlourWeight(items, dir))
	assert.Equal(t, models.UnknownIngredientName, Lookup(dir, "missing").Name)
	assert.False(t, Lookup(nil, flourID).IsFlour)
}

func TestReductionsOnEmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, TotalWeight(nil))
	assert.Equal(t, 0.0, TotalPercentage(nil))
	assert.Empty(t, CalculatePercentages(nil, testDirectory()))
}

func TestNegativeWeightsPropagate(t *testing.T) {
	items := []models.RecipeIngredient{
		{IngredientID: flourID, Weight: 1000},
		{IngredientID: waterID, Weight: -100},
	}
	got := CalculatePercentages(items, testDirectory())

	assert.Equal(t, 900.0, TotalWeight(got))
	assert.InDelta(t, -10, *got[1].Percentage, 1e-9)
}

func TestPercentageOf(t *testing.T) {
	assert.Nil(t, PercentageOf(10, 0))
	assert.InDelta(t, 25, *PercentageOf(10, 40), 1e-9)
}
