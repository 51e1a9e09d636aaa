package bakermath

import "levain/models"

// Directory resolves ingredient identifiers to their name and flour flag.
type Directory interface {
	Resolve(id string) (models.Ingredient, bool)
}

// IngredientDirectory is an in-memory Directory keyed by ingredient id.
type IngredientDirectory map[string]models.Ingredient

// NewDirectory indexes the supplied ingredients. Later duplicates win.
func NewDirectory(ingredients []models.Ingredient) IngredientDirectory {
	dir := make(IngredientDirectory, len(ingredients))
	for _, ingredient := range ingredients {
		dir[ingredient.ID] = ingredient
	}
	return dir
}

func (d IngredientDirectory) Resolve(id string) (models.Ingredient, bool) {
	ingredient, ok := d[id]
	return ingredient, ok
}

// Lookup resolves id, substituting a non-flour "Unknown" placeholder when the
// directory has no such ingredient.
func Lookup(dir Directory, id string) models.Ingredient {
	if dir != nil {
		if ingredient, ok := dir.Resolve(id); ok {
			return ingredient
		}
	}
	return models.Ingredient{ID: id, Name: models.UnknownIngredientName}
}

func isFlour(dir Directory, id string) bool {
	return Lookup(dir, id).IsFlour
}
