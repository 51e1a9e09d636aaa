package components

// Stat is a labelled figure in a summary strip.
type Stat struct {
	Label string
	Value string
	Warn  bool
}
