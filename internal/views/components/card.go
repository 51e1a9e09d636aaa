package components

// Row is one table line of a sheet card. Cells are already formatted.
type Row struct {
	Label   string
	Badges  []string
	Weight  string
	Percent string
	Note    string
	Warn    bool
	Total   bool
	Muted   bool
}

// CardData describes a titled card holding an ingredient table.
type CardData struct {
	Eyebrow  string
	Title    string
	Subtitle string
	Notes    string
	// Empty replaces the table when there are no rows.
	Empty       string
	ShowPercent bool
	NoteColumn  string
	Rows        []Row
	Legend      string
}
