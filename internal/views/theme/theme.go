package theme

import "strings"

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// SheetTheme is the palette applied to production sheets.
type SheetTheme struct {
	Key        string
	Background string
	Surface    string
	Header     string
	Border     string
	Text       string
	Muted      string
	Accent     string
	Warning    string
}

const (
	// DefaultKey defines the fallback theme when none is requested.
	DefaultKey = "bakery"
)

var catalogue = map[string]SheetTheme{
	"bakery": {
		Key:        "bakery",
		Background: "#faf6ef",
		Surface:    "#ffffff",
		Header:     "#f1e6d2",
		Border:     "#e3d3b5",
		Text:       "#3b2a1a",
		Muted:      "#8a7159",
		Accent:     "#b5651d",
		Warning:    "#b3261e",
	},
	"print": {
		Key:        "print",
		Background: "#ffffff",
		Surface:    "#ffffff",
		Header:     "#eeeeee",
		Border:     "#999999",
		Text:       "#000000",
		Muted:      "#444444",
		Accent:     "#000000",
		Warning:    "#000000",
	},
	"night_shift": {
		Key:        "night_shift",
		Background: "#1c1917",
		Surface:    "#292524",
		Header:     "#3f3a36",
		Border:     "#57534e",
		Text:       "#f5f5f4",
		Muted:      "#a8a29e",
		Accent:     "#fbbf24",
		Warning:    "#f87171",
	},
}

var options = []Option{
	{Value: "bakery", Label: "Bakery (Light)"},
	{Value: "print", Label: "Print (High contrast)"},
	{Value: "night_shift", Label: "Night shift (Dark)"},
}

// Resolve returns the registered theme configuration for the provided key.
func Resolve(key string) SheetTheme {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Options exposes the available theme selections for rendering in a form control.
func Options() []Option {
	return options
}
