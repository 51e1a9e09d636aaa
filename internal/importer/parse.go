// Package importer turns plain-text and PDF ingredient lists into recipes.
package importer

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrNoIngredients = errors.New("importer: no ingredient lines found")
	ErrEmptyDocument = errors.New("importer: document is empty")
)

var (
	// "Bread flour 1000 g", "Water: 700g", "- Salt 0.02 kg *"
	linePattern     = regexp.MustCompile(`^(.+?)[\s:]+([0-9]+(?:[.,][0-9]+)?)\s*(kg|g|gr|grams?|kilograms?)?\.?\s*(\*|\(flour\))?$`)
	flourMarker     = regexp.MustCompile(`(?i)\s*(\*|\(flour\))\s*$`)
	bulletPattern   = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

// Line is one parsed ingredient line, weights in grams.
type Line struct {
	Name    string
	Grams   float64
	IsFlour bool
}

// Draft is the recipe described by a document before it is matched against the
// ingredient directory.
type Draft struct {
	Name        string
	Description string
	Lines       []Line
	Skipped     []string
}

// Parse reads one ingredient per line. The first line that is not an ingredient
// becomes the recipe name unless nameHint is set; later prose lines are collected
// into the description. A trailing "*" or "(flour)" marks a flour.
func Parse(text, nameHint string) (Draft, error) {
	if strings.TrimSpace(text) == "" {
		return Draft{}, ErrEmptyDocument
	}

	draft := Draft{Name: strings.TrimSpace(nameHint)}
	var description []string

	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := cleanWhitespace.ReplaceAllString(strings.TrimSpace(raw), " ")
		if line == "" {
			continue
		}
		line = bulletPattern.ReplaceAllString(line, "")
		if heading := strings.TrimSpace(strings.TrimLeft(line, "#")); heading != line {
			if draft.Name == "" {
				draft.Name = heading
			}
			continue
		}

		parsed, ok := parseLine(line)
		if ok {
			draft.Lines = append(draft.Lines, parsed)
			continue
		}
		if draft.Name == "" && len(draft.Lines) == 0 {
			draft.Name = line
			continue
		}
		if len(draft.Lines) == 0 {
			description = append(description, line)
			continue
		}
		draft.Skipped = append(draft.Skipped, line)
	}

	draft.Description = strings.Join(description, " ")
	if len(draft.Lines) == 0 {
		return draft, ErrNoIngredients
	}
	return draft, nil
}

func parseLine(line string) (Line, bool) {
	match := linePattern.FindStringSubmatch(line)
	if match == nil {
		return Line{}, false
	}

	name := strings.TrimSpace(match[1])
	isFlour := match[4] != ""
	if flourMarker.MatchString(name) {
		name = strings.TrimSpace(flourMarker.ReplaceAllString(name, ""))
		isFlour = true
	}
	name = strings.TrimRight(name, " :-")
	if name == "" {
		return Line{}, false
	}

	grams, err := strconv.ParseFloat(strings.ReplaceAll(match[2], ",", "."), 64)
	if err != nil || grams <= 0 {
		return Line{}, false
	}
	if strings.HasPrefix(strings.ToLower(match[3]), "k") {
		grams *= 1000
	}

	if !isFlour && strings.Contains(strings.ToLower(name), "flour") {
		isFlour = true
	}
	return Line{Name: name, Grams: grams, IsFlour: isFlour}, true
}
