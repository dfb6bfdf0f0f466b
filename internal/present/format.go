// Package present formats card records for the terminal.
package present

import (
	"strings"

	colorize "github.com/fatih/color"

	"github.com/arcanaland/grimoire/internal/card"
)

const (
	NoData         = "-- no data --"
	ImageNotFound  = "Image not found"
	ColorlessLabel = "Card is colorless"
)

// FormatList joins list values with commas, with no separator after the
// last one. A nil list has no data.
func FormatList(values []string) string {
	if values == nil {
		return NoData
	}
	return strings.Join(values, ", ")
}

// TypeLabel returns the label for a card's types
func TypeLabel(types []string) string {
	if len(types) > 1 {
		return "Types:"
	}
	return "Type:"
}

// ColorLabel returns the label for a card's colors. Cards without color
// data and cards with an empty color list are both labeled colorless.
func ColorLabel(colors []string) string {
	switch {
	case colors == nil, len(colors) == 0:
		return ColorlessLabel
	case len(colors) == 1:
		return "Color:"
	default:
		return "Colors:"
	}
}

// ColorValue returns the text shown after the color label
func ColorValue(colors []string) string {
	if len(colors) == 0 {
		return ""
	}
	return FormatList(colors)
}

// Lines returns the labeled info lines for a card
func Lines(c card.Card) []string {
	label := colorize.New(colorize.FgCyan, colorize.Bold).SprintFunc()
	value := colorize.New(colorize.FgHiWhite).SprintFunc()

	lines := []string{
		label("Name:") + " " + value(c.Name),
		label(TypeLabel(c.Types)) + " " + value(FormatList(c.Types)),
		label("Set name:") + " " + value(c.SetName),
	}

	if v := ColorValue(c.Colors); v != "" {
		lines = append(lines, label(ColorLabel(c.Colors))+" "+value(v))
	} else {
		lines = append(lines, label(ColorLabel(c.Colors)))
	}

	lines = append(lines, label("Text:")+" "+value(c.Text))

	if c.ImageURL != "" {
		lines = append(lines, label("Image:")+" "+value(c.ImageURL))
	} else {
		lines = append(lines, colorize.YellowString(ImageNotFound))
	}
	return lines
}

// Card formats one card as a block of text
func Card(c card.Card) string {
	return strings.Join(Lines(c), "\n") + "\n"
}

// Summary formats a card on one line for listings
func Summary(c card.Card) string {
	name := colorize.HiWhiteString("%s", c.Name)
	meta := FormatList(c.Types)
	switch {
	case c.HasColors():
		meta += " · " + FormatList(c.Colors)
	case c.IsColorless():
		meta += " · colorless"
	default:
		meta += " · no color data"
	}
	return name + " " + colorize.HiBlackString("(%s, %s)", meta, c.SetName)
}
