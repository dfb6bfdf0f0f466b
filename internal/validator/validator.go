package validator

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/arcanaland/grimoire/internal/card"
	"github.com/arcanaland/grimoire/internal/source"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
	Cards    int
}

type Validator struct {
	SnapshotPath string
	Results      ValidationResults
}

func NewValidator(snapshotPath string) *Validator {
	return &Validator{
		SnapshotPath: snapshotPath,
		Results:      ValidationResults{},
	}
}

// Validate loads the snapshot and checks every record. A snapshot that
// cannot be read or decoded is reported as an error return; problems with
// individual records end up in the results.
func (v *Validator) Validate() (ValidationResults, error) {
	if v.SnapshotPath != "" {
		if _, err := os.Stat(v.SnapshotPath); os.IsNotExist(err) {
			return v.Results, fmt.Errorf("snapshot not found: %s", v.SnapshotPath)
		}
	}

	cards, err := source.NewSnapshot(v.SnapshotPath, nil).Load(context.Background())
	if err != nil {
		return v.Results, err
	}

	v.ValidateCards(cards)
	return v.Results, nil
}

// ValidateCards checks an already loaded collection
func (v *Validator) ValidateCards(cards []card.Card) ValidationResults {
	v.Results.Cards = len(cards)
	if len(cards) == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "snapshot contains no cards")
		return v.Results
	}

	v.validateIDs(cards)
	for i, c := range cards {
		v.validateCard(i, c)
	}
	return v.Results
}

// validateIDs checks identifier uniqueness across the collection
func (v *Validator) validateIDs(cards []card.Card) {
	seen := make(map[string]int, len(cards))
	missing := 0
	for i, c := range cards {
		if c.ID == "" {
			missing++
			continue
		}
		if first, ok := seen[c.ID]; ok {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("duplicate id %s (cards %d and %d)", c.ID, first+1, i+1))
			continue
		}
		seen[c.ID] = i
	}

	if missing > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%d cards have no id; ids will be generated on load", missing))
	}
}

// validateCard checks the fields of one record
func (v *Validator) validateCard(i int, c card.Card) {
	ref := cardRef(i, c)

	if strings.TrimSpace(c.Name) == "" {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: name is required", ref))
	}

	if c.Types == nil {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s: no types, card is hidden by any type filter", ref))
	}

	if c.Colors == nil {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s: no color data, card is hidden by any color filter", ref))
	}

	for _, color := range c.Colors {
		if !isKnownColor(color) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s: unknown color %q", ref, color))
		}
	}

	if c.ImageURL == "" {
		v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf("%s: no image", ref))
	}
}

// cardRef names a card in messages
func cardRef(i int, c card.Card) string {
	if c.Name != "" {
		return fmt.Sprintf("card %d (%s)", i+1, c.Name)
	}
	return fmt.Sprintf("card %d", i+1)
}

func isKnownColor(color string) bool {
	for _, known := range card.AllColors {
		if strings.EqualFold(known, color) {
			return true
		}
	}
	return false
}
