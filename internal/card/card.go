package card

// Card represents a trading card record as returned by the cards API
type Card struct {
	// ID is stable and unique within one collection
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	// Types is nil when the API sent no types
	Types []string `json:"types" yaml:"types"`
	// Colors is nil when the color is unknown and empty when the card is colorless
	Colors   []string `json:"colors" yaml:"colors"`
	SetName  string   `json:"setName" yaml:"setName"`
	ImageURL string   `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// HasText reports whether the card carries rules text
func (c Card) HasText() bool {
	return c.Text != ""
}

// HasTypes reports whether the card has at least one type tag
func (c Card) HasTypes() bool {
	return len(c.Types) > 0
}

// HasColors reports whether the card has at least one color tag
func (c Card) HasColors() bool {
	return len(c.Colors) > 0
}

// IsColorless reports whether the card explicitly has no colors.
// A card with no color data at all is not colorless, it is unknown.
func (c Card) IsColorless() bool {
	return c.Colors != nil && len(c.Colors) == 0
}

// Clone returns a copy of the card that shares no slices with the original
func (c Card) Clone() Card {
	out := c
	if c.Types != nil {
		out.Types = append([]string{}, c.Types...)
	}
	if c.Colors != nil {
		out.Colors = append([]string{}, c.Colors...)
	}
	return out
}

// Types selectable in the browser
var AllTypes = []string{
	"Artifact", "Autobot", "Card", "Character", "Conspiracy", "Creature",
	"Dragon", "Elemental", "Enchantment", "Goblin", "Hero", "Instant",
	"Jaguar", "Knights", "Land", "Phenomenon", "Plane", "Planeswalker",
	"Scheme", "Sorcery", "Specter", "Summon", "Tribal", "Vanguard", "Wolf",
	"You’ll",
}

// Colors selectable in the browser
var AllColors = []string{"White", "Blue", "Black", "Red", "Green"}
