package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresenceHelpers(t *testing.T) {
	full := Card{Text: "Flying", Types: []string{"Creature"}, Colors: []string{"White"}}
	assert.True(t, full.HasText())
	assert.True(t, full.HasTypes())
	assert.True(t, full.HasColors())
	assert.False(t, full.IsColorless())

	colorless := Card{Types: []string{}, Colors: []string{}}
	assert.False(t, colorless.HasTypes())
	assert.False(t, colorless.HasColors())
	assert.True(t, colorless.IsColorless())

	unknown := Card{}
	assert.False(t, unknown.HasText())
	assert.False(t, unknown.HasTypes())
	assert.False(t, unknown.IsColorless())
}

func TestCloneSharesNoSlices(t *testing.T) {
	c := Card{ID: "1", Name: "Boros Charm", Types: []string{"Instant"}, Colors: []string{"Red", "White"}}
	cp := c.Clone()
	assert.Equal(t, c, cp)

	cp.Types[0] = "Sorcery"
	cp.Colors[1] = "Blue"
	assert.Equal(t, []string{"Instant"}, c.Types)
	assert.Equal(t, []string{"Red", "White"}, c.Colors)

	assert.Nil(t, Card{}.Clone().Colors)
	assert.Equal(t, []string{}, Card{Colors: []string{}}.Clone().Colors)
}
