// Package pricing reduces auction listings to representative prices and
// handles the game's copper/silver/gold currency math.
package pricing

import (
	"fmt"
	"math"
)

// Currency subunit constants. Copper is the smallest denomination the
// upstream API reports; display prices are in gold.
const (
	CopperPerSilver int64 = 100
	SilverPerGold   int64 = 100
	CopperPerGold   int64 = CopperPerSilver * SilverPerGold
)

// Money is an amount in copper.
type Money int64

// Split breaks the amount into whole gold, silver, and copper parts.
func (m Money) Split() (gold, silver, copper int64) {
	c := int64(m)
	gold = c / CopperPerGold
	silver = (c % CopperPerGold) / CopperPerSilver
	copper = c % CopperPerSilver
	return gold, silver, copper
}

// Gold converts the amount to display units, rounded to two decimals.
func (m Money) Gold() float64 {
	return math.Round(float64(m)/float64(CopperPerGold)*100) / 100
}

// String formats the amount the way the game client does: "12g 34s 56c",
// omitting zero components except for a bare "0c".
func (m Money) String() string {
	gold, silver, copper := m.Split()

	out := ""
	if gold > 0 {
		out += fmt.Sprintf("%dg ", gold)
	}
	if silver > 0 {
		out += fmt.Sprintf("%ds ", silver)
	}
	if copper > 0 || out == "" {
		out += fmt.Sprintf("%dc", copper)
	}
	if out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return out
}
