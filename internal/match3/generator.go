package match3

import "math/rand"

// specials lists the markers a token may receive at spawn time.
var specials = [...]Special{SpecialArea, SpecialRow, SpecialColumn, SpecialColor}

// Generator creates fresh tokens from a palette.
// It owns the id counter so ids stay unique for the life of an engine.
type Generator struct {
	rng           *rand.Rand
	palette       []Kind
	specialChance float64
	nextID        uint64
	script        []Kind
}

// NewGenerator creates a generator drawing uniformly from palette.
// specialChance is the independent probability of attaching a marker.
func NewGenerator(rng *rand.Rand, palette []Kind, specialChance float64) *Generator {
	p := make([]Kind, len(palette))
	copy(p, palette)
	return &Generator{
		rng:           rng,
		palette:       p,
		specialChance: specialChance,
	}
}

// Palette returns a copy of the palette.
func (g *Generator) Palette() []Kind {
	p := make([]Kind, len(g.palette))
	copy(p, g.palette)
	return p
}

// SetPalette replaces the palette for later draws.
func (g *Generator) SetPalette(palette []Kind) {
	g.palette = append(g.palette[:0], palette...)
}

// Rand exposes the generator's random source.
func (g *Generator) Rand() *rand.Rand {
	return g.rng
}

// Kind draws a kind uniformly from the palette. Scripted kinds are dealt
// first, in order.
func (g *Generator) Kind() Kind {
	if len(g.script) > 0 {
		k := g.script[0]
		g.script = g.script[1:]
		return k
	}
	return g.palette[g.rng.Intn(len(g.palette))]
}

// Script queues kinds to be dealt before random draws resume.
// Replays and tests use it to pin refills.
func (g *Generator) Script(kinds ...Kind) {
	g.script = append(g.script, kinds...)
}

// Token creates a new token at (row, col).
// fresh marks refill spawns for entry animation.
func (g *Generator) Token(row, col int, fresh bool) Token {
	g.nextID++
	t := Token{
		ID:    g.nextID,
		Kind:  g.Kind(),
		Row:   row,
		Col:   col,
		Fresh: fresh,
	}
	if g.specialChance > 0 && g.rng.Float64() < g.specialChance {
		t.Special = specials[g.rng.Intn(len(specials))]
	}
	return t
}
