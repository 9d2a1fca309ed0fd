package model

import "github.com/udisondev/vgcspread/internal/stats"

// PokemonBuild: полный билд покемона. Итоговые статы не кэшируются,
// всегда считаются из base/IV/EV/nature.
type PokemonBuild struct {
	Species  string          `yaml:"species" json:"species"`
	Base     stats.BaseStats `yaml:"base" json:"base"`
	Types    []Type          `yaml:"types" json:"types"`
	Nature   stats.Nature    `yaml:"nature" json:"nature"`
	EVs      stats.Spread    `yaml:"evs" json:"evs"`
	IVs      stats.Spread    `yaml:"ivs" json:"ivs"`
	Ability  Ability         `yaml:"ability" json:"ability"`
	Item     Item            `yaml:"item" json:"item"`
	TeraType Type            `yaml:"tera_type" json:"tera_type,omitempty"`
	Moves    []string        `yaml:"moves" json:"moves,omitempty"`
}

// NewBuild returns a build with 31 IVs, no EVs and a neutral nature.
func NewBuild(species string, base stats.BaseStats, types ...Type) PokemonBuild {
	return PokemonBuild{
		Species: species,
		Base:    base,
		Types:   types,
		Nature:  stats.Serious,
		IVs:     stats.PerfectIVs(),
	}
}

// Stats derives the level-50 stat line.
func (p PokemonBuild) Stats() stats.Final {
	return stats.Calculate(p.Base, p.IVs, p.EVs, p.Nature)
}

// Stat derives one stat.
func (p PokemonBuild) Stat(s stats.Stat) int {
	return stats.Value(s, p.Base.Get(s), p.IVs.Get(s), p.EVs.Get(s), p.Nature)
}

// MaxHP derives the HP stat.
func (p PokemonBuild) MaxHP() int {
	return p.Stat(stats.HP)
}

// HasType reports whether t is one of the original (non-Tera) types.
func (p PokemonBuild) HasType(t Type) bool {
	for _, own := range p.Types {
		if own == t {
			return true
		}
	}
	return false
}

// WithEVs returns a copy with the given spread.
func (p PokemonBuild) WithEVs(evs stats.Spread) PokemonBuild {
	p.EVs = evs
	return p
}

// WithNature returns a copy with the given nature.
func (p PokemonBuild) WithNature(n stats.Nature) PokemonBuild {
	p.Nature = n
	return p
}
