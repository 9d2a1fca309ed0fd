package dex

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/stats"
)

//go:embed data/dex.yaml
var embeddedDataset []byte

// Dataset is the on-disk layout of dex.yaml.
type Dataset struct {
	Species []Species    `yaml:"species"`
	Moves   []model.Move `yaml:"moves"`
}

// Dex - in-memory Source. Safe for concurrent reads after construction.
type Dex struct {
	species map[string]Species
	moves   map[string]model.Move
}

var _ Source = (*Dex)(nil)

// Embedded loads the dataset compiled into the binary.
func Embedded() (*Dex, error) {
	return Load(bytes.NewReader(embeddedDataset))
}

// EmbeddedDataset returns the parsed embedded dataset, for seeding other stores.
func EmbeddedDataset() (Dataset, error) {
	return decodeDataset(bytes.NewReader(embeddedDataset))
}

// Load parses a YAML dataset.
func Load(r io.Reader) (*Dex, error) {
	ds, err := decodeDataset(r)
	if err != nil {
		return nil, err
	}
	d := New(ds)
	slog.Debug("loaded dex", "species", len(d.species), "moves", len(d.moves))
	return d, nil
}

// New indexes a dataset by normalised name.
func New(ds Dataset) *Dex {
	d := &Dex{
		species: make(map[string]Species, len(ds.Species)),
		moves:   make(map[string]model.Move, len(ds.Moves)),
	}
	for _, s := range ds.Species {
		d.species[model.NormalizeName(s.Name)] = s
	}
	for _, m := range ds.Moves {
		d.moves[model.NormalizeName(m.Name)] = m
	}
	return d
}

func decodeDataset(r io.Reader) (Dataset, error) {
	var ds Dataset
	if err := yaml.NewDecoder(r).Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("decoding dex dataset: %w", err)
	}
	return ds, nil
}

func (d *Dex) lookup(name string) (Species, error) {
	s, ok := d.species[model.NormalizeName(name)]
	if !ok {
		return Species{}, fmt.Errorf("%q: %w", name, ErrSpeciesNotFound)
	}
	return s, nil
}

func (d *Dex) BaseStats(_ context.Context, species string) (stats.BaseStats, error) {
	s, err := d.lookup(species)
	return s.Base, err
}

func (d *Dex) Types(_ context.Context, species string) ([]model.Type, error) {
	s, err := d.lookup(species)
	return s.Types, err
}

func (d *Dex) Abilities(_ context.Context, species string) ([]model.Ability, error) {
	s, err := d.lookup(species)
	return s.Abilities, err
}

func (d *Dex) Move(_ context.Context, name, user string) (model.Move, error) {
	mv, ok := d.moves[model.NormalizeName(name)]
	if !ok {
		return model.Move{}, fmt.Errorf("%q: %w", name, ErrMoveNotFound)
	}
	return ResolveMove(mv, user), nil
}

// SpeciesNames lists every species in the dex, sorted.
func (d *Dex) SpeciesNames() []string {
	out := make([]string, 0, len(d.species))
	for name := range d.species {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
