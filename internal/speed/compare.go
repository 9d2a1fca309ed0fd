package speed

// Outcome of a speed comparison.
type Outcome uint8

const (
	Tie Outcome = iota
	FirstMoves
	SecondMoves
)

func (o Outcome) String() string {
	switch o {
	case FirstMoves:
		return "first"
	case SecondMoves:
		return "second"
	}
	return "tie"
}

// Side is one Pokemon in a speed comparison.
type Side struct {
	Name string    `yaml:"name" json:"name"`
	Stat int       `yaml:"speed" json:"speed"`
	Mods Modifiers `yaml:"modifiers" json:"modifiers"`
}

// Comparison is the result of CompareSpeed.
type Comparison struct {
	First     Side    `json:"first"`
	Second    Side    `json:"second"`
	FirstEff  int     `json:"first_effective"`
	SecondEff int     `json:"second_effective"`
	TrickRoom bool    `json:"trick_room,omitempty"`
	Outcome   Outcome `json:"-"`
	Mover     string  `json:"moves_first"`
}

// CompareSpeed decides who acts first. Under Trick Room the slower side
// moves first; equal effective speeds are a tie either way.
func CompareSpeed(a, b Side, trickRoom bool) Comparison {
	c := Comparison{
		First:     a,
		Second:    b,
		FirstEff:  a.Mods.Effective(a.Stat),
		SecondEff: b.Mods.Effective(b.Stat),
		TrickRoom: trickRoom,
	}
	switch faster := c.FirstEff > c.SecondEff; {
	case c.FirstEff == c.SecondEff:
		c.Outcome = Tie
	case faster != trickRoom:
		c.Outcome = FirstMoves
	default:
		c.Outcome = SecondMoves
	}

	switch c.Outcome {
	case FirstMoves:
		c.Mover = a.Name
	case SecondMoves:
		c.Mover = b.Name
	default:
		c.Mover = "speed tie"
	}
	return c
}
