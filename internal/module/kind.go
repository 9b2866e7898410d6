// Package module defines the closed catalog of practice-tool modules and the
// registry that maps each kind to its display metadata and render capability.
package module

// Kind identifies which practice tool a module instance represents.
type Kind string

const (
	Metronome Kind = "metronome"
	Scales    Kind = "scales"
	Timer     Kind = "timer"
	Tuner     Kind = "tuner"
	Chords    Kind = "chords"
	Journal   Kind = "journal"
	Regimen   Kind = "regimen"
)

// kinds is the closed set in catalog order.
var kinds = []Kind{Metronome, Scales, Timer, Tuner, Chords, Journal, Regimen}

// Kinds returns every module kind in catalog order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Valid reports whether k belongs to the closed set.
func (k Kind) Valid() bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}
