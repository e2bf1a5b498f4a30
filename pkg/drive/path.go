package drive

import (
	"errors"
	"fmt"
)

// Path is an ordered mission of alternating straight-leg distances and
// turn angles, in centimeters and degrees, starting and ending on a
// distance. Paths are consumed read-only.
type Path []float64

// Validate checks the alternating shape: odd length, at least one leg.
func (p Path) Validate() error {
	if len(p) == 0 {
		return errors.New("path: no legs")
	}
	if len(p)%2 == 0 {
		return fmt.Errorf("path: %d legs, must end on a distance", len(p))
	}
	return nil
}

// Run sequences the path on m: drive, turn, drive, ... ending on a
// drive. All legs run with whatever gains are currently configured. An
// emergency stop does not abort the walk; remaining legs simply drain as
// no-ops.
func (p Path) Run(m Mover) {
	for i := 0; i < len(p); i += 2 {
		m.Drive(p[i])
		if i+1 < len(p) {
			m.Turn(p[i+1])
		}
	}
}

// RunPath validates p and runs it on the rover.
func (r *Rover) RunPath(p Path) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.Run(r)
	return nil
}
