package boardgame

import (
	"fmt"
	"strings"
)

// Dimension is an axis of game classification.
type Dimension string

const (
	Category  Dimension = "category"
	Mechanic  Dimension = "mechanic"
	Publisher Dimension = "publisher"
)

// All returns every dimension in display order.
func All() []Dimension {
	return []Dimension{Category, Mechanic, Publisher}
}

// ParseDimension converts s into a Dimension. Surrounding space and case
// are ignored; anything else is ErrInvalidDimension.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// Validate reports ErrInvalidDimension wrapped with the offending value.
func (d Dimension) Validate() error {
	switch d {
	case Category, Mechanic, Publisher:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDimension, string(d))
	}
}

func (d Dimension) String() string { return string(d) }
