package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidUnit = errors.New("model: invalid unit")

// Unit is the physical quantity a spectrum or trace is expressed in. The
// order matters: each step up is one time derivative. The zero value
// UnitNone means unspecified; conversions to or from it are identities.
type Unit int

const (
	UnitNone Unit = iota
	Displacement
	Velocity
	Acceleration
)

// String returns the lower-case unit name.
func (u Unit) String() string {
	switch u {
	case UnitNone:
		return "none"
	case Displacement:
		return "displacement"
	case Velocity:
		return "velocity"
	case Acceleration:
		return "acceleration"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// Valid reports whether u is one of the defined units.
func (u Unit) Valid() bool {
	return u >= Displacement && u <= Acceleration
}

// ParseUnit accepts full names and the short forms disp, vel and acc. The
// empty string and "none" yield UnitNone.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return UnitNone, nil
	case "displacement", "disp", "dis":
		return Displacement, nil
	case "velocity", "vel":
		return Velocity, nil
	case "acceleration", "acc", "accel":
		return Acceleration, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(text []byte) error {
	v, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	if u != UnitNone && !u.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidUnit, int(u))
	}
	return []byte(u.String()), nil
}
