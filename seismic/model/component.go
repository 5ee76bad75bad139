package model

import (
	"fmt"
	"strings"
)

// Component is the sensing-axis class of a channel.
type Component int

const (
	ComponentUnknown Component = iota
	ComponentVertical
	ComponentHorizontal
)

// String returns the lower-case component name.
func (c Component) String() string {
	switch c {
	case ComponentVertical:
		return "vertical"
	case ComponentHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// ParseComponent accepts "vertical"/"z" and "horizontal"/"h". The empty
// string and "auto" yield ComponentUnknown.
func ParseComponent(s string) (Component, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "unknown":
		return ComponentUnknown, nil
	case "vertical", "z":
		return ComponentVertical, nil
	case "horizontal", "h":
		return ComponentHorizontal, nil
	default:
		return ComponentUnknown, fmt.Errorf("model: invalid component %q", s)
	}
}
