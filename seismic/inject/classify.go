package inject

import (
	"strings"

	"github.com/cwbudde/algo-seisnoise/seismic/model"
)

// Classifier maps a channel code to a component class. It returns
// model.ComponentUnknown for codes it cannot classify.
type Classifier func(channel string) model.Component

// ClassifySEED classifies SEED channel codes by their orientation letter,
// the last character: Z is vertical; N, E, 1, 2, R and T are horizontal.
func ClassifySEED(channel string) model.Component {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return model.ComponentUnknown
	}
	switch strings.ToUpper(channel[len(channel)-1:]) {
	case "Z":
		return model.ComponentVertical
	case "N", "E", "1", "2", "R", "T":
		return model.ComponentHorizontal
	default:
		return model.ComponentUnknown
	}
}

// ClassifyMap returns a classifier backed by an explicit table of channel
// codes, for naming schemes that do not follow SEED conventions. Lookups
// are case-sensitive.
func ClassifyMap(table map[string]model.Component) Classifier {
	return func(channel string) model.Component {
		return table[channel]
	}
}
