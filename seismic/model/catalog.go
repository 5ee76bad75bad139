package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrUnknownModel = errors.New("model: unknown noise model")
	ErrNoCurve      = errors.New("model: no curve for component")
)

// Entry is a named noise model. Default applies to every component that has
// no specific curve in Components.
type Entry struct {
	Name        string
	Description string
	Default     Curve
	Components  map[Component]Curve
}

// Curve resolves the curve for component c.
func (e Entry) Curve(c Component) (Curve, error) {
	if curve, ok := e.Components[c]; ok {
		return curve.Clone(), nil
	}
	if e.Default.Len() > 0 {
		return e.Default.Clone(), nil
	}
	return Curve{}, fmt.Errorf("%w: %s/%v", ErrNoCurve, e.Name, c)
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	out := Entry{
		Name:        e.Name,
		Description: e.Description,
		Default:     e.Default.Clone(),
	}
	if e.Components != nil {
		out.Components = make(map[Component]Curve, len(e.Components))
		for comp, curve := range e.Components {
			out.Components[comp] = curve.Clone()
		}
	}
	return out
}

func (e Entry) validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: model name must not be empty", ErrInvalidCurve)
	}
	if e.Default.Len() == 0 && len(e.Components) == 0 {
		return fmt.Errorf("%w: model %s has no curves", ErrInvalidCurve, e.Name)
	}
	if e.Default.Len() > 0 {
		if err := e.Default.Validate(); err != nil {
			return fmt.Errorf("model %s: %w", e.Name, err)
		}
	}
	for c, curve := range e.Components {
		if err := curve.Validate(); err != nil {
			return fmt.Errorf("model %s/%v: %w", e.Name, c, err)
		}
	}
	return nil
}

// Catalog maps model names (case-insensitive) to entries. It is safe for
// concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCatalog returns a catalog holding the built-in NLNM and NHNM models.
func NewCatalog() *Catalog {
	c := NewEmptyCatalog()
	for _, e := range Builtin() {
		c.entries[key(e.Name)] = e
	}
	return c
}

// NewEmptyCatalog returns a catalog without built-in models.
func NewEmptyCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Builtin returns the models every [NewCatalog] starts with.
func Builtin() []Entry {
	return []Entry{
		{
			Name:        "NLNM",
			Description: "Peterson (1993) new low noise model",
			Default:     NLNM(),
		},
		{
			Name:        "NHNM",
			Description: "Peterson (1993) new high noise model",
			Default:     NHNM(),
		},
	}
}

// Register adds or replaces an entry after validating its curves.
func (c *Catalog) Register(e Entry) error {
	if err := e.validate(); err != nil {
		return err
	}

	stored := e.Clone()
	c.mu.Lock()
	c.entries[key(e.Name)] = stored
	c.mu.Unlock()
	return nil
}

// Entry returns a copy of the entry registered under name.
func (c *Catalog) Entry(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key(name)]
	if !ok {
		return Entry{}, false
	}
	return e.Clone(), true
}

// Lookup resolves the curve of model name for component comp. The returned
// curve is a copy.
func (c *Catalog) Lookup(name string, comp Component) (Curve, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key(name)]
	if !ok {
		return Curve{}, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return e.Curve(comp)
}

// Names returns the registered model names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		names = append(names, e.Name)
	}
	c.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered models.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
