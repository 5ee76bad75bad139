package model

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cwbudde/algo-seisnoise/dsp/core"
	"gopkg.in/yaml.v3"
)

// modelFile is the YAML layout of an instrument noise model:
//
//	name: STS2
//	description: Streckeisen STS-2 self-noise
//	unit: acceleration
//	axis: period        # or frequency (default)
//	scale: db           # or linear (default)
//	default:    [[x, y], ...]
//	vertical:   [[x, y], ...]
//	horizontal: [[x, y], ...]
type modelFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Unit        Unit        `yaml:"unit"`
	Axis        string      `yaml:"axis"`
	Scale       string      `yaml:"scale"`
	Default     [][]float64 `yaml:"default"`
	Vertical    [][]float64 `yaml:"vertical"`
	Horizontal  [][]float64 `yaml:"horizontal"`
}

// Load decodes one YAML model definition from r.
func Load(r io.Reader) (Entry, error) {
	return load(r, "")
}

func load(r io.Reader, fallbackName string) (Entry, error) {
	var mf modelFile
	mf.Unit = Acceleration

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&mf); err != nil {
		return Entry{}, fmt.Errorf("model: decode yaml: %w", err)
	}

	byPeriod, err := parseAxis(mf.Axis)
	if err != nil {
		return Entry{}, err
	}
	inDB, err := parseScale(mf.Scale)
	if err != nil {
		return Entry{}, err
	}

	name := strings.TrimSpace(mf.Name)
	if name == "" {
		name = fallbackName
	}
	e := Entry{
		Name:        name,
		Description: mf.Description,
		Components:  make(map[Component]Curve),
	}

	build := func(label string, points [][]float64) (Curve, error) {
		c, err := pointsToCurve(points, mf.Unit, byPeriod, inDB)
		if err != nil {
			return Curve{}, fmt.Errorf("model %s %s: %w", e.Name, label, err)
		}
		return c, nil
	}

	if len(mf.Default) > 0 {
		if e.Default, err = build("default", mf.Default); err != nil {
			return Entry{}, err
		}
	}
	if len(mf.Vertical) > 0 {
		c, err := build("vertical", mf.Vertical)
		if err != nil {
			return Entry{}, err
		}
		e.Components[ComponentVertical] = c
	}
	if len(mf.Horizontal) > 0 {
		c, err := build("horizontal", mf.Horizontal)
		if err != nil {
			return Entry{}, err
		}
		e.Components[ComponentHorizontal] = c
	}

	// A model with only a vertical curve uses it for horizontals as well.
	if e.Default.Len() == 0 {
		if v, ok := e.Components[ComponentVertical]; ok {
			e.Default = v
		}
	}

	if err := e.validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// LoadFile reads a YAML model file. When the file has no name, the base
// file name without extension is used.
func LoadFile(path string) (Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, fmt.Errorf("model: read %s: %w", path, err)
	}
	defer f.Close()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	e, err := load(f, base)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// LoadDir reads every *.yaml and *.yml file in dir, sorted by file name.
func LoadDir(dir string) ([]Entry, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("model: list %s: %w", dir, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		e, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadDir registers every model file in dir and returns the number added.
func (c *Catalog) LoadDir(dir string) (int, error) {
	entries, err := LoadDir(dir)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if err := c.Register(e); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}

func parseAxis(s string) (byPeriod bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "frequency", "freq":
		return false, nil
	case "period":
		return true, nil
	default:
		return false, fmt.Errorf("%w: axis must be frequency or period, got %q", ErrInvalidCurve, s)
	}
}

func parseScale(s string) (inDB bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return false, nil
	case "db":
		return true, nil
	default:
		return false, fmt.Errorf("%w: scale must be linear or db, got %q", ErrInvalidCurve, s)
	}
}

func pointsToCurve(points [][]float64, unit Unit, byPeriod, inDB bool) (Curve, error) {
	type node struct{ f, p float64 }
	nodes := make([]node, 0, len(points))
	for i, pt := range points {
		if len(pt) != 2 {
			return Curve{}, fmt.Errorf("%w: point %d has %d values, want 2", ErrInvalidCurve, i, len(pt))
		}
		x, y := pt[0], pt[1]
		if byPeriod {
			if !(x > 0) {
				return Curve{}, fmt.Errorf("%w: period %v at point %d", ErrInvalidCurve, x, i)
			}
			x = core.PeriodToFrequency(x)
		}
		if inDB {
			y = core.DBPowerToLinear(y)
		}
		nodes = append(nodes, node{f: x, p: y})
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].f < nodes[j].f })

	c := Curve{
		Freqs: make([]float64, len(nodes)),
		Power: make([]float64, len(nodes)),
		Unit:  unit,
	}
	for i, n := range nodes {
		c.Freqs[i] = n.f
		c.Power[i] = n.p
	}
	if err := c.Validate(); err != nil {
		return Curve{}, err
	}
	return c, nil
}
