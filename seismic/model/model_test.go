package model

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-seisnoise/dsp/core"
	"github.com/cwbudde/algo-seisnoise/internal/testutil"
)

func TestParseUnit(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Unit
	}{
		{"displacement", Displacement},
		{"DISP", Displacement},
		{"vel", Velocity},
		{" Velocity ", Velocity},
		{"acc", Acceleration},
		{"acceleration", Acceleration},
		{"", UnitNone},
		{"none", UnitNone},
	} {
		got, err := ParseUnit(tc.in)
		if err != nil {
			t.Fatalf("ParseUnit(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseUnit(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseUnit("jerk"); !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("ParseUnit(jerk) err = %v", err)
	}
	if _, err := Unit(5).MarshalText(); !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("MarshalText err = %v", err)
	}
}

func TestParseComponent(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Component
	}{
		{"", ComponentUnknown},
		{"auto", ComponentUnknown},
		{"Z", ComponentVertical},
		{"vertical", ComponentVertical},
		{"horizontal", ComponentHorizontal},
		{"h", ComponentHorizontal},
	} {
		got, err := ParseComponent(tc.in)
		if err != nil {
			t.Fatalf("ParseComponent(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseComponent(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseComponent("diagonal"); err == nil {
		t.Fatal("expected error for unknown component")
	}
}

func TestCurveValidate(t *testing.T) {
	good := Curve{Freqs: []float64{0, 1, 1, 2}, Power: []float64{0, 1, 2, 3}, Unit: Velocity}
	if err := good.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	bad := []Curve{
		{},
		{Freqs: []float64{1}, Power: []float64{1, 2}},
		{Freqs: []float64{-1}, Power: []float64{1}},
		{Freqs: []float64{1}, Power: []float64{-1}},
		{Freqs: []float64{2, 1}, Power: []float64{1, 1}},
		{Freqs: []float64{1}, Power: []float64{math.Inf(1)}},
		{Freqs: []float64{1}, Power: []float64{1}, Unit: Unit(9)},
	}
	for i, c := range bad {
		if err := c.Validate(); !errors.Is(err, ErrInvalidCurve) {
			t.Fatalf("case %d: err = %v, want ErrInvalidCurve", i, err)
		}
	}
}

func TestCurveCloneIsDeep(t *testing.T) {
	c := Curve{Freqs: []float64{1}, Power: []float64{2}}
	d := c.Clone()
	d.Power[0] = 7
	if c.Power[0] != 2 {
		t.Fatal("Clone shares backing arrays")
	}
}

func TestFromPeriodDB(t *testing.T) {
	c, err := FromPeriodDB([]float64{0.1, 1, 10}, []float64{-100, -110, -120}, Acceleration)
	if err != nil {
		t.Fatalf("FromPeriodDB() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, c.Freqs, []float64{0.1, 1, 10}, 1e-12)
	want := []float64{1e-12, 1e-11, 1e-10}
	for i := range want {
		if !core.NearlyEqual(c.Power[i], want[i], 1e-9) {
			t.Fatalf("Power[%d] = %v, want %v", i, c.Power[i], want[i])
		}
	}

	if _, err := FromPeriodDB([]float64{0}, []float64{1}, Velocity); !errors.Is(err, ErrInvalidCurve) {
		t.Fatalf("zero period err = %v", err)
	}
}

func TestPetersonModels(t *testing.T) {
	for name, c := range map[string]Curve{"NLNM": NLNM(), "NHNM": NHNM()} {
		if err := c.Validate(); err != nil {
			t.Fatalf("%s: Validate() error = %v", name, err)
		}
		if c.Unit != Acceleration {
			t.Fatalf("%s: unit = %v", name, c.Unit)
		}
		if !core.NearlyEqual(c.Freqs[0], 1e-5, 1e-9) || !core.NearlyEqual(c.Freqs[c.Len()-1], 10, 1e-9) {
			t.Fatalf("%s: frequency range [%v, %v]", name, c.Freqs[0], c.Freqs[c.Len()-1])
		}
	}
	if NLNM().Len() != 22 || NHNM().Len() != 12 {
		t.Fatalf("unexpected node counts %d, %d", NLNM().Len(), NHNM().Len())
	}
}

func TestPetersonDB(t *testing.T) {
	db, ok := PetersonDB(false, 1)
	if !ok || !core.NearlyEqual(db, -166.4, 1e-12) {
		t.Fatalf("NLNM(1 s) = %v, %v; want -166.4", db, ok)
	}
	db, ok = PetersonDB(true, 0.1)
	if !ok || !core.NearlyEqual(db, -108.73+17.23, 1e-12) {
		t.Fatalf("NHNM(0.1 s) = %v, %v", db, ok)
	}
	if _, ok := PetersonDB(false, 0.01); ok {
		t.Fatal("expected out-of-range period to be rejected")
	}

	// Low noise lies below high noise across the shared band.
	for _, period := range []float64{0.2, 1, 6, 20, 100, 1000} {
		lo, _ := PetersonDB(false, period)
		hi, _ := PetersonDB(true, period)
		if !(lo < hi) {
			t.Fatalf("T=%v: NLNM %v >= NHNM %v", period, lo, hi)
		}
	}
}

func TestConvertPhysicalConvention(t *testing.T) {
	acc := Curve{Freqs: []float64{0, 1, 10}, Power: []float64{5, 1, 1}, Unit: Acceleration}

	vel, err := Convert(acc, Velocity, ConventionPhysical)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	w1, w10 := 2*math.Pi, 20*math.Pi
	testutil.RequireSliceNearlyEqual(t, vel.Power, []float64{0, 1 / (w1 * w1), 1 / (w10 * w10)}, 1e-15)
	if vel.Unit != Velocity {
		t.Fatalf("unit = %v", vel.Unit)
	}

	disp, err := Convert(acc, Displacement, ConventionPhysical)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	want := 1 / math.Pow(w10, 4)
	if !core.NearlyEqual(disp.Power[2], want, 1e-12) {
		t.Fatalf("disp power = %v, want %v", disp.Power[2], want)
	}

	back, err := Convert(disp, Acceleration, ConventionPhysical)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	for i := 1; i < 3; i++ {
		if !core.NearlyEqual(back.Power[i], acc.Power[i], 1e-12) {
			t.Fatalf("round trip Power[%d] = %v", i, back.Power[i])
		}
	}

	if acc.Power[0] != 5 || acc.Unit != Acceleration {
		t.Fatal("Convert mutated its input")
	}
}

func TestConvertSourceConvention(t *testing.T) {
	// Pinned: velocity/acceleration uses f^1, displacement/velocity f^2,
	// both with plain (not angular) frequency.
	acc := Curve{Freqs: []float64{1, 2, 10}, Power: []float64{1, 1, 1}, Unit: Acceleration}

	vel, err := Convert(acc, Velocity, ConventionSource)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, vel.Power, []float64{1, 0.5, 0.1}, 1e-15)

	disp, err := Convert(acc, Displacement, ConventionSource)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, disp.Power, []float64{1, 0.125, 0.001}, 1e-15)

	dv, err := Convert(Curve{Freqs: []float64{3}, Power: []float64{2}, Unit: Displacement}, Velocity, ConventionSource)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, dv.Power, []float64{18}, 1e-12)
}

func TestConvertFrequencyConvention(t *testing.T) {
	acc := Curve{Freqs: []float64{1, 2, 10}, Power: []float64{1, 1, 1}, Unit: Acceleration}

	vel, err := Convert(acc, Velocity, ConventionFrequency)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, vel.Power, []float64{1, 0.25, 0.01}, 1e-15)

	disp, err := Convert(acc, Displacement, ConventionFrequency)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, disp.Power, []float64{1, 0.0625, 1e-4}, 1e-15)

	phys, err := Convert(acc, Velocity, ConventionPhysical)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	ratio := vel.Power[1] / phys.Power[1]
	if !core.NearlyEqual(ratio, 4*math.Pi*math.Pi, 1e-12) {
		t.Fatalf("frequency/physical ratio = %v, want (2 pi)^2", ratio)
	}
}

func TestConvertSameUnitCopies(t *testing.T) {
	c := Curve{Freqs: []float64{0, 1}, Power: []float64{3, 4}, Unit: Velocity}
	out, err := Convert(c, Velocity, ConventionPhysical)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out.Power, c.Power, 0)
	out.Power[0] = 99
	if c.Power[0] != 3 {
		t.Fatal("Convert returned aliased slices")
	}

	if _, err := Convert(c, Unit(8), ConventionPhysical); !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("err = %v, want ErrInvalidUnit", err)
	}
}

func TestConvertUnitNoneIsIdentity(t *testing.T) {
	c := Curve{Freqs: []float64{1, 2}, Power: []float64{3, 4}}
	out, err := Convert(c, Acceleration, ConventionPhysical)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out.Power, c.Power, 0)
	if out.Unit != Acceleration {
		t.Fatalf("unit = %v, want acceleration", out.Unit)
	}

	vel := Curve{Freqs: []float64{1}, Power: []float64{3}, Unit: Velocity}
	out, err = Convert(vel, UnitNone, ConventionPhysical)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if out.Unit != Velocity || out.Power[0] != 3 {
		t.Fatalf("unexpected %+v", out)
	}
}

func TestParseConvention(t *testing.T) {
	if c, err := ParseConvention("source"); err != nil || c != ConventionSource {
		t.Fatalf("ParseConvention(source) = %v, %v", c, err)
	}
	if c, err := ParseConvention("frequency"); err != nil || c != ConventionFrequency {
		t.Fatalf("ParseConvention(frequency) = %v, %v", c, err)
	}
	if c, err := ParseConvention(""); err != nil || c != ConventionPhysical {
		t.Fatalf("ParseConvention(\"\") = %v, %v", c, err)
	}
	if _, err := ParseConvention("other"); err == nil {
		t.Fatal("expected error")
	}
}

func TestCatalogBuiltins(t *testing.T) {
	cat := NewCatalog()
	names := cat.Names()
	if len(names) != 2 || names[0] != "NHNM" || names[1] != "NLNM" {
		t.Fatalf("Names() = %v", names)
	}

	c, err := cat.Lookup("nlnm", ComponentHorizontal)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if c.Len() != NLNM().Len() {
		t.Fatalf("unexpected curve length %d", c.Len())
	}

	c.Power[0] = -1
	again, _ := cat.Lookup("NLNM", ComponentVertical)
	if again.Power[0] < 0 {
		t.Fatal("Lookup returned catalog-owned slices")
	}

	if _, err := cat.Lookup("STS2", ComponentVertical); !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("err = %v, want ErrUnknownModel", err)
	}
}

func TestCatalogRegister(t *testing.T) {
	cat := NewEmptyCatalog()
	vert := Curve{Freqs: []float64{0.1, 1}, Power: []float64{1e-18, 1e-17}, Unit: Velocity}
	err := cat.Register(Entry{
		Name:       "OBS",
		Components: map[Component]Curve{ComponentVertical: vert},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Len() = %d", cat.Len())
	}

	if _, err := cat.Lookup("obs", ComponentVertical); err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if _, err := cat.Lookup("obs", ComponentHorizontal); !errors.Is(err, ErrNoCurve) {
		t.Fatalf("err = %v, want ErrNoCurve", err)
	}

	if err := cat.Register(Entry{Name: "empty"}); !errors.Is(err, ErrInvalidCurve) {
		t.Fatalf("err = %v, want ErrInvalidCurve", err)
	}
	if err := cat.Register(Entry{Default: vert}); !errors.Is(err, ErrInvalidCurve) {
		t.Fatalf("err = %v, want ErrInvalidCurve", err)
	}
}

func TestCatalogEntryReturnsCopy(t *testing.T) {
	cat := NewCatalog()
	want, err := cat.Lookup("NLNM", ComponentVertical)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	e, ok := cat.Entry("NLNM")
	if !ok {
		t.Fatal("Entry(NLNM) not found")
	}
	e.Default.Power[0] = -1
	e.Default.Freqs[0] = 0

	got, err := cat.Lookup("NLNM", ComponentVertical)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got.Power[0] != want.Power[0] || got.Freqs[0] != want.Freqs[0] {
		t.Fatalf("catalog changed through Entry: got (%v, %v), want (%v, %v)",
			got.Freqs[0], got.Power[0], want.Freqs[0], want.Power[0])
	}

	vert := Curve{Freqs: []float64{0.1, 1}, Power: []float64{1e-18, 1e-17}, Unit: Velocity}
	if err := cat.Register(Entry{
		Name:       "OBS",
		Components: map[Component]Curve{ComponentVertical: vert},
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	obs, _ := cat.Entry("obs")
	delete(obs.Components, ComponentVertical)
	obs.Components[ComponentHorizontal] = vert

	if _, err := cat.Lookup("obs", ComponentVertical); err != nil {
		t.Fatalf("Lookup(vertical) error = %v", err)
	}
	if _, err := cat.Lookup("obs", ComponentHorizontal); !errors.Is(err, ErrNoCurve) {
		t.Fatalf("Lookup(horizontal) err = %v, want ErrNoCurve", err)
	}
}

const sts2YAML = `
name: STS2
description: broadband seismometer self-noise
unit: acceleration
axis: period
scale: db
vertical:
  - [100, -180]
  - [1, -190]
  - [0.1, -170]
horizontal:
  - [100, -175]
  - [0.1, -165]
`

func TestLoadYAML(t *testing.T) {
	e, err := Load(strings.NewReader(sts2YAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if e.Name != "STS2" || e.Description == "" {
		t.Fatalf("unexpected entry header %+v", e)
	}

	v, err := e.Curve(ComponentVertical)
	if err != nil {
		t.Fatalf("Curve() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, v.Freqs, []float64{0.01, 1, 10}, 1e-12)
	if !core.NearlyEqual(v.Power[1], 1e-19, 1e-9) {
		t.Fatalf("Power[1] = %v, want 1e-19", v.Power[1])
	}

	h, err := e.Curve(ComponentHorizontal)
	if err != nil {
		t.Fatalf("Curve() error = %v", err)
	}
	if h.Len() != 2 {
		t.Fatalf("horizontal len = %d", h.Len())
	}

	// The vertical curve doubles as default.
	u, err := e.Curve(ComponentUnknown)
	if err != nil || u.Len() != 3 {
		t.Fatalf("default curve = %v, %v", u, err)
	}
}

func TestLoadYAMLErrors(t *testing.T) {
	cases := map[string]string{
		"bad unit":    "name: x\nunit: jerk\ndefault: [[1, 1]]\n",
		"bad axis":    "name: x\naxis: wavenumber\ndefault: [[1, 1]]\n",
		"bad scale":   "name: x\nscale: log\ndefault: [[1, 1]]\n",
		"short point": "name: x\ndefault: [[1]]\n",
		"negative":    "name: x\ndefault: [[1, -1]]\n",
		"no curves":   "name: x\n",
		"unknown key": "name: x\ncolour: red\ndefault: [[1, 1]]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCatalogLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sts2.yaml"), []byte(sts2YAML), 0o600); err != nil {
		t.Fatal(err)
	}
	unnamed := "unit: velocity\ndefault:\n  - [0.1, 1e-18]\n  - [10, 1e-16]\n"
	if err := os.WriteFile(filepath.Join(dir, "Trillium.yml"), []byte(unnamed), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	cat := NewCatalog()
	n, err := cat.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if n != 2 || cat.Len() != 4 {
		t.Fatalf("loaded %d, catalog has %d", n, cat.Len())
	}

	c, err := cat.Lookup("trillium", ComponentHorizontal)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if c.Unit != Velocity {
		t.Fatalf("unit = %v, want velocity", c.Unit)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
