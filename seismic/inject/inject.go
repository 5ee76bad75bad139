package inject

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-seisnoise/dsp/noise"
	"github.com/cwbudde/algo-seisnoise/seismic/model"
	"github.com/cwbudde/algo-vecmath"
)

// External is the model name that selects the caller-supplied curve in
// [Request.Curve] instead of a catalog entry.
const External = "external"

var (
	ErrMissingSpectrum     = errors.New("inject: model is external but no curve was supplied")
	ErrConflictingSpectrum = errors.New("inject: explicit curve requires model external")
	ErrAmbiguousComponent  = errors.New("inject: cannot determine component from channel")
	ErrInvalidTrace        = errors.New("inject: invalid trace")
)

// Trace is one channel of waveform data. Data is modified in place.
type Trace struct {
	Channel string
	Delta   float64
	Data    []float64
}

// Request selects the noise to add.
type Request struct {
	// Model is a catalog model name or [External].
	Model string
	// Curve is the reference spectrum used when Model is [External].
	Curve *model.Curve
	// Kind is the physical unit of the trace data. UnitNone applies the
	// reference curve without conversion.
	Kind model.Unit
	// Component overrides channel-code classification when not
	// model.ComponentUnknown.
	Component model.Component
}

// Injector adds synthetic noise to traces. It is not safe for concurrent use
// because its synthesizer owns a random source.
type Injector struct {
	catalog    *model.Catalog
	synth      *noise.Synthesizer
	classify   Classifier
	convention model.Convention
}

// Option configures an Injector.
type Option func(*Injector)

// WithCatalog sets the model catalog used to resolve model names.
func WithCatalog(c *model.Catalog) Option {
	return func(inj *Injector) {
		if c != nil {
			inj.catalog = c
		}
	}
}

// WithSynthesizer sets the noise synthesizer, e.g. one with a fixed seed.
func WithSynthesizer(s *noise.Synthesizer) Option {
	return func(inj *Injector) {
		if s != nil {
			inj.synth = s
		}
	}
}

// WithClassifier replaces [ClassifySEED] for channel classification.
func WithClassifier(c Classifier) Option {
	return func(inj *Injector) {
		if c != nil {
			inj.classify = c
		}
	}
}

// WithConvention selects the unit conversion convention. The default is
// model.ConventionPhysical.
func WithConvention(c model.Convention) Option {
	return func(inj *Injector) {
		inj.convention = c
	}
}

// NewInjector creates an injector backed by the built-in catalog and a
// clock-seeded synthesizer unless options say otherwise.
func NewInjector(opts ...Option) *Injector {
	inj := &Injector{
		classify:   ClassifySEED,
		convention: model.ConventionPhysical,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(inj)
		}
	}
	if inj.catalog == nil {
		inj.catalog = model.NewCatalog()
	}
	if inj.synth == nil {
		inj.synth = noise.NewSynthesizer()
	}
	return inj
}

// Catalog returns the catalog used for model lookups.
func (inj *Injector) Catalog() *model.Catalog {
	return inj.catalog
}

// AddNoise adds independent noise realizations to every trace and returns
// traces. All traces are resolved and synthesized before any data is
// modified, so on error no trace has been changed. Empty traces are left
// alone.
func (inj *Injector) AddNoise(traces []*Trace, req Request) ([]*Trace, error) {
	if req.Model == External && req.Curve == nil {
		return traces, ErrMissingSpectrum
	}
	if req.Model != External && req.Curve != nil {
		return traces, fmt.Errorf("%w: got model %q", ErrConflictingSpectrum, req.Model)
	}

	curves := make(map[model.Component]model.Curve, 2)
	pending := make([][]float64, len(traces))
	for i, tr := range traces {
		if tr == nil {
			return traces, fmt.Errorf("%w: trace %d is nil", ErrInvalidTrace, i)
		}
		if len(tr.Data) == 0 {
			continue
		}

		comp, err := inj.component(tr, req)
		if err != nil {
			return traces, fmt.Errorf("trace %d: %w", i, err)
		}

		curve, ok := curves[comp]
		if !ok {
			curve, err = inj.resolve(req, comp)
			if err != nil {
				return traces, fmt.Errorf("trace %d (%s): %w", i, tr.Channel, err)
			}
			curves[comp] = curve
		}

		n, err := inj.synth.Synthesize(tr.Delta, len(tr.Data), curve.Freqs, curve.Power)
		if err != nil {
			if errors.Is(err, noise.ErrInvalidGrid) {
				err = fmt.Errorf("%w: %w", ErrInvalidTrace, err)
			}
			return traces, fmt.Errorf("trace %d (%s): %w", i, tr.Channel, err)
		}
		pending[i] = n
	}

	for i, n := range pending {
		if n != nil {
			vecmath.AddBlockInPlace(traces[i].Data, n)
		}
	}
	return traces, nil
}

// Synthesize returns one noise realization for a trace without modifying it.
func (inj *Injector) Synthesize(tr *Trace, req Request) ([]float64, error) {
	if tr == nil {
		return nil, fmt.Errorf("%w: nil trace", ErrInvalidTrace)
	}
	if req.Model == External && req.Curve == nil {
		return nil, ErrMissingSpectrum
	}
	if req.Model != External && req.Curve != nil {
		return nil, fmt.Errorf("%w: got model %q", ErrConflictingSpectrum, req.Model)
	}

	comp, err := inj.component(tr, req)
	if err != nil {
		return nil, err
	}
	curve, err := inj.resolve(req, comp)
	if err != nil {
		return nil, err
	}
	return inj.synth.Synthesize(tr.Delta, len(tr.Data), curve.Freqs, curve.Power)
}

func (inj *Injector) component(tr *Trace, req Request) (model.Component, error) {
	if req.Component != model.ComponentUnknown {
		return req.Component, nil
	}
	comp := inj.classify(tr.Channel)
	if comp == model.ComponentUnknown {
		return comp, fmt.Errorf("%w: %q", ErrAmbiguousComponent, tr.Channel)
	}
	return comp, nil
}

// resolve returns the reference curve for comp, converted to req.Kind.
func (inj *Injector) resolve(req Request, comp model.Component) (model.Curve, error) {
	var curve model.Curve
	if req.Model == External {
		curve = req.Curve.Clone()
	} else {
		var err error
		curve, err = inj.catalog.Lookup(req.Model, comp)
		if err != nil {
			return model.Curve{}, err
		}
	}
	return model.Convert(curve, req.Kind, inj.convention)
}
