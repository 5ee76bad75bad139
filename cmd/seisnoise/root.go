package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cwbudde/algo-seisnoise/dsp/interp"
	"github.com/cwbudde/algo-seisnoise/dsp/noise"
	"github.com/cwbudde/algo-seisnoise/seismic/inject"
	"github.com/cwbudde/algo-seisnoise/seismic/model"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "0.1.0"

// config holds the resolved settings shared by all commands.
type config struct {
	Model      string
	CurveFile  string
	ModelsDir  string
	Channel    string
	Component  model.Component
	Kind       model.Unit
	Mode       interp.Mode
	Convention model.Convention
	Dt         float64
	Npts       int
	Seed       int64
	Verbose    bool
}

// app carries per-invocation state. Commands never touch package globals so
// tests can build independent command trees.
type app struct {
	v      *viper.Viper
	log    zerolog.Logger
	out    io.Writer
	errOut io.Writer
	cfg    config
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "seisnoise",
		Short: "Synthesize seismic instrument self-noise",
		Long: `seisnoise generates random time series whose power spectral density
follows a reference noise model such as the Peterson NLNM/NHNM or an
instrument self-noise curve loaded from YAML.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	f := root.PersistentFlags()
	f.String("model", "NLNM", "noise model name, or external together with --curve-file")
	f.String("curve-file", "", "YAML model file whose curve is used as the external spectrum")
	f.String("models-dir", "", "directory of additional YAML noise models")
	f.String("channel", "BHZ", "SEED channel code used to pick the component")
	f.String("component", "auto", "component: auto, vertical or horizontal")
	f.String("kind", "velocity", "physical unit of the output: displacement, velocity, acceleration or none")
	f.String("mode", "loglog", "spectrum interpolation: loglog or linear")
	f.String("convention", "physical", "unit conversion convention: physical ((2*pi*f)^2 per derivative), frequency (f^2) or source (f^2 disp/vel, f vel/acc)")
	f.Float64("dt", 0.1, "sample interval in seconds")
	f.Int("npts", 36000, "number of samples")
	f.Int64("seed", 0, "random seed, 0 seeds from the clock")
	f.BoolP("verbose", "v", false, "verbose output")

	root.AddCommand(
		newModelsCmd(a),
		newGenerateCmd(a),
		newPSDCmd(a),
		newWindowsCmd(a),
	)
	return root
}

// setup binds flags and environment, resolves config and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("SEISNOISE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	cfg, err := loadConfig(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.errOut, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return nil
}

func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		Model:     strings.TrimSpace(v.GetString("model")),
		CurveFile: v.GetString("curve-file"),
		ModelsDir: v.GetString("models-dir"),
		Channel:   v.GetString("channel"),
		Dt:        v.GetFloat64("dt"),
		Npts:      v.GetInt("npts"),
		Seed:      v.GetInt64("seed"),
		Verbose:   v.GetBool("verbose"),
	}

	var err error
	if cfg.Component, err = model.ParseComponent(v.GetString("component")); err != nil {
		return config{}, err
	}
	if cfg.Kind, err = model.ParseUnit(v.GetString("kind")); err != nil {
		return config{}, err
	}
	if cfg.Mode, err = interp.ParseMode(v.GetString("mode")); err != nil {
		return config{}, err
	}
	if cfg.Convention, err = model.ParseConvention(v.GetString("convention")); err != nil {
		return config{}, err
	}
	if cfg.Dt <= 0 {
		return config{}, fmt.Errorf("dt must be > 0: %g", cfg.Dt)
	}
	if cfg.Npts < 1 {
		return config{}, fmt.Errorf("npts must be >= 1: %d", cfg.Npts)
	}
	if cfg.CurveFile != "" && !strings.EqualFold(cfg.Model, inject.External) {
		cfg.Model = inject.External
	}
	return cfg, nil
}

// catalog returns the built-in catalog extended by --models-dir.
func (a *app) catalog() (*model.Catalog, error) {
	cat := model.NewCatalog()
	if a.cfg.ModelsDir == "" {
		return cat, nil
	}
	n, err := cat.LoadDir(a.cfg.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("load models: %w", err)
	}
	a.log.Debug().Str("dir", a.cfg.ModelsDir).Int("models", n).Msg("loaded model files")
	return cat, nil
}

// injector builds an injector from the resolved config.
func (a *app) injector(cat *model.Catalog) *inject.Injector {
	synthOpts := []noise.Option{noise.WithMode(a.cfg.Mode)}
	if a.cfg.Seed != 0 {
		synthOpts = append(synthOpts, noise.WithSeed(a.cfg.Seed))
	}
	return inject.NewInjector(
		inject.WithCatalog(cat),
		inject.WithSynthesizer(noise.NewSynthesizer(synthOpts...)),
		inject.WithConvention(a.cfg.Convention),
	)
}

// request translates the config into an injection request.
func (a *app) request() (inject.Request, error) {
	req := inject.Request{
		Model:     a.cfg.Model,
		Kind:      a.cfg.Kind,
		Component: a.cfg.Component,
	}
	if !strings.EqualFold(req.Model, inject.External) {
		return req, nil
	}

	req.Model = inject.External
	if a.cfg.CurveFile == "" {
		return req, nil
	}
	e, err := model.LoadFile(a.cfg.CurveFile)
	if err != nil {
		return req, fmt.Errorf("load curve: %w", err)
	}
	comp := a.cfg.Component
	if comp == model.ComponentUnknown {
		comp = inject.ClassifySEED(a.cfg.Channel)
	}
	curve, err := e.Curve(comp)
	if err != nil {
		return req, err
	}
	req.Curve = &curve
	return req, nil
}

// referenceCurve returns the model curve for the configured channel in the
// output unit, as used for synthesis.
func (a *app) referenceCurve(cat *model.Catalog, req inject.Request) (model.Curve, error) {
	if req.Curve != nil {
		return model.Convert(*req.Curve, req.Kind, a.cfg.Convention)
	}
	comp := req.Component
	if comp == model.ComponentUnknown {
		comp = inject.ClassifySEED(a.cfg.Channel)
		if comp == model.ComponentUnknown {
			return model.Curve{}, fmt.Errorf("%w: %q", inject.ErrAmbiguousComponent, a.cfg.Channel)
		}
	}
	curve, err := cat.Lookup(req.Model, comp)
	if err != nil {
		return model.Curve{}, err
	}
	return model.Convert(curve, req.Kind, a.cfg.Convention)
}
