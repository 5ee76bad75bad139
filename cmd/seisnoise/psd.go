package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-seisnoise/dsp/core"
	"github.com/cwbudde/algo-seisnoise/dsp/interp"
	"github.com/cwbudde/algo-seisnoise/dsp/spectrum"
	"github.com/cwbudde/algo-seisnoise/dsp/window"
	"github.com/cwbudde/algo-seisnoise/seismic/inject"
	"github.com/cwbudde/algo-seisnoise/stats/trace"
	"github.com/spf13/cobra"
)

type psdOptions struct {
	realizations int
	segment      int
	window       window.Type
	smooth       int
}

func newPSDCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "psd",
		Short: "Compare the PSD of synthesized noise with its model",
		Long: `psd synthesizes several realizations, averages their Welch estimates and
prints period, estimated dB, model dB and their difference for every bin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			win, err := window.ParseType(a.v.GetString("window"))
			if err != nil {
				return err
			}
			return a.runPSD(psdOptions{
				realizations: a.v.GetInt("realizations"),
				segment:      a.v.GetInt("segment"),
				window:       win,
				smooth:       a.v.GetInt("smooth"),
			})
		},
	}
	f := cmd.Flags()
	f.Int("realizations", 10, "number of independent realizations to average")
	f.Int("segment", 1<<14, "Welch segment length in samples")
	f.String("window", "hann", "Welch taper: rectangular, hann, hamming or cosine-taper")
	f.Int("smooth", 0, "average the estimate in dB over 1/N-octave bands, 0 disables")
	return cmd
}

func (a *app) runPSD(opts psdOptions) error {
	if opts.realizations < 1 {
		return fmt.Errorf("realizations must be >= 1: %d", opts.realizations)
	}

	cat, err := a.catalog()
	if err != nil {
		return err
	}
	req, err := a.request()
	if err != nil {
		return err
	}
	ref, err := a.referenceCurve(cat, req)
	if err != nil {
		return err
	}

	inj := a.injector(cat)
	var (
		freqs, avg []float64
		acc        trace.Accumulator
	)
	for r := range opts.realizations {
		tr := &inject.Trace{Channel: a.cfg.Channel, Delta: a.cfg.Dt, Data: make([]float64, a.cfg.Npts)}
		if _, err := inj.AddNoise([]*inject.Trace{tr}, req); err != nil {
			return err
		}
		acc.Update(tr.Data)
		f, p, err := spectrum.Welch(tr.Data, tr.Delta,
			spectrum.WithSegmentLength(opts.segment),
			spectrum.WithWindow(opts.window),
		)
		if err != nil {
			return err
		}
		if avg == nil {
			freqs, avg = f, p
		} else {
			for i := range avg {
				avg[i] += p[i]
			}
		}
		a.log.Debug().Int("realization", r).Int("bins", len(p)).Msg("estimated psd")
	}
	for i := range avg {
		avg[i] /= float64(opts.realizations)
	}

	// Drop DC, it has no period.
	freqs, avg = freqs[1:], avg[1:]
	if len(freqs) == 0 {
		return fmt.Errorf("segment too short for a spectrum estimate")
	}

	refPSD, err := modelPower(freqs, ref.Freqs, ref.Power, a.cfg.Mode)
	if err != nil {
		return err
	}
	a.logBand(freqs, avg, refPSD, acc.Result())

	if opts.smooth > 0 {
		if avg, err = spectrum.SmoothFractionalOctaveLog(freqs, avg, opts.smooth); err != nil {
			return err
		}
	}
	return a.printPSD(freqs, avg, refPSD)
}

// modelPower evaluates the model at freqs the way the synthesizer shapes
// its bins: amplitude is interpolated, then squared.
func modelPower(freqs, refFreqs, refPower []float64, mode interp.Mode) ([]float64, error) {
	amp := make([]float64, len(refPower))
	for i, p := range refPower {
		amp[i] = math.Sqrt(p)
	}
	out, err := interp.Interpolate(freqs, refFreqs, amp, mode)
	if err != nil {
		return nil, err
	}
	for i, v := range out {
		out[i] = v * v
	}
	return out, nil
}

// logBand reports the RMS implied by the estimated and model spectra over
// the resolved band, plus the ensemble moments.
func (a *app) logBand(freqs, est, ref []float64, st trace.Stats) {
	ev := a.log.Info().
		Int("samples", st.Length).
		Float64("rms", st.RMS).
		Float64("skewness", st.Skewness).
		Float64("kurtosis", st.Kurtosis)
	if len(freqs) > 1 {
		lo, hi := freqs[0], freqs[len(freqs)-1]
		if estRMS, err := trace.BandRMS(freqs, est, lo, hi); err == nil {
			ev = ev.Float64("band_rms", estRMS)
		}
		if refRMS, err := trace.BandRMS(freqs, ref, lo, hi); err == nil {
			ev = ev.Float64("model_band_rms", refRMS)
		}
	}
	ev.Msg("ensemble statistics")
}

func (a *app) printPSD(freqs, est, ref []float64) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Period [s]\tEstimate [dB]\tModel [dB]\tDiff [dB]\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	sumAbs, n := 0.0, 0
	for i, f := range freqs {
		e := core.LinearPowerToDB(est[i])
		m := core.LinearPowerToDB(ref[i])
		d := e - m
		if !math.IsNaN(d) && !math.IsInf(d, 0) {
			sumAbs += math.Abs(d)
			n++
		}
		if _, err := fmt.Fprintf(tw, "%.4g\t%.2f\t%.2f\t%.2f\n", core.FrequencyToPeriod(f), e, m, d); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if n > 0 {
		a.log.Info().Int("bins", n).Float64("mean_abs_diff_db", sumAbs/float64(n)).Msg("psd comparison")
	}
	return nil
}
