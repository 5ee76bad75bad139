package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-seisnoise/dsp/window"
	"github.com/spf13/cobra"
)

func newWindowsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Print properties of the PSD tapers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printWindows(a.v.GetInt("size"), a.v.GetBool("periodic"))
		},
	}
	cmd.Flags().Int("size", 1<<14, "window length in samples")
	cmd.Flags().Bool("periodic", true, "use the periodic (FFT) form")
	return cmd
}

func (a *app) printWindows(size int, periodic bool) error {
	if size < 1 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	var opts []window.Option
	if periodic {
		opts = append(opts, window.WithPeriodic())
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tSum w^2\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range window.Types() {
		coeffs := window.Generate(t, size, opts...)
		cg, err := window.CoherentGain(coeffs)
		if err != nil {
			return fmt.Errorf("%v: %w", t, err)
		}
		enbw, err := window.EquivalentNoiseBandwidth(coeffs)
		if err != nil {
			return fmt.Errorf("%v: %w", t, err)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\n",
			t, size, cg, enbw, window.SumSquares(coeffs)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}
