package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-seisnoise/seismic/inject"
	"github.com/cwbudde/algo-seisnoise/stats/trace"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write one noise realization to stdout",
		Long: `generate adds noise to an all-zero trace of --npts samples and prints it,
one sample per line (plain) or as time,value rows (csv).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(a.v.GetString("format"))
		},
	}
	cmd.Flags().String("format", "plain", "output format: plain or csv")
	return cmd
}

func (a *app) runGenerate(format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "plain" && format != "csv" {
		return fmt.Errorf("unknown format %q", format)
	}

	cat, err := a.catalog()
	if err != nil {
		return err
	}
	req, err := a.request()
	if err != nil {
		return err
	}

	tr := &inject.Trace{
		Channel: a.cfg.Channel,
		Delta:   a.cfg.Dt,
		Data:    make([]float64, a.cfg.Npts),
	}
	a.log.Debug().
		Str("model", req.Model).
		Str("channel", tr.Channel).
		Stringer("kind", req.Kind).
		Stringer("mode", a.cfg.Mode).
		Float64("dt", tr.Delta).
		Int("npts", len(tr.Data)).
		Msg("synthesizing noise")

	if _, err := a.injector(cat).AddNoise([]*inject.Trace{tr}, req); err != nil {
		return err
	}
	st := trace.Calculate(tr.Data)
	a.log.Debug().
		Float64("rms", st.RMS).
		Float64("peak", st.Peak).
		Float64("kurtosis", st.Kurtosis).
		Msg("generated trace")

	w := bufio.NewWriter(a.out)
	if format == "csv" {
		if _, err := w.WriteString("time,value\n"); err != nil {
			return err
		}
	}
	buf := make([]byte, 0, 64)
	for i, x := range tr.Data {
		buf = buf[:0]
		if format == "csv" {
			buf = strconv.AppendFloat(buf, float64(i)*tr.Delta, 'g', -1, 64)
			buf = append(buf, ',')
		}
		buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return w.Flush()
}
