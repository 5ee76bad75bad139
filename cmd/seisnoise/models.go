package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-seisnoise/seismic/model"
	"github.com/spf13/cobra"
)

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the available noise models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			return a.printModels(cat)
		},
	}
}

func (a *app) printModels(cat *model.Catalog) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Name\tComponents\tUnit\tPeriod [s]\tDescription\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, name := range cat.Names() {
		e, ok := cat.Entry(name)
		if !ok {
			continue
		}
		comps, ref := describeComponents(e)
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Name, comps, ref.Unit, periodRange(ref), e.Description); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}

// describeComponents lists the component curves of e and picks one curve
// representative of the entry.
func describeComponents(e model.Entry) (string, model.Curve) {
	if len(e.Components) == 0 {
		return "all", e.Default
	}

	comps := make([]model.Component, 0, len(e.Components))
	for c := range e.Components {
		comps = append(comps, c)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i] < comps[j] })

	names := make([]string, len(comps))
	for i, c := range comps {
		names[i] = c.String()
	}
	ref := e.Components[comps[0]]
	if e.Default.Len() > 0 {
		names = append(names, "default")
		ref = e.Default
	}
	return strings.Join(names, ","), ref
}

func periodRange(c model.Curve) string {
	lo, hi := 0.0, 0.0
	for _, f := range c.Freqs {
		if f <= 0 {
			continue
		}
		if lo == 0 || f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	if hi == 0 {
		return "-"
	}
	return fmt.Sprintf("%.3g-%.3g", 1/hi, 1/lo)
}
