package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/notargets/femprops/breakdown"
	"github.com/notargets/femprops/model"
	"github.com/spf13/cobra"
)

var (
	breakdownPids []int
	sumBarArea    bool
)

var areaCmd = &cobra.Command{
	Use:   "area [model]",
	Short: "Area per property",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBreakdown(cmd, args[0], "area", breakdown.AreaBreakdown)
	},
}

var volumeCmd = &cobra.Command{
	Use:   "volume [model]",
	Short: "Volume per property",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBreakdown(cmd, args[0], "volume", breakdown.VolumeBreakdown)
	},
}

var massCmd = &cobra.Command{
	Use:   "mass [model]",
	Short: "Mass per property and per point mass type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(args[0])
		if err != nil {
			return err
		}
		res, err := breakdown.MassBreakdown(m, breakdownOptions(cmd))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		printResult(out, "mass", res.Result)
		for _, typ := range sortedKeys(res.ByMassType) {
			fmt.Fprintf(out, "  %-8s %.6g\n", typ, res.ByMassType[typ])
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{areaCmd, volumeCmd, massCmd} {
		c.Flags().IntSliceVarP(&breakdownPids, "pids", "p", nil, "property ids (default all)")
		rootCmd.AddCommand(c)
	}
	areaCmd.Flags().BoolVar(&sumBarArea, "sum-bar-area", false, "sum section areas over line elements")
}

func breakdownOptions(cmd *cobra.Command) breakdown.Options {
	opts := breakdown.Options{PropertyIDs: breakdownPids, Log: log}
	opts.SumBarArea = cfg.Area.SumBarArea
	if cmd.Flags().Changed("sum-bar-area") {
		opts.SumBarArea = sumBarArea
	}
	return opts
}

func runBreakdown(cmd *cobra.Command, path, title string,
	fn func(acc model.Accessor, opts breakdown.Options) (breakdown.Result, error)) error {
	m, err := loadModel(path)
	if err != nil {
		return err
	}
	res, err := fn(m, breakdownOptions(cmd))
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), title, res)
	return nil
}

func printResult(out io.Writer, title string, res breakdown.Result) {
	fmt.Fprintf(out, "%s by property\n", title)
	for _, pid := range res.PropertyIDs() {
		fmt.Fprintf(out, "  %-8d %.6g\n", pid, res.ByProperty[pid])
	}
	fmt.Fprintf(out, "  %-8s %.6g\n", "total", res.Total())
	for _, k := range res.Skipped {
		fmt.Fprintf(out, "  skipped %s on %s\n", k.ElementType, k.PropertyType)
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
