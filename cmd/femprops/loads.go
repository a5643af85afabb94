package main

import (
	"fmt"

	"github.com/notargets/femprops/loads"
	"github.com/spf13/cobra"
)

var (
	loadsReference string
	loadsElements  []int
	loadsNodes     []int
	loadsGravity   bool
)

var loadsCmd = &cobra.Command{
	Use:   "loads [model] [load case]",
	Short: "Resultant force and moment of a load case",
	Long: `Sums the force and moment of a load case about a reference point, "node:<id>"
or "x,y,z". With --eids or --nids only the element loads on those elements and
the nodal loads on those nodes are summed. Gravity entries are reported but not
summed.`,
	Args: cobra.ExactArgs(2),
	RunE: runLoads,
}

func init() {
	rootCmd.AddCommand(loadsCmd)

	loadsCmd.Flags().StringVarP(&loadsReference, "ref", "r", "", "reference point (default origin)")
	loadsCmd.Flags().IntSliceVar(&loadsElements, "eids", nil, "element ids of a subset")
	loadsCmd.Flags().IntSliceVar(&loadsNodes, "nids", nil, "node ids of a subset")
	loadsCmd.Flags().BoolVar(&loadsGravity, "gravity", false, "request gravity loads")
}

func runLoads(cmd *cobra.Command, args []string) error {
	var lcID int
	if _, err := fmt.Sscanf(args[1], "%d", &lcID); err != nil {
		return fmt.Errorf("load case id %q: %w", args[1], err)
	}
	ref, err := parseReference(loadsReference)
	if err != nil {
		return err
	}
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}
	opts := loads.Options{IncludeGravity: cfg.Loads.IncludeGravity || loadsGravity, Log: log}

	var res loads.Result
	if cmd.Flags().Changed("eids") || cmd.Flags().Changed("nids") {
		res, err = loads.SumForcesMomentsElements(m, m, ref, lcID, loadsElements, loadsNodes, opts)
	} else {
		res, err = loads.SumForcesMoments(m, m, ref, lcID, opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "load case %d about %s\n", lcID, formatVec(res.Reference))
	fmt.Fprintf(out, "  force  %s\n", formatVec(res.Force))
	fmt.Fprintf(out, "  moment %s\n", formatVec(res.Moment))
	if res.Gravity > 0 {
		fmt.Fprintf(out, "  %d gravity entries not summed\n", res.Gravity)
	}
	return nil
}
