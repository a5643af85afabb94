package main

import (
	"fmt"

	"github.com/notargets/femprops/skin"
	"github.com/spf13/cobra"
)

var (
	skinOutput   string
	skinElements []int
	skinSolids   bool
	skinShells   bool
	skinSize     int
	skinDouble   bool
)

var skinCmd = &cobra.Command{
	Use:   "skin [model]",
	Short: "Write the exposed faces of the solid mesh as bulk data",
	Long: `Extracts the faces of the solid elements that are not shared by two
elements. The dump holds the original solids, shells synthesized on the skin
faces, or both.`,
	Args: cobra.ExactArgs(1),
	RunE: runSkin,
}

func init() {
	rootCmd.AddCommand(skinCmd)

	f := skinCmd.Flags()
	f.StringVarP(&skinOutput, "output", "o", "skin.bdf", "output file")
	f.IntSliceVar(&skinElements, "eids", nil, "solid element ids (default all)")
	f.BoolVar(&skinSolids, "solids", false, "write the original solids")
	f.BoolVar(&skinShells, "shells", true, "write synthesized shells")
	f.IntVar(&skinSize, "size", 8, "field width, 8 or 16")
	f.BoolVar(&skinDouble, "double", false, "double precision, needs --size 16")
}

func runSkin(cmd *cobra.Command, args []string) error {
	out := cfg.Output
	if cmd.Flags().Changed("solids") {
		out.WriteSolids = skinSolids
	}
	if cmd.Flags().Changed("shells") {
		out.WriteShells = skinShells
	}
	if cmd.Flags().Changed("size") {
		out.FieldSize = skinSize
	}
	if cmd.Flags().Changed("double") {
		out.Double = skinDouble
	}
	run := cfg
	run.Output = out
	if err := run.Validate(); err != nil {
		return err
	}

	m, err := loadModel(args[0])
	if err != nil {
		return err
	}
	opts := skin.Options{
		ElementIDs:  skinElements,
		WriteSolids: out.WriteSolids,
		WriteShells: out.WriteShells,
		Log:         log,
	}
	plan, err := skin.ExtractFile(m, skinOutput, opts, run.Format())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "wrote %s: %d skin faces, %d interior faces discarded\n",
		skinOutput, len(plan.Faces.Boundary), plan.Faces.Interior)
	a := plan.Allocated
	if a.Elements.Len() > 0 {
		fmt.Fprintf(w, "  shells     %d-%d\n", a.Elements.First, a.Elements.Last)
		fmt.Fprintf(w, "  properties %d-%d\n", a.Properties.First, a.Properties.Last)
		fmt.Fprintf(w, "  materials  %d-%d\n", a.Materials.First, a.Materials.Last)
	}
	log.Info("skin written", "path", skinOutput, "faces", len(plan.Faces.Boundary))
	return nil
}
