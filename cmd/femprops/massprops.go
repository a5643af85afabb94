package main

import (
	"fmt"

	"github.com/notargets/femprops/massprops"
	"github.com/spf13/cobra"
)

var (
	mpReference string
	mpSymmetry  string
	mpScale     float64
	mpElements  []int
	mpMasses    []int
	mpNoXref    bool
	mpPrincipal bool
)

var massPropsCmd = &cobra.Command{
	Use:   "massprops [model]",
	Short: "Mass, center of gravity and inertia about a reference point",
	Long: `Mass properties of the selected elements and point masses. The reference
point is "cg", "node:<id>" or "x,y,z" in the global frame. Element inertia is
lumped at the element centroids.`,
	Args: cobra.ExactArgs(1),
	RunE: runMassProps,
}

func init() {
	rootCmd.AddCommand(massPropsCmd)

	f := massPropsCmd.Flags()
	f.StringVarP(&mpReference, "ref", "r", "", "reference point (default origin)")
	f.StringVar(&mpSymmetry, "symmetry", "", "mirror axes, e.g. y or xz (default from config)")
	f.Float64Var(&mpScale, "scale", 0, "mass scale overriding WTMASS")
	f.IntSliceVar(&mpElements, "eids", nil, "element ids (default all)")
	f.IntSliceVar(&mpMasses, "mass-ids", nil, "mass element ids (default all)")
	f.BoolVar(&mpNoXref, "no-xref", false, "use the stored node positions")
	f.BoolVar(&mpPrincipal, "principal", false, "also print the principal moments")
}

func runMassProps(cmd *cobra.Command, args []string) error {
	ref, err := parseReference(mpReference)
	if err != nil {
		return err
	}
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}
	opts := massprops.Options{
		ElementIDs: mpElements,
		MassIDs:    mpMasses,
		Reference:  ref,
		Symmetry:   cfg.Mass.Symmetry,
		Scale:      cfg.Mass.Scale,
		Log:        log,
	}
	if cmd.Flags().Changed("symmetry") {
		opts.Symmetry = mpSymmetry
	}
	if cmd.Flags().Changed("scale") {
		opts.Scale = &mpScale
	}

	var res massprops.Result
	if mpNoXref {
		res, err = massprops.MassPropertiesNoXref(m, opts)
	} else {
		res, err = massprops.MassProperties(m, m, opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "mass      %.6g\n", res.Mass)
	fmt.Fprintf(out, "cg        %s\n", formatVec(res.CG))
	fmt.Fprintf(out, "reference %s\n", formatVec(res.Reference))
	i := res.Inertia
	fmt.Fprintf(out, "inertia   Ixx %.6g Iyy %.6g Izz %.6g Ixy %.6g Ixz %.6g Iyz %.6g\n",
		i.Ixx, i.Iyy, i.Izz, i.Ixy, i.Ixz, i.Iyz)
	if mpPrincipal {
		values, _, err := i.Principal()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "principal %.6g %.6g %.6g\n", values[0], values[1], values[2])
	}
	return nil
}
