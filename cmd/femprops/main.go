package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/femprops/bdf"
	"github.com/notargets/femprops/config"
	"github.com/notargets/femprops/model"
	"github.com/notargets/femprops/utils"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	configPath string
	logMode    string

	cfg config.Config
	log *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "femprops",
	Short: "Aggregate properties of structural finite element models",
	Long: `femprops computes aggregate quantities of a finite element model read from
a bulk-data deck (.bdf, .dat, .nas) or a YAML model file:

  area, volume, mass  - per property breakdowns
  massprops           - mass, center of gravity and inertia
  loads               - resultant force and moment of a load case
  skin                - exposed faces of the solid mesh as a bulk-data dump`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML run configuration")
	rootCmd.PersistentFlags().StringVar(&logMode, "log", "", "log mode: dev, prod or quiet")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(configPath); err != nil {
		return err
	}
	if logMode != "" {
		cfg.LogMode = logMode
	}
	base, err := utils.NewLogger(cfg.LogMode)
	if err != nil {
		return err
	}
	log = base.With("command", cmd.Name())
	return nil
}

// loadModel reads YAML models by extension and everything else as bulk data
func loadModel(path string) (*model.Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return model.LoadYAMLFile(path)
	}
	return bdf.ReadFile(path, log)
}

// parseReference accepts "cg", "node:<id>" or "x,y,z"
func parseReference(s string) (model.ReferencePoint, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "" || s == "origin":
		return model.ReferencePoint{}, nil
	case s == "cg":
		return model.CenterOfGravity(), nil
	case strings.HasPrefix(s, "node:"):
		id, err := strconv.Atoi(strings.TrimPrefix(s, "node:"))
		if err != nil {
			return model.ReferencePoint{}, model.NewConfigurationError("bad node reference %q", s)
		}
		return model.AtNode(id), nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return model.ReferencePoint{}, model.NewConfigurationError("bad reference point %q", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.ReferencePoint{}, model.NewConfigurationError("bad reference point %q", s)
		}
		xyz[i] = v
	}
	return model.Point(r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}), nil
}

func formatVec(v r3.Vec) string {
	return fmt.Sprintf("(%.6g, %.6g, %.6g)", v.X, v.Y, v.Z)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Error("command failed", "error", err)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
