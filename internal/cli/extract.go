package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/trackgeom"
	"github.com/tsawler/trackgeom/modelfile"
	"github.com/tsawler/trackgeom/records"
)

var (
	modelPath      string
	outPath        string
	outFormat      string
	namespace      string
	clearance      float64
	forwardZOrigin float64
	skipValidate   bool
)

// bundleDocument is the serialized view of a record bundle. The rotation
// registry is flattened to a name-sorted list.
type bundleDocument struct {
	Elements        []records.Element                `yaml:"elements" json:"elements"`
	Composites      []records.Composite              `yaml:"composites" json:"composites"`
	Shapes          []records.Shape                  `yaml:"shapes" json:"shapes"`
	ShapeOperations []records.ShapeOperation         `yaml:"shapeOperations" json:"shapeOperations"`
	Logic           []records.LogicalVolume          `yaml:"logicalVolumes" json:"logicalVolumes"`
	Placements      []records.Placement              `yaml:"placements" json:"placements"`
	Algorithms      []records.AlgorithmCall          `yaml:"algorithms" json:"algorithms"`
	Rotations       []records.Rotation               `yaml:"rotations" json:"rotations"`
	Topology        []records.TopologySpec           `yaml:"topology" json:"topology"`
	RadiationLength []records.RadiationLengthSummary `yaml:"radiationLength" json:"radiationLength"`
}

// extractCmd runs the extraction over a model file and writes the record
// bundle.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract geometry and material records from a model file",
	RunE: func(cmd *cobra.Command, args []string) error {
		tracker, table, err := modelfile.Load(modelPath)
		if err != nil {
			return err
		}

		x := trackgeom.New(tracker).WithMaterials(table)
		if namespace != "" {
			x = x.WithNamespace(namespace)
		}
		if cmd.Flags().Changed("clearance") {
			x = x.WithClearance(clearance)
		}
		if cmd.Flags().Changed("forward-z") {
			x = x.WithForwardZOrigin(forwardZOrigin)
		}
		if verbose {
			x = x.WithLogger(stderrLogger())
		}

		bundle, warnings, err := x.Run()
		if err != nil {
			return err
		}
		if len(warnings) > 0 {
			fmt.Fprint(os.Stderr, trackgeom.FormatWarnings(warnings))
		}

		if !skipValidate {
			ns := namespace
			if ns == "" {
				ns = "tracker"
			}
			if err := bundle.Validate(ns); err != nil {
				return fmt.Errorf("bundle validation failed: %w", err)
			}
		}

		doc := bundleDocument{
			Elements:        bundle.Elements,
			Composites:      bundle.Composites,
			Shapes:          bundle.Shapes,
			ShapeOperations: bundle.ShapeOperations,
			Logic:           bundle.Logic,
			Placements:      bundle.Placements,
			Algorithms:      bundle.Algorithms,
			Rotations:       bundle.SortedRotations(),
			Topology:        bundle.Topology,
			RadiationLength: bundle.RadiationLength,
		}

		var data []byte
		switch outFormat {
		case "yaml":
			data, err = yaml.Marshal(doc)
		case "json":
			data, err = json.MarshalIndent(doc, "", "  ")
		default:
			return fmt.Errorf("unknown output format %q (want yaml or json)", outFormat)
		}
		if err != nil {
			return err
		}

		if outPath == "" || outPath == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(outPath, data, 0644)
	},
}

// stderrLogger builds a plain logr sink over stderr for --verbose runs.
func stderrLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
		} else {
			fmt.Fprintln(os.Stderr, args)
		}
	}, funcr.Options{Verbosity: 1})
}

func init() {
	extractCmd.Flags().StringVarP(&modelPath, "model", "m", "", "tracker model file (YAML)")
	extractCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	extractCmd.Flags().StringVarP(&outFormat, "format", "f", "yaml", "output format: yaml or json")
	extractCmd.Flags().StringVar(&namespace, "namespace", "", "namespace qualifying emitted references")
	extractCmd.Flags().Float64Var(&clearance, "clearance", 0, "volume clearance in mm")
	extractCmd.Flags().Float64Var(&forwardZOrigin, "forward-z", 0, "z origin of the endcap parent volume in mm")
	extractCmd.Flags().BoolVar(&skipValidate, "skip-validate", false, "skip bundle consistency validation")
	extractCmd.MarkFlagRequired("model")

	rootCmd.AddCommand(extractCmd)
}
