package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/urbanshade-service/internal/domain"
)

type simulateOutput struct {
	Statistics domain.SimulationStats `json:"statistics"`
	Skipped    int                    `json:"skipped"`
	NewHeatMap domain.HeatGrid        `json:"newHeatMap,omitempty"`
}

func newSimulateCmd() *cobra.Command {
	var (
		gridPath  string
		planPath  string
		places    []string
		coords    string
		location  string
		width     int
		height    int
		seed      uint64
		statsOnly bool
		output    string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Apply an intervention plan to a heat map",
		Long: `Apply interventions to a heat map and report the cooled grid with its
statistics.

The base grid is read from --grid, or generated from --location and --seed.
Interventions come from --plan (a JSON array of {"type","x","y","coords"})
and from repeated --place type:x,y flags.

Examples:
  heatgen simulate --grid downtown.json --place trees:50,50
  heatgen simulate --location midtown --seed 3 --plan plan.json --stats-only
  heatgen simulate --grid g.json --coords percent --place water:50,50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := domain.ParseCoordMode(coords)
			if err != nil {
				return err
			}

			var base domain.HeatGrid
			if gridPath != "" {
				if base, err = readGrid(gridPath); err != nil {
					return err
				}
			} else {
				base, err = domain.GenerateHeatMap(newRand(seed), domain.DefaultHotspotTable(), width, height, location)
				if err != nil {
					return err
				}
			}

			var plan []domain.Intervention
			if planPath != "" {
				if plan, err = readPlan(planPath); err != nil {
					return err
				}
			}
			for _, p := range places {
				iv, err := parsePlacement(p, mode)
				if err != nil {
					return err
				}
				plan = append(plan, iv)
			}

			grid, stats := domain.ApplyInterventions(base, plan, domain.DefaultEffectTable())
			out := simulateOutput{Statistics: stats, Skipped: stats.Skipped}
			if !statsOnly {
				out.NewHeatMap = grid
			}
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&gridPath, "grid", "g", "", "base grid file (default: generate one)")
	f.StringVar(&planPath, "plan", "", "JSON file with an array of interventions")
	f.StringArrayVarP(&places, "place", "p", nil, "intervention as type:x,y (repeatable)")
	f.StringVar(&coords, "coords", "", "coordinate mode for --place: absolute, percent or legacy")
	f.StringVarP(&location, "location", "l", domain.DefaultLocation, "location used when generating the base grid")
	f.IntVar(&width, "width", domain.DefaultWidth, "generated grid width")
	f.IntVar(&height, "height", domain.DefaultHeight, "generated grid height")
	f.Uint64Var(&seed, "seed", 0, "random seed for the generated grid (0 = random)")
	f.BoolVar(&statsOnly, "stats-only", false, "omit the cooled grid from the output")
	f.StringVarP(&output, "output", "o", "", "output file path (default: stdout)")
	return cmd
}

// parsePlacement parses "type:x,y".
func parsePlacement(s string, mode domain.CoordMode) (domain.Intervention, error) {
	kind, point, ok := strings.Cut(s, ":")
	if !ok {
		return domain.Intervention{}, fmt.Errorf("placement %q: want type:x,y", s)
	}
	xs, ys, ok := strings.Cut(point, ",")
	if !ok {
		return domain.Intervention{}, fmt.Errorf("placement %q: want type:x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return domain.Intervention{}, fmt.Errorf("placement %q: x: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return domain.Intervention{}, fmt.Errorf("placement %q: y: %w", s, err)
	}
	return domain.Intervention{
		Type:   domain.InterventionType(strings.ToLower(strings.TrimSpace(kind))),
		X:      x,
		Y:      y,
		Coords: mode,
	}, nil
}

func readGrid(path string) (domain.HeatGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	var grid domain.HeatGrid
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil, fmt.Errorf("decode grid %s: %w", path, err)
	}
	return grid, nil
}

func readPlan(path string) ([]domain.Intervention, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	var specs []domain.InterventionSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", path, err)
	}
	plan, err := domain.ParsePlan(specs)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return plan, nil
}
