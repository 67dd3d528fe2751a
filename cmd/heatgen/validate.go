package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/urbanshade-service/internal/domain"
)

// gridReport summarizes one validated grid file.
type gridReport struct {
	File    string   `json:"file"`
	Points  int      `json:"points"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	MinTemp float64  `json:"minTemp"`
	MaxTemp float64  `json:"maxTemp"`
	Mean    float64  `json:"meanTemp"`
	Errors  []string `json:"errors,omitempty"`
}

func (r *gridReport) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *gridReport) passed() bool { return len(r.Errors) == 0 }

func newValidateCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check heat map files for structural integrity",
		Long: `Validate that each file is a JSON array of [x, y, temperature] triples
with finite values, integral non-negative coordinates, no duplicate cells
and, when --width and --height are set, exactly one point per cell.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			reports := make([]gridReport, 0, len(args))
			for _, path := range args {
				r := validateFile(path, width, height)
				if !r.passed() {
					failed++
				}
				reports = append(reports, r)
			}
			if err := writeOutput(cmd.OutOrStdout(), "", reports); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "expected grid width (0 = derive from data)")
	cmd.Flags().IntVar(&height, "height", 0, "expected grid height (0 = derive from data)")
	return cmd
}

func validateFile(path string, wantWidth, wantHeight int) gridReport {
	r := gridReport{File: path}
	grid, err := readGrid(path)
	if err != nil {
		r.errorf("%v", err)
		return r
	}
	checkGrid(&r, grid, wantWidth, wantHeight)
	return r
}

func checkGrid(r *gridReport, grid domain.HeatGrid, wantWidth, wantHeight int) {
	r.Points = len(grid)
	if len(grid) == 0 {
		r.errorf("grid is empty")
		return
	}
	r.Width, r.Height = grid.Bounds()

	seen := make(map[[2]int]bool, len(grid))
	r.MinTemp, r.MaxTemp = math.Inf(1), math.Inf(-1)
	var sum float64
	for i, p := range grid {
		if p.X < 0 || p.Y < 0 {
			r.errorf("point %d: negative coordinate (%d,%d)", i, p.X, p.Y)
		}
		cell := [2]int{p.X, p.Y}
		if seen[cell] {
			r.errorf("point %d: duplicate cell (%d,%d)", i, p.X, p.Y)
		}
		seen[cell] = true
		r.MinTemp = math.Min(r.MinTemp, p.Temperature)
		r.MaxTemp = math.Max(r.MaxTemp, p.Temperature)
		sum += p.Temperature
	}
	r.Mean = sum / float64(len(grid))

	if wantWidth > 0 && r.Width != wantWidth {
		r.errorf("width: got %d, want %d", r.Width, wantWidth)
	}
	if wantHeight > 0 && r.Height != wantHeight {
		r.errorf("height: got %d, want %d", r.Height, wantHeight)
	}
	if wantWidth > 0 && wantHeight > 0 && len(grid) != wantWidth*wantHeight {
		r.errorf("points: got %d, want %d", len(grid), wantWidth*wantHeight)
	}
}
