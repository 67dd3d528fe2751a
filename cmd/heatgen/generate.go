package main

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/urbanshade-service/internal/domain"
)

func newGenerateCmd() *cobra.Command {
	var (
		location string
		width    int
		height   int
		seed     uint64
		output   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a base heat map for a location",
		Long: `Generate a synthetic heat map as a JSON array of [x, y, temperature]
triples in x-major order.

Known locations are downtown, midtown and industrial district; any other
name uses the default hotspot set. A non-zero --seed reproduces the same grid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid, err := domain.GenerateHeatMap(newRand(seed), domain.DefaultHotspotTable(), width, height, location)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, grid)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&location, "location", "l", domain.DefaultLocation, "location name")
	f.IntVar(&width, "width", domain.DefaultWidth, "grid width")
	f.IntVar(&height, "height", domain.DefaultHeight, "grid height")
	f.Uint64Var(&seed, "seed", 0, "random seed (0 = random)")
	f.StringVarP(&output, "output", "o", "", "output file path (default: stdout)")
	return cmd
}
