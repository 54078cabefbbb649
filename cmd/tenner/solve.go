package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"svw.info/tenner/internal/search"
	"svw.info/tenner/internal/tenner"
)

var solveCmd = &cobra.Command{
	Use:   "solve <board.yaml>",
	Short: "Solve a Tenner Grid board file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		propName, _ := cmd.Flags().GetString("prop")
		modelName, _ := cmd.Flags().GetString("model")

		b, err := tenner.LoadBoard(args[0])
		if err != nil {
			return err
		}
		s, err := search.NewBoardSolver(tenner.ModelKind(modelName), propName)
		if err != nil {
			return err
		}
		grid, st, err := s.Solve(cmd.Context(), b)
		if err != nil {
			return fmt.Errorf("solve: %w (nodes=%d dur=%v)", err, st.Nodes, st.Duration)
		}
		fmt.Print(tenner.FormatGrid(grid, b.Sums))
		fmt.Printf("nodes=%d prunings=%d dur=%v\n", st.Nodes, st.Prunings, st.Duration)
		return nil
	},
}

func init() {
	solveCmd.Flags().String("prop", "gac", "propagator: bt|fc|gac")
	solveCmd.Flags().String("model", "binary", "model: binary|alldiff")
	rootCmd.AddCommand(solveCmd)
}
