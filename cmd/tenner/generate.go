package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"svw.info/tenner/internal/generator"
	"svw.info/tenner/internal/search"
	"svw.info/tenner/internal/tenner"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a uniquely solvable Tenner Grid board",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, _ := cmd.Flags().GetInt("rows")
		seed, _ := cmd.Flags().GetInt64("seed")
		out, _ := cmd.Flags().GetString("out")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		s, err := search.NewBoardSolver(tenner.ModelBinary, "gac")
		if err != nil {
			return err
		}
		p, st, err := generator.NewUniqueGenerator(s).Generate(cmd.Context(), seed, rows)
		if err != nil {
			return err
		}
		data, err := p.Board.Marshal()
		if err != nil {
			return err
		}
		if out != "" {
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
		} else {
			fmt.Print(string(data))
		}
		fmt.Printf("seed=%d nodes=%d dur=%v\n", seed, st.Nodes, st.Duration)
		return nil
	},
}

func init() {
	generateCmd.Flags().Int("rows", 4, "number of grid rows (3-7)")
	generateCmd.Flags().Int64("seed", 0, "random seed (0 = time-based)")
	generateCmd.Flags().String("out", "", "write the board file here instead of stdout")
	rootCmd.AddCommand(generateCmd)
}
