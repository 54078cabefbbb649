package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"svw.info/tenner/internal/tenner"
	"svw.info/tenner/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate <board.yaml>",
	Short: "Check a board file for rule conflicts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := tenner.LoadBoard(args[0])
		if err != nil {
			return err
		}
		ok, conflicts, err := validator.New().Validate(cmd.Context(), b)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("board has conflicts at %v", conflicts)
		}
		fmt.Println("board is valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
