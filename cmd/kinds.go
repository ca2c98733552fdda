package cmd

import (
	"fmt"

	"github.com/mezonai/mina-connector/transaction"
	"github.com/spf13/cobra"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the transaction kind literals",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, k := range transaction.Kinds() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), k); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}
