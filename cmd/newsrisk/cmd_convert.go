package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a directory of documents to JSON with the LLM",
}

func init() {
	convertCmd.AddCommand(newConvertCmd("claims", "Assess every claim note in the claims directory"))
	convertCmd.AddCommand(newConvertCmd("contracts", "Convert every contract PDF in the contracts directory"))
}

func newConvertCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			application, logger, err := newApplication(ctx)
			if err != nil {
				return err
			}

			n, err := application.Convert(ctx, name)
			if err != nil {
				logger.Error("conversion stopped", "converter", name, "converted", n, "error", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d documents converted\n", name, n)
			return nil
		},
	}
}
