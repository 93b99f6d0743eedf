package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCountsCmd(open opener, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Print the unread and total post counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := open(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			counts, err := rt.service.Counts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unread: %d\ntotal: %d\n", counts.UnreadCount, counts.FullCount)
			return nil
		},
	}
}
