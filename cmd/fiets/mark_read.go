package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMarkReadCmd(open opener, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mark-read <id>...",
		Short: "Mark posts read by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parsePostIDs(args)
			if err != nil {
				return err
			}
			rt, err := open(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.service.MarkRead(cmd.Context(), ids); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d posts read\n", len(ids))
			return nil
		},
	}
}

func parsePostIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("invalid post id: %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
