package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/glabrego/fiets-cli/internal/app"
	"github.com/glabrego/fiets-cli/internal/storage"
)

func newHistoryCmd(open opener, configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent actions sent to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return fmt.Errorf("limit must be positive: %d", limit)
			}
			rt, err := open(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			actions, err := rt.service.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(actions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No actions recorded.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHistory(actions))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", app.DefaultHistoryLimit, "number of actions to show")
	return cmd
}

func renderHistory(actions []storage.Action) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		Headers("TIME", "ACTION", "POSTS", "RESULT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for _, a := range actions {
		t.Row(a.At.Local().Format(time.DateTime), string(a.Kind), joinIDs(a.PostIDs), actionResult(a))
	}
	return t.String()
}

func joinIDs(ids []int64) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func actionResult(a storage.Action) string {
	if a.Succeeded() {
		return "ok"
	}
	return "failed: " + a.Err
}
