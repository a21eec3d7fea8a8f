package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/namebot/internal/history"
	"github.com/vmunix/namebot/pkg/release"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently composed names",
	Long: `List naming requests, newest first.

Examples:
  namebot history
  namebot history --tmdb 1399 --limit 50
  namebot history --failed --json`,
	Args: cobra.NoArgs,
	RunE: runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Maximum entries to show")
	historyCmd.Flags().Int("offset", 0, "Entries to skip")
	historyCmd.Flags().Int64("tmdb", 0, "Only entries for this TMDB ID")
	historyCmd.Flags().String("kind", "", "Only movie or show entries")
	historyCmd.Flags().Bool("failed", false, "Only failed requests")
}

func filterFromFlags(cmd *cobra.Command) (history.Filter, error) {
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	f := history.Filter{Limit: limit, Offset: offset}

	if cmd.Flags().Changed("tmdb") {
		id, _ := cmd.Flags().GetInt64("tmdb")
		f.TMDBID = &id
	}
	if kindStr, _ := cmd.Flags().GetString("kind"); kindStr != "" {
		kind, err := release.ParseContentType(kindStr)
		if err != nil {
			return f, err
		}
		f.Kind = &kind
	}
	if cmd.Flags().Changed("failed") {
		failed, _ := cmd.Flags().GetBool("failed")
		f.Failed = &failed
	}
	return f, nil
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	return withApp(cmd.Context(), cmd.ErrOrStderr(), func(a *app) error {
		entries, total, err := a.history.List(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"items": entries,
				"total": total,
			})
		}
		printHistory(cmd.OutOrStdout(), entries, total)
		return nil
	})
}

func printHistory(w io.Writer, entries []*history.Entry, total int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history")
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		result := e.Name
		if e.Failed() {
			result = "error: " + e.Error
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.CreatedAt.Local().Format(time.DateTime),
			e.Kind.String(),
			strconv.FormatInt(e.TMDBID, 10),
			e.Group,
			result,
		})
	}

	fmt.Fprintln(w, renderTable(
		[]string{"ID", "When", "Kind", "TMDB", "Group", "Result"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	))
	fmt.Fprintf(w, "Showing %d of %d\n", len(entries), total)
}
