package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/transport/core/model"
	"github.com/kilianp07/transport/core/transport/history"
	"github.com/kilianp07/transport/pkg/export"
)

var historyOpts struct {
	method string
	limit  int
	since  time.Duration
	format string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the persisted solution history",
}

var historyListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List solved problems, newest first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every persisted solution",
	RunE:  runHistoryClear,
}

func init() {
	f := historyListCmd.Flags()
	f.StringVarP(&historyOpts.method, "method", "m", "", "only list this method")
	f.IntVarP(&historyOpts.limit, "limit", "n", 20, "maximum number of records")
	f.DurationVar(&historyOpts.since, "since", 0, "only list records newer than this")
	f.StringVar(&historyOpts.format, "format", "table", "output format: table or json")
	historyCmd.AddCommand(historyListCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory(cmd *cobra.Command) (history.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.History.Backend == "memory" {
		return nil, fmt.Errorf("history backend is memory; configure jsonl, jsonl_rotating or sqlite")
	}
	return history.Open(cfg.History.Options())
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	q := history.Query{Limit: historyOpts.limit, NewestFirst: true}
	if historyOpts.method != "" {
		m, err := model.ParseMethod(historyOpts.method)
		if err != nil {
			return err
		}
		q = q.ForMethod(m)
	}
	if historyOpts.since > 0 {
		q.Start = time.Now().Add(-historyOpts.since)
	}
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()
	recs, err := store.Query(context.Background(), q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if strings.ToLower(historyOpts.format) == "json" {
		return export.WriteJSON(out, recs)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTime\tMethod\tSize\tTotal cost\t")
	for _, r := range recs {
		m, n := r.Problem.Dims()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%dx%d\t%g\t\n", r.ID, r.Timestamp.Format(time.RFC3339), r.Solution.Method, m, n, r.Solution.TotalCost)
	}
	return tw.Flush()
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Clear(context.Background())
}
