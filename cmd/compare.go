package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/transport/core/model"
	"github.com/kilianp07/transport/infra/problemfile"
	"github.com/kilianp07/transport/pkg/export"
)

var compareOpts struct {
	file      string
	reference bool
	format    string
	chart     string
	remote    bool
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every heuristic on a problem file and compare total costs",
	RunE:  runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVarP(&compareOpts.file, "file", "f", "", "problem file (yaml or json)")
	f.BoolVar(&compareOpts.reference, "reference", false, "also compute the exact LP optimum")
	f.StringVar(&compareOpts.format, "format", "table", "output format: table or json")
	f.StringVar(&compareOpts.chart, "chart", "", "write an HTML bar chart to this file")
	f.BoolVar(&compareOpts.remote, "remote", false, "compare through the MQTT responder")
	_ = compareCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := problemfile.Load(compareOpts.file)
	if err != nil {
		return err
	}
	withRef := compareOpts.reference || cfg.Solver.Reference

	ctx := context.Background()
	var cmp model.Comparison
	if compareOpts.remote {
		cli, err := newRemoteClient(cfg)
		if err != nil {
			return err
		}
		defer cli.Disconnect()
		cmp, err = cli.Compare(ctx, p, withRef)
		if err != nil {
			return err
		}
	} else {
		mgr, err := newLocalManager(cfg)
		if err != nil {
			return err
		}
		defer mgr.Close()
		cmp, err = mgr.Compare(ctx, p, withRef)
		if err != nil {
			return err
		}
	}

	if compareOpts.chart != "" {
		if err := writeChart(compareOpts.chart, cmp); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	switch strings.ToLower(compareOpts.format) {
	case "table", "":
		return export.WriteComparisonTable(out, cmp)
	case "json":
		return export.WriteJSON(out, cmp)
	default:
		return fmt.Errorf("unknown format %q", compareOpts.format)
	}
}

func writeChart(path string, cmp model.Comparison) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteComparisonChart(f, cmp); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
