package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/transport/core/model"
	"github.com/kilianp07/transport/infra/problemfile"
	"github.com/kilianp07/transport/pkg/export"
)

var solveOpts struct {
	file   string
	method string
	format string
	remote bool
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a problem file with one method",
	RunE:  runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.StringVarP(&solveOpts.file, "file", "f", "", "problem file (yaml or json)")
	f.StringVarP(&solveOpts.method, "method", "m", "", "northwest, mincost, vogel or simplex (default from config)")
	f.StringVar(&solveOpts.format, "format", "table", "output format: table, json or csv")
	f.BoolVar(&solveOpts.remote, "remote", false, "solve through the MQTT responder")
	_ = solveCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	method := cfg.Solver.Method()
	if solveOpts.method != "" {
		if method, err = model.ParseMethod(solveOpts.method); err != nil {
			return err
		}
	}
	p, err := problemfile.Load(solveOpts.file)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var sol model.Solution
	if solveOpts.remote {
		cli, err := newRemoteClient(cfg)
		if err != nil {
			return err
		}
		defer cli.Disconnect()
		sol, err = cli.Solve(ctx, method, p)
		if err != nil {
			return err
		}
	} else {
		mgr, err := newLocalManager(cfg)
		if err != nil {
			return err
		}
		defer mgr.Close()
		sol, err = mgr.Solve(ctx, method, p)
		if err != nil {
			return err
		}
	}
	return writeSolution(cmd.OutOrStdout(), solveOpts.format, p, sol)
}

func writeSolution(w io.Writer, format string, p model.Problem, sol model.Solution) error {
	switch strings.ToLower(format) {
	case "table", "":
		return export.WriteTable(w, p, sol)
	case "json":
		return export.WriteJSON(w, sol)
	case "csv":
		return export.WriteCSV(w, p, sol)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
