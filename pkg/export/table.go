package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/kilianp07/transport/core/model"
)

// WriteTable prints the allocation matrix with supply and demand margins
// followed by the total cost.
func WriteTable(w io.Writer, p model.Problem, sol model.Solution) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	m, n := p.Dims()

	header := []string{""}
	for j := 0; j < n; j++ {
		header = append(header, p.DestinationLabel(j))
	}
	header = append(header, "Supply")
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for i := 0; i < m; i++ {
		row := []string{p.OriginLabel(i)}
		for j := 0; j < n; j++ {
			row = append(row, cellText(sol, i, j))
		}
		row = append(row, formatFloat(p.Supply[i]))
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}

	demand := []string{"Demand"}
	for _, d := range p.Demand {
		demand = append(demand, formatFloat(d))
	}
	demand = append(demand, "")
	fmt.Fprintln(tw, strings.Join(demand, "\t")+"\t")
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s: total cost %s", sol.Method, formatFloat(sol.TotalCost))
	if err != nil {
		return err
	}
	if sol.Truncated {
		_, err = fmt.Fprint(w, " (incomplete)")
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}

// WriteComparisonTable prints one line per method with its total cost and,
// when a reference optimum is present, the gap to it.
func WriteComparisonTable(w io.Writer, cmp model.Comparison) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Method\tTotal cost\tGap\t")
	for _, s := range cmp.Solutions {
		gap := "-"
		if g, ok := cmp.Gap(s.Method); ok {
			gap = formatFloat(g)
		}
		cost := formatFloat(s.TotalCost)
		if s.Truncated {
			cost += "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", s.Method, cost, gap)
	}
	if cmp.Reference != nil {
		fmt.Fprintf(tw, "%s\t%s\t0\t\n", cmp.Reference.Method, formatFloat(cmp.Reference.TotalCost))
	}
	return tw.Flush()
}

func cellText(sol model.Solution, i, j int) string {
	if i >= len(sol.Allocation) || j >= len(sol.Allocation[i]) || sol.Allocation[i][j] == 0 {
		return "-"
	}
	return formatFloat(sol.Allocation[i][j])
}
