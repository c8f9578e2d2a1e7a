// Package export writes solutions and comparisons as JSON, CSV, aligned
// text tables and HTML charts.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/transport/core/model"
)

// WriteJSON writes v (a solution, comparison or history records) as
// indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteCSV writes the positive cells of sol, one row per cell.
func WriteCSV(w io.Writer, p model.Problem, sol model.Solution) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"origin", "destination", "amount", "unit_cost", "cost"}); err != nil {
		return err
	}
	for _, c := range sol.Cells(p.Costs) {
		rec := []string{
			p.OriginLabel(c.Origin),
			p.DestinationLabel(c.Destination),
			formatFloat(c.Amount),
			formatFloat(c.UnitCost),
			formatFloat(c.Cost),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
