package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"votomatch/internal/database"
	"votomatch/internal/match"
	"votomatch/internal/refinery"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []match.Affinity:
		return rankingTable(w, v)
	case *refinery.Report:
		return reportTable(w, v)
	case *database.Stats:
		return statsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func rankingTable(w io.Writer, ranking []match.Affinity) error {
	if len(ranking) == 0 {
		fmt.Fprintln(w, "No comparable legislators found.")
		return nil
	}

	tw := tablewriter.NewTable(w)
	tw.Header("#", "NOME", "PARTIDO", "UF", "MATCH")
	for i, a := range ranking {
		tw.Append([]string{
			strconv.Itoa(i + 1),
			a.Name,
			a.Party,
			a.Region,
			fmt.Sprintf("%.1f%%", a.Percentage),
		})
	}
	return tw.Render()
}

func reportTable(w io.Writer, report *refinery.Report) error {
	tw := tablewriter.NewTable(w)
	tw.Header("STAGE", "INPUT", "KEPT", "DROPPED", "MALFORMED", "STATUS")
	for _, sr := range report.Stages() {
		status := "ok"
		if sr.Degraded {
			status = "degraded: " + sr.Reason
		}
		tw.Append([]string{
			string(sr.Stage),
			strconv.Itoa(sr.Input),
			strconv.Itoa(sr.Kept),
			strconv.Itoa(sr.Dropped()),
			strconv.Itoa(sr.Malformed),
			status,
		})
	}
	return tw.Render()
}

func statsTable(w io.Writer, s *database.Stats) error {
	tw := tablewriter.NewTable(w)
	tw.Header("TABLE", "ROWS")
	tw.Append([]string{"leis", strconv.Itoa(s.Bills)})
	tw.Append([]string{"eventos", strconv.Itoa(s.Events)})
	tw.Append([]string{"votos", strconv.Itoa(s.Votes)})
	tw.Append([]string{"deputados", strconv.Itoa(s.Legislators)})
	return tw.Render()
}
