package submission

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Columns absent from a submission's own template are filled with this
// sentinel; downstream spreadsheets rely on it.
const exportMissing = "N/A"

const exportNoComment = "No comments"

var exportBaseHeaders = []string{
	"Employee Name",
	"Employee Email",
	"Employee ID",
	"Role",
	"Form Type",
	"Template ID",
	"Status",
	"Submission Date",
	"Total Score",
	"Max Score",
	"Percentage",
}

// WriteCSV flattens a possibly heterogeneous set of submissions into one
// table. The header carries a Score/Comments column pair for every
// criterion name observed across the set, in first-observed order, so no
// per-criterion data is lost when templates differ.
func WriteCSV(w io.Writer, submissions []Submission) error {
	criteriaNames := criteriaUnion(submissions)

	header := make([]string, 0, len(exportBaseHeaders)+2*len(criteriaNames))
	header = append(header, exportBaseHeaders...)
	for _, name := range criteriaNames {
		header = append(header, name+" Score", name+" Comments")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, sub := range submissions {
		byName := make(map[string]Evaluation, len(sub.Evaluations))
		for _, e := range sub.Evaluations {
			byName[e.Criteria] = e
		}

		row := []string{
			sub.EmployeeName,
			sub.EmployeeEmail,
			sub.EmployeeID,
			sub.Role.Display(),
			sub.FormType,
			sub.TemplateID,
			sub.Status,
			sub.SubmittedAt.Format("2006-01-02"),
			strconv.Itoa(sub.TotalScore),
			strconv.Itoa(sub.MaxTotalScore),
			fmt.Sprintf("%.1f", sub.Percentage()),
		}
		for _, name := range criteriaNames {
			if e, ok := byName[name]; ok {
				comment := e.SelfComment
				if comment == "" {
					comment = exportNoComment
				}
				row = append(row, strconv.Itoa(e.SelfScore), comment)
			} else {
				row = append(row, exportMissing, exportMissing)
			}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func criteriaUnion(submissions []Submission) []string {
	seen := make(map[string]bool)
	var names []string
	for _, sub := range submissions {
		for _, e := range sub.Evaluations {
			if !seen[e.Criteria] {
				seen[e.Criteria] = true
				names = append(names, e.Criteria)
			}
		}
	}
	return names
}
