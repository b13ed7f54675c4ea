package submission

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders a single submission as a printable evaluation report.
func WritePDF(w io.Writer, sub Submission) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Evaluation")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", sub.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", sub.EmployeeEmail))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Role: %s", sub.Role.Display()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Form: %s", sub.FormType))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Submitted: %s", sub.SubmittedAt.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Criteria")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, e := range sub.Evaluations {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d / %d", e.Criteria, e.SelfScore, e.MaxMarks))
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, e.SelfComment, "", "", false)
		pdf.Ln(2)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %d / %d (%.1f%%)", sub.TotalScore, sub.MaxTotalScore, sub.Percentage()))

	return pdf.Output(w)
}
